package types

// Descriptor vocabularies for the WSET tasting grid. The engine treats
// them as opaque strings; Valid is only used at the write boundary.

// AppearanceIntensity describes colour depth.
type AppearanceIntensity string

// Recognised appearance intensities.
const (
	AppearancePale   AppearanceIntensity = "Pale"
	AppearanceMedium AppearanceIntensity = "Medium"
	AppearanceDeep   AppearanceIntensity = "Deep"
)

// Valid reports whether v is one of the recognised appearance intensities.
func (v AppearanceIntensity) Valid() bool {
	switch v {
	case AppearancePale, AppearanceMedium, AppearanceDeep:
		return true
	}
	return false
}

// NoseIntensity describes how pronounced the aromas are.
type NoseIntensity string

// Recognised nose intensities.
const (
	NoseLight       NoseIntensity = "Light"
	NoseMediumMinus NoseIntensity = "Medium(-)"
	NoseMedium      NoseIntensity = "Medium"
	NoseMediumPlus  NoseIntensity = "Medium(+)"
	NosePronounced  NoseIntensity = "Pronounced"
)

// Valid reports whether v is one of the recognised nose intensities.
func (v NoseIntensity) Valid() bool {
	switch v {
	case NoseLight, NoseMediumMinus, NoseMedium, NoseMediumPlus, NosePronounced:
		return true
	}
	return false
}

// Sweetness is the residual sugar level on the palate.
type Sweetness string

// Recognised sweetness levels.
const (
	BoneDry         Sweetness = "Bone Dry"
	Dry             Sweetness = "Dry"
	OffDry          Sweetness = "Off-Dry"
	MediumDry       Sweetness = "Medium-Dry"
	MediumSweet     Sweetness = "Medium-Sweet"
	Sweet           Sweetness = "Sweet"
	LusciouslySweet Sweetness = "Lusciously Sweet"
)

// Valid reports whether v is one of the recognised sweetness levels.
func (v Sweetness) Valid() bool {
	switch v {
	case BoneDry, Dry, OffDry, MediumDry, MediumSweet, Sweet, LusciouslySweet:
		return true
	}
	return false
}

// Level is the five-step scale shared by acidity and tannin.
type Level string

// Recognised low-to-high levels.
const (
	LevelLow         Level = "Low"
	LevelMediumMinus Level = "Medium(-)"
	LevelMedium      Level = "Medium"
	LevelMediumPlus  Level = "Medium(+)"
	LevelHigh        Level = "High"
)

// Valid reports whether v is one of the recognised low-to-high levels.
func (v Level) Valid() bool {
	switch v {
	case LevelLow, LevelMediumMinus, LevelMedium, LevelMediumPlus, LevelHigh:
		return true
	}
	return false
}

// Alcohol is the perceived alcohol level.
type Alcohol string

// Recognised alcohol levels.
const (
	AlcoholLow        Alcohol = "Low"
	AlcoholMedium     Alcohol = "Medium"
	AlcoholMediumPlus Alcohol = "Medium(+)"
	AlcoholHigh       Alcohol = "High"
)

// Valid reports whether v is one of the recognised alcohol levels.
func (v Alcohol) Valid() bool {
	switch v {
	case AlcoholLow, AlcoholMedium, AlcoholMediumPlus, AlcoholHigh:
		return true
	}
	return false
}

// Body is the weight of the wine on the palate.
type Body string

// Recognised body weights.
const (
	BodyLight       Body = "Light"
	BodyMediumMinus Body = "Medium(-)"
	BodyMedium      Body = "Medium"
	BodyMediumPlus  Body = "Medium(+)"
	BodyFull        Body = "Full"
)

// Valid reports whether v is one of the recognised body weights.
func (v Body) Valid() bool {
	switch v {
	case BodyLight, BodyMediumMinus, BodyMedium, BodyMediumPlus, BodyFull:
		return true
	}
	return false
}

// Finish is the length of the aftertaste.
type Finish string

// Recognised finish lengths.
const (
	FinishShort       Finish = "Short"
	FinishMediumMinus Finish = "Medium(-)"
	FinishMedium      Finish = "Medium"
	FinishMediumPlus  Finish = "Medium(+)"
	FinishLong        Finish = "Long"
)

// Valid reports whether v is one of the recognised finish lengths.
func (v Finish) Valid() bool {
	switch v {
	case FinishShort, FinishMediumMinus, FinishMedium, FinishMediumPlus, FinishLong:
		return true
	}
	return false
}

// Appearance is the "look" section of a tasting note.
type Appearance struct {
	Intensity         AppearanceIntensity `json:"intensity" yaml:"intensity" validate:"enum"`
	Color             string              `json:"color" yaml:"color"`
	OtherObservations string              `json:"otherObservations,omitempty" yaml:"otherObservations,omitempty"`
}

// Nose is the aroma section of a tasting note.
type Nose struct {
	Intensity       NoseIntensity `json:"intensity" yaml:"intensity" validate:"enum"`
	PrimaryAromas   []string      `json:"primaryAromas" yaml:"primaryAromas"`
	SecondaryAromas []string      `json:"secondaryAromas,omitempty" yaml:"secondaryAromas,omitempty"`
	TertiaryAromas  []string      `json:"tertiaryAromas,omitempty" yaml:"tertiaryAromas,omitempty"`
}

// Palate is the structural section of a tasting note. Tannin is empty
// for wines where it does not apply.
type Palate struct {
	Sweetness Sweetness `json:"sweetness" yaml:"sweetness" validate:"enum"`
	Acidity   Level     `json:"acidity" yaml:"acidity" validate:"enum"`
	Tannin    Level     `json:"tannin,omitempty" yaml:"tannin,omitempty" validate:"omitempty,enum"`
	Alcohol   Alcohol   `json:"alcohol" yaml:"alcohol" validate:"enum"`
	Body      Body      `json:"body" yaml:"body" validate:"enum"`
	Finish    Finish    `json:"finish" yaml:"finish" validate:"enum"`
}
