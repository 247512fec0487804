// Package types contains the wine record and the closed vocabularies it uses.
package types

import "time"

// WineType is the closed set of wine styles a record can carry.
type WineType string

// Wine types.
const (
	RedWine       WineType = "Red Wine"
	WhiteWine     WineType = "White Wine"
	Rose          WineType = "Rosé"
	Sparkling     WineType = "Sparkling"
	DessertWine   WineType = "Dessert Wine"
	FortifiedWine WineType = "Fortified Wine"
)

// WineTypes lists every wine type in display order.
var WineTypes = []WineType{RedWine, WhiteWine, Rose, Sparkling, DessertWine, FortifiedWine}

// Valid reports whether t is one of the known wine types.
func (t WineType) Valid() bool {
	switch t {
	case RedWine, WhiteWine, Rose, Sparkling, DessertWine, FortifiedWine:
		return true
	}
	return false
}

// Rarity is the rarity tag stored on a record.
type Rarity string

// Rarity tags, lowest to highest.
const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
)

// Valid reports whether r is one of the five rarity tags.
func (r Rarity) Valid() bool {
	switch r {
	case Common, Uncommon, Rare, Epic, Legendary:
		return true
	}
	return false
}

// Wine is a single journal entry.
type Wine struct {
	ID           int       `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name" validate:"required"`
	Year         int       `json:"year" yaml:"year" validate:"gte=0,lte=9999"`
	Region       string    `json:"region" yaml:"region"`
	Producer     string    `json:"producer" yaml:"producer"`
	Type         WineType  `json:"type" yaml:"type" validate:"enum"`
	Grape        string    `json:"grape" yaml:"grape"`
	Rating       int       `json:"rating" yaml:"rating" validate:"gte=1,lte=5"`
	TastingNotes string    `json:"tastingNotes" yaml:"tastingNotes"`
	Captured     bool      `json:"captured" yaml:"captured"`
	DateAdded    time.Time `json:"dateAdded" yaml:"dateAdded"`

	// WSET level 3 systematic approach to tasting.
	Appearance *Appearance `json:"appearance,omitempty" yaml:"appearance,omitempty" validate:"omitempty"`
	Nose       *Nose       `json:"nose,omitempty" yaml:"nose,omitempty" validate:"omitempty"`
	Palate     *Palate     `json:"palate,omitempty" yaml:"palate,omitempty" validate:"omitempty"`

	ABV                *float64        `json:"abv,omitempty" yaml:"abv,omitempty" validate:"omitempty,gte=0,lte=100"`
	Temperature        *float64        `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	DecantTime         *int            `json:"decantTime,omitempty" yaml:"decantTime,omitempty" validate:"omitempty,gte=0"`
	PeakDrinkingWindow *DrinkingWindow `json:"peakDrinkingWindow,omitempty" yaml:"peakDrinkingWindow,omitempty" validate:"omitempty"`

	PersonalNotes    string   `json:"personalNotes,omitempty" yaml:"personalNotes,omitempty"`
	VoiceNoteURL     string   `json:"voiceNoteUrl,omitempty" yaml:"voiceNoteUrl,omitempty" validate:"omitempty,url"`
	PhotoURL         string   `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty" validate:"omitempty,url"`
	PurchaseLocation string   `json:"purchaseLocation,omitempty" yaml:"purchaseLocation,omitempty"`
	Price            *float64 `json:"price,omitempty" yaml:"price,omitempty" validate:"omitempty,gte=0"`

	Rarity           Rarity   `json:"rarity" yaml:"rarity" validate:"omitempty,enum"`
	ExperiencePoints int      `json:"experiencePoints" yaml:"experiencePoints" validate:"gte=0"`
	Badges           []string `json:"badges,omitempty" yaml:"badges,omitempty"`
}

// DrinkingWindow is the range of years a wine is expected to drink best.
type DrinkingWindow struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end" validate:"gtefield=Start"`
}

// Clone returns a deep copy of w so callers can mutate it freely.
func (w Wine) Clone() Wine {
	c := w
	if w.Appearance != nil {
		a := *w.Appearance
		c.Appearance = &a
	}
	if w.Nose != nil {
		n := *w.Nose
		n.PrimaryAromas = cloneStrings(w.Nose.PrimaryAromas)
		n.SecondaryAromas = cloneStrings(w.Nose.SecondaryAromas)
		n.TertiaryAromas = cloneStrings(w.Nose.TertiaryAromas)
		c.Nose = &n
	}
	if w.Palate != nil {
		p := *w.Palate
		c.Palate = &p
	}
	c.ABV = cloneFloat(w.ABV)
	c.Temperature = cloneFloat(w.Temperature)
	c.Price = cloneFloat(w.Price)
	if w.DecantTime != nil {
		d := *w.DecantTime
		c.DecantTime = &d
	}
	if w.PeakDrinkingWindow != nil {
		pw := *w.PeakDrinkingWindow
		c.PeakDrinkingWindow = &pw
	}
	c.Badges = cloneStrings(w.Badges)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
