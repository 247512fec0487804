// Package classify maps a wine record onto the card taxonomy: type,
// power level, rarity and region. Every function is deterministic for a
// given record and current year; missing optional data falls through to
// the default branch instead of failing.
package classify

import (
	"strings"
	"time"

	"github.com/okian/winedex/internal/domain/textfold"
	"github.com/okian/winedex/internal/domain/types"
)

// Rarity score weights and thresholds.
const (
	ratingWeight    = 20
	producerBonus   = 40
	regionBonus     = 15
	legendaryScore  = 100
	epicScore       = 80
	rareScore       = 60
	uncommonScore   = 40
	veteranAge      = 20
	veteranBonus    = 30
	matureAge       = 10
	matureBonus     = 20
	developingAge   = 5
	developingBonus = 10
)

// Literal allowlists. Matching is plain substring, case-sensitive.
var (
	aromaticGrapes = []string{"Riesling", "Gewürztraminer", "Moscato", "Muscat"}

	premiumProducers = []string{
		"Château Margaux", "Domaine de la Romanée-Conti", "Screaming Eagle",
		"Penfolds Grange", "Château Le Pin", "Domaine Leroy",
	}

	prestigiousRegions = []string{
		"Bordeaux", "Burgundy", "Champagne", "Napa Valley", "Barolo", "Mosel",
	}
)

// regionRule maps lower-case keywords onto a region. Order matters: the
// first rule with a matching keyword wins.
type regionRule struct {
	key      RegionKey
	keywords []string
}

var regionRules = []regionRule{
	{France, []string{"france", "bordeaux", "burgundy", "champagne"}},
	{Italy, []string{"italy", "tuscany", "piedmont"}},
	{Spain, []string{"spain", "rioja"}},
	{Germany, []string{"germany", "mosel"}},
	{California, []string{"california", "napa", "sonoma"}},
	{Australia, []string{"australia"}},
	{Chile, []string{"chile"}},
	{Argentina, []string{"argentina", "mendoza"}},
}

// Classification holds the raw keys behind a card.
type Classification struct {
	TypeKey   TypeKey    `json:"typeKey"`
	PowerKey  PowerKey   `json:"powerKey"`
	RarityKey RarityKey  `json:"rarityKey"`
	RegionKey *RegionKey `json:"regionKey"`
}

// WineStats is everything a card needs: resolved table entries plus keys.
type WineStats struct {
	Type           TypeInfo       `json:"type"`
	PowerLevel     PowerInfo      `json:"powerLevel"`
	Rarity         RarityInfo     `json:"rarity"`
	Region         *RegionInfo    `json:"region"`
	Classification Classification `json:"classification"`
}

// Classifier evaluates the rules against a clock. Only rarity depends on
// the clock, through the wine's age.
type Classifier struct {
	now func() time.Time
}

// New returns a Classifier reading the wall clock unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

//nolint:gochecknoglobals // wall-clock classifier behind the package-level helpers
var defaultClassifier = New()

// ClassifyType picks the wine-type category.
func ClassifyType(w types.Wine) TypeKey {
	switch w.Type {
	case types.Sparkling:
		return SparklingType
	case types.Rose:
		return RoseType
	case types.DessertWine:
		return DessertType
	case types.FortifiedWine:
		return FortifiedType
	case types.RedWine:
		return classifyRed(w.Palate)
	case types.WhiteWine:
		return classifyWhite(w.Grape, w.Palate)
	}
	return WhiteCrisp
}

func classifyRed(p *types.Palate) TypeKey {
	if p == nil {
		return RedMedium
	}
	if p.Body == types.BodyLight || p.Tannin == types.LevelLow {
		return RedLight
	}
	if p.Body == types.BodyFull || p.Tannin == types.LevelHigh {
		return RedFull
	}
	return RedMedium
}

func classifyWhite(grape string, p *types.Palate) TypeKey {
	if containsAny(grape, aromaticGrapes) {
		return WhiteAromatic
	}
	if strings.Contains(grape, "Chardonnay") || (p != nil && p.Body == types.BodyFull) {
		return WhiteRich
	}
	return WhiteCrisp
}

// CalculatePowerLevel buckets the 1–5 rating. Ratings outside the scale
// count as everyday wines.
func CalculatePowerLevel(w types.Wine) PowerKey {
	switch {
	case w.Rating <= 2:
		return PowerEveryday
	case w.Rating == 3:
		return PowerQuality
	case w.Rating == 4:
		return PowerPremium
	case w.Rating == 5:
		return PowerLegendary
	}
	return PowerEveryday
}

// RegionalClassification maps the free-text region onto a country.
func RegionalClassification(w types.Wine) (RegionKey, bool) {
	region := textfold.Lower(w.Region)
	for _, rule := range regionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(region, kw) {
				return rule.key, true
			}
		}
	}
	return "", false
}

// DetermineRarity computes the rarity tier against the wall clock.
func DetermineRarity(w types.Wine) RarityKey {
	return defaultClassifier.DetermineRarity(w)
}

// Stats classifies w against the wall clock.
func Stats(w types.Wine) WineStats {
	return defaultClassifier.Stats(w)
}

// CurrentYear is the year ages are measured against.
func (c *Classifier) CurrentYear() int {
	return c.now().Year()
}

// Age returns the wine's age in years, or -1 when the vintage is unknown.
// A zero year is a non-vintage wine: it earns no age bonus rather than
// being aged from year 0 into the +30 veteran band.
func (c *Classifier) Age(w types.Wine) int {
	if w.Year <= 0 {
		return -1
	}
	return c.CurrentYear() - w.Year
}

// RarityScore is the additive score behind DetermineRarity.
func (c *Classifier) RarityScore(w types.Wine) int {
	score := w.Rating * ratingWeight

	switch age := c.Age(w); {
	case age >= veteranAge:
		score += veteranBonus
	case age >= matureAge:
		score += matureBonus
	case age >= developingAge:
		score += developingBonus
	}

	if containsAny(w.Producer, premiumProducers) {
		score += producerBonus
	}
	if containsAny(w.Region, prestigiousRegions) {
		score += regionBonus
	}
	return score
}

// DetermineRarity converts the rarity score into a tier.
func (c *Classifier) DetermineRarity(w types.Wine) RarityKey {
	score := c.RarityScore(w)
	switch {
	case score >= legendaryScore:
		return RarityLegendary
	case score >= epicScore:
		return RarityEpic
	case score >= rareScore:
		return RarityRare
	case score >= uncommonScore:
		return RarityUncommon
	}
	return RarityCommon
}

// Type mirrors ClassifyType.
func (c *Classifier) Type(w types.Wine) TypeKey {
	return ClassifyType(w)
}

// PowerLevel mirrors CalculatePowerLevel.
func (c *Classifier) PowerLevel(w types.Wine) PowerKey {
	return CalculatePowerLevel(w)
}

// Region mirrors RegionalClassification.
func (c *Classifier) Region(w types.Wine) (RegionKey, bool) {
	return RegionalClassification(w)
}

// Stats composes every classification for one wine. It never fails.
func (c *Classifier) Stats(w types.Wine) WineStats {
	typeKey := ClassifyType(w)
	powerKey := CalculatePowerLevel(w)
	rarityKey := c.DetermineRarity(w)

	stats := WineStats{
		Type:       Type(typeKey),
		PowerLevel: Power(powerKey),
		Rarity:     Rarity(rarityKey),
		Classification: Classification{
			TypeKey:   typeKey,
			PowerKey:  powerKey,
			RarityKey: rarityKey,
		},
	}
	if regionKey, ok := RegionalClassification(w); ok {
		info, _ := Region(regionKey)
		stats.Region = &info
		stats.Classification.RegionKey = &regionKey
	}
	return stats
}

// StoredRarity converts a rarity key into the tag kept on a record.
func StoredRarity(key RarityKey) types.Rarity {
	return types.Rarity(Rarity(key).Name)
}

// RarityKeyOf converts a stored rarity tag back into a key. Unknown or
// empty tags report false.
func RarityKeyOf(r types.Rarity) (RarityKey, bool) {
	for _, k := range RarityKeys {
		if rarities[k].Name == string(r) {
			return k, true
		}
	}
	return "", false
}

func containsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}
