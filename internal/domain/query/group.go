package query

import (
	"fmt"
	"slices"

	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/textfold"
	"github.com/okian/winedex/internal/domain/types"
)

// GroupBy selects the computed key wines are grouped under.
type GroupBy string

// Grouping modes.
const (
	ByType       GroupBy = "types"
	ByRegion     GroupBy = "regions"
	ByRarity     GroupBy = "rarity"
	ByCollection GroupBy = "collection"
)

// GridSort orders wines inside a group.
type GridSort string

// Grid sort modes.
const (
	GridByRating GridSort = "rating"
	GridByYear   GridSort = "year"
	GridByName   GridSort = "name"
	GridByRarity GridSort = "rarity"
)

// Keys used for groups that have no table entry.
const (
	OtherRegion = "OTHER"
	AllWines    = "ALL"
)

// Group is one section of the card grid.
type Group struct {
	Key                string         `json:"key"`
	Name               string         `json:"name"`
	Count              int            `json:"count"`
	AverageRating      float64        `json:"averageRating"`
	RarityDistribution map[string]int `json:"rarityDistribution"`
	Wines              []types.Wine   `json:"wines"`
}

// ParseGroupBy reads a grouping mode. Empty means ByType.
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case "":
		return ByType, nil
	case ByType, ByRegion, ByRarity, ByCollection:
		return g, nil
	}
	return "", unknownField(s)
}

// ParseGridSort reads a grid sort mode. Empty means GridByRating.
func ParseGridSort(s string) (GridSort, error) {
	switch m := GridSort(s); m {
	case "":
		return GridByRating, nil
	case GridByRating, GridByYear, GridByName, GridByRarity:
		return m, nil
	}
	return "", unknownField(s)
}

// Groups splits wines by the computed key selected by by, sorts each group
// with mode and returns non-empty groups in reference-table order. Wines
// without a region land in the trailing OTHER group.
func Groups(wines []types.Wine, by GroupBy, mode GridSort, c *classify.Classifier) ([]Group, error) {
	if c == nil {
		c = classify.New()
	}
	keyOf, order, err := grouping(by, c)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]types.Wine)
	for _, w := range wines {
		k := keyOf(w)
		buckets[k] = append(buckets[k], w)
	}

	out := make([]Group, 0, len(buckets))
	for _, k := range order {
		members, ok := buckets[k]
		if !ok {
			continue
		}
		sorted, err := SortGrid(members, mode, c)
		if err != nil {
			return nil, err
		}
		out = append(out, newGroup(k, groupName(by, k), sorted, c))
	}
	return out, nil
}

func grouping(by GroupBy, c *classify.Classifier) (func(types.Wine) string, []string, error) {
	switch by {
	case ByType:
		return func(w types.Wine) string { return string(classify.ClassifyType(w)) },
			keyStrings(classify.TypeKeys), nil
	case ByRegion:
		return func(w types.Wine) string { return string(regionGroupKey(w)) },
			append(keyStrings(classify.RegionKeys), OtherRegion), nil
	case ByRarity:
		return func(w types.Wine) string { return string(c.DetermineRarity(w)) },
			keyStrings(classify.RarityKeys), nil
	case ByCollection:
		return func(types.Wine) string { return AllWines }, []string{AllWines}, nil
	}
	return nil, nil, unknownField(string(by))
}

func regionGroupKey(w types.Wine) classify.RegionKey {
	if k, ok := classify.RegionalClassification(w); ok {
		return k
	}
	return OtherRegion
}

func groupName(by GroupBy, key string) string {
	switch by {
	case ByType:
		return classify.Type(classify.TypeKey(key)).Name
	case ByRegion:
		if info, ok := classify.Region(classify.RegionKey(key)); ok {
			return info.Name
		}
		return "Other Regions"
	case ByRarity:
		return classify.Rarity(classify.RarityKey(key)).Name
	}
	return "Collection"
}

func newGroup(key, name string, wines []types.Wine, c *classify.Classifier) Group {
	g := Group{
		Key:                key,
		Name:               name,
		Count:              len(wines),
		RarityDistribution: make(map[string]int),
		Wines:              wines,
	}
	sum := 0
	for _, w := range wines {
		sum += w.Rating
		g.RarityDistribution[string(c.DetermineRarity(w))]++
	}
	if len(wines) > 0 {
		g.AverageRating = float64(sum) / float64(len(wines))
	}
	return g
}

// SortGrid returns a copy of wines ordered for the card grid: rating and
// year descending, name ascending without case, rarity by computed tier
// descending.
func SortGrid(wines []types.Wine, mode GridSort, c *classify.Classifier) ([]types.Wine, error) {
	if c == nil {
		c = classify.New()
	}
	var cmpFn func(a, b types.Wine) int
	switch mode {
	case GridByRating:
		cmpFn = func(a, b types.Wine) int { return b.Rating - a.Rating }
	case GridByYear:
		cmpFn = func(a, b types.Wine) int { return b.Year - a.Year }
	case GridByName:
		cmpFn = func(a, b types.Wine) int { return textfold.Compare(a.Name, b.Name) }
	case GridByRarity:
		cmpFn = func(a, b types.Wine) int {
			return c.DetermineRarity(b).Tier() - c.DetermineRarity(a).Tier()
		}
	default:
		return slices.Clone(wines), fmt.Errorf("%w: %q", ErrUnknownField, mode)
	}
	out := slices.Clone(wines)
	slices.SortStableFunc(out, cmpFn)
	return out, nil
}

func keyStrings[K ~string](keys []K) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
