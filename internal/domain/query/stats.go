package query

import (
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/model"
	"github.com/okian/winedex/internal/domain/types"
)

// Summarize aggregates wines in a single pass. Type, rarity and region
// counts use the classifier's computed keys. An empty collection averages 0.
func Summarize(wines []types.Wine, c *classify.Classifier) model.CollectionStats {
	if c == nil {
		c = classify.New()
	}
	stats := model.CollectionStats{
		TotalWines: len(wines),
		ByType:     make(map[string]int),
		ByRarity:   make(map[string]int),
		ByRegion:   make(map[string]int),
	}

	regions := make(map[string]struct{})
	grapes := make(map[string]struct{})
	ratingSum := 0
	for _, w := range wines {
		if w.Captured {
			stats.CapturedWines++
		}
		regions[w.Region] = struct{}{}
		grapes[w.Grape] = struct{}{}
		ratingSum += w.Rating
		stats.TotalExperience += w.ExperiencePoints

		stats.ByType[string(classify.ClassifyType(w))]++
		stats.ByRarity[string(c.DetermineRarity(w))]++
		stats.ByRegion[string(regionGroupKey(w))]++
	}

	stats.UniqueRegions = len(regions)
	stats.UniqueGrapes = len(grapes)
	if len(wines) > 0 {
		stats.AverageRating = float64(ratingSum) / float64(len(wines))
	}
	stats.Progress = model.ProgressFor(stats.TotalExperience)
	return stats
}
