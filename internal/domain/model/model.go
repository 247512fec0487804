// Package model contains collection-level shapes passed between layers.
package model

import "math"

// xpPerLevel scales the square-root level curve.
const xpPerLevel = 100

// CollectionStats summarises a collection in one pass.
type CollectionStats struct {
	TotalWines      int            `json:"totalWines"`
	CapturedWines   int            `json:"capturedWines"`
	UniqueRegions   int            `json:"uniqueRegions"`
	UniqueGrapes    int            `json:"uniqueGrapes"`
	AverageRating   float64        `json:"averageRating"`
	TotalExperience int            `json:"totalExperience"`
	Progress        Progress       `json:"progress"`
	ByType          map[string]int `json:"byType"`
	ByRarity        map[string]int `json:"byRarity"`
	ByRegion        map[string]int `json:"byRegion"`
}

// Progress is the collector level derived from total experience.
type Progress struct {
	Level             int `json:"level"`
	Experience        int `json:"experience"`
	NextLevelAt       int `json:"nextLevelAt"`
	ExperienceToLevel int `json:"experienceToLevel"`
}

// Level maps experience points onto a collector level, starting at 1.
// Negative experience counts as none.
func Level(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(xp)/xpPerLevel))) + 1
}

// ExperienceForNextLevel is the total experience at which level+1 starts.
func ExperienceForNextLevel(level int) int {
	return level * level * xpPerLevel
}

// ProgressFor builds the Progress view for a total experience value.
func ProgressFor(xp int) Progress {
	level := Level(xp)
	next := ExperienceForNextLevel(level)
	remaining := next - xp
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		Level:             level,
		Experience:        xp,
		NextLevelAt:       next,
		ExperienceToLevel: remaining,
	}
}
