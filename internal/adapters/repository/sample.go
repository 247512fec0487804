package repository

import (
	"time"

	"github.com/okian/winedex/internal/domain/types"
)

// SampleWines returns the starter collection seeded into an empty store.
// Rarity is left empty so the classifier fills it on import.
func SampleWines() []types.Wine {
	added := time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC)
	abv := func(v float64) *float64 { return &v }

	return []types.Wine{
		{
			ID: 1, Name: "Château Margaux", Year: 2015, Region: "Bordeaux, France",
			Producer: "Château Margaux", Type: types.RedWine, Grape: "Cabernet Sauvignon",
			Rating: 5, TastingNotes: "Blackcurrant, violets and cedar with silky tannins.",
			Captured: true, DateAdded: added, ExperiencePoints: 250, ABV: abv(13.5),
			Palate: &types.Palate{
				Sweetness: types.Dry, Acidity: types.LevelMediumPlus, Tannin: types.LevelHigh,
				Alcohol: types.AlcoholMedium, Body: types.BodyFull, Finish: types.FinishLong,
			},
			Badges: []string{"first-growth"},
		},
		{
			ID: 2, Name: "Cloudy Bay Sauvignon Blanc", Year: 2022, Region: "Marlborough, New Zealand",
			Producer: "Cloudy Bay", Type: types.WhiteWine, Grape: "Sauvignon Blanc",
			Rating: 4, TastingNotes: "Passion fruit, lime zest and cut grass.",
			Captured: true, DateAdded: added.Add(24 * time.Hour), ExperiencePoints: 100, ABV: abv(13),
		},
		{
			ID: 3, Name: "Dr. Loosen Wehlener Sonnenuhr Kabinett", Year: 2019, Region: "Mosel, Germany",
			Producer: "Dr. Loosen", Type: types.WhiteWine, Grape: "Riesling",
			Rating: 4, TastingNotes: "Green apple, slate and a touch of honey.",
			Captured: false, DateAdded: added.Add(48 * time.Hour), ExperiencePoints: 120, ABV: abv(8),
		},
		{
			ID: 4, Name: "Marqués de Riscal Reserva", Year: 2017, Region: "Rioja, Spain",
			Producer: "Marqués de Riscal", Type: types.RedWine, Grape: "Tempranillo",
			Rating: 3, TastingNotes: "Red cherry, vanilla and dill from American oak.",
			Captured: true, DateAdded: added.Add(72 * time.Hour), ExperiencePoints: 60,
			Palate: &types.Palate{
				Sweetness: types.Dry, Acidity: types.LevelMedium, Tannin: types.LevelMedium,
				Alcohol: types.AlcoholMedium, Body: types.BodyMedium, Finish: types.FinishMedium,
			},
		},
		{
			ID: 5, Name: "Moët & Chandon Impérial", Year: 2018, Region: "Champagne, France",
			Producer: "Moët & Chandon", Type: types.Sparkling, Grape: "Chardonnay, Pinot Noir",
			Rating: 4, TastingNotes: "Brioche, green apple and fine persistent mousse.",
			Captured: false, DateAdded: added.Add(96 * time.Hour), ExperiencePoints: 90,
		},
		{
			ID: 6, Name: "Catena Malbec", Year: 2021, Region: "Mendoza, Argentina",
			Producer: "Catena Zapata", Type: types.RedWine, Grape: "Malbec",
			Rating: 3, TastingNotes: "Plum, mocha and soft violet notes.",
			Captured: true, DateAdded: added.Add(120 * time.Hour), ExperiencePoints: 40,
		},
	}
}
