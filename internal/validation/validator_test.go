package validation_test

import (
	"errors"
	"testing"

	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/internal/validation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidate(t *testing.T) {
	v := validation.New()

	Convey("Given a well-formed wine", t, func() {
		w := types.Wine{Name: "Cloudy Bay", Year: 2022, Type: types.WhiteWine, Rating: 3}

		Convey("Then it passes", func() {
			So(v.Validate(w), ShouldBeNil)
		})

		Convey("When the palate uses known descriptors", func() {
			w.Palate = &types.Palate{
				Sweetness: types.Dry,
				Acidity:   types.LevelHigh,
				Alcohol:   types.AlcoholMedium,
				Body:      types.BodyLight,
				Finish:    types.FinishMedium,
			}
			So(v.Validate(w), ShouldBeNil)
		})
	})

	Convey("Given a wine with several problems", t, func() {
		w := types.Wine{
			Year:     2022,
			Type:     types.WineType("Orange Wine"),
			Rating:   7,
			Rarity:   types.Rarity("Mythic"),
			PhotoURL: "not a url",
			Palate:   &types.Palate{Body: types.Body("Chewy")},
		}

		err := v.Validate(w)

		Convey("Then every failing field is reported by its JSON path", func() {
			So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)

			var verr *validation.Error
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Fields, ShouldContainKey, "name")
			So(verr.Fields, ShouldContainKey, "type")
			So(verr.Fields, ShouldContainKey, "rating")
			So(verr.Fields, ShouldContainKey, "rarity")
			So(verr.Fields, ShouldContainKey, "photoUrl")
			So(verr.Fields, ShouldContainKey, "palate.body")
			So(verr.Fields["rating"], ShouldEqual, "must be less than or equal to 5")
		})
	})

	Convey("Given an inverted drinking window", t, func() {
		w := types.Wine{
			Name: "x", Type: types.RedWine, Rating: 3,
			PeakDrinkingWindow: &types.DrinkingWindow{Start: 2030, End: 2025},
		}
		var verr *validation.Error
		So(errors.As(v.Validate(w), &verr), ShouldBeTrue)
		So(verr.Fields, ShouldContainKey, "peakDrinkingWindow.end")
	})
}
