package model_test

import (
	"testing"

	model "github.com/okian/winedex/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLevel(t *testing.T) {
	convey.Convey("Given experience totals", t, func() {
		convey.Convey("When experience is zero or negative", func() {
			convey.So(model.Level(0), convey.ShouldEqual, 1)
			convey.So(model.Level(-50), convey.ShouldEqual, 1)
		})

		convey.Convey("When experience crosses level boundaries", func() {
			convey.So(model.Level(99), convey.ShouldEqual, 1)
			convey.So(model.Level(100), convey.ShouldEqual, 2)
			convey.So(model.Level(399), convey.ShouldEqual, 2)
			convey.So(model.Level(400), convey.ShouldEqual, 3)
			convey.So(model.Level(900), convey.ShouldEqual, 4)
		})

		convey.Convey("Then the next threshold always lies above the current total", func() {
			for _, xp := range []int{0, 1, 99, 100, 250, 399, 400, 1234, 10_000} {
				level := model.Level(xp)
				convey.So(model.ExperienceForNextLevel(level), convey.ShouldBeGreaterThan, xp)
			}
		})
	})
}

func TestProgressFor(t *testing.T) {
	convey.Convey("Given a collector with 250 XP", t, func() {
		p := model.ProgressFor(250)

		convey.Convey("Then the progress view is consistent", func() {
			convey.So(p.Level, convey.ShouldEqual, 2)
			convey.So(p.Experience, convey.ShouldEqual, 250)
			convey.So(p.NextLevelAt, convey.ShouldEqual, 400)
			convey.So(p.ExperienceToLevel, convey.ShouldEqual, 150)
		})
	})
}
