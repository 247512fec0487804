package config_test

import (
	"errors"
	"testing"

	"github.com/okian/winedex/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Store, convey.ShouldEqual, "sqlite")
			convey.So(cfg.DataDir, convey.ShouldEqual, "./data")
			convey.So(cfg.SeedSampleData, convey.ShouldBeTrue)
			convey.So(cfg.CurrentYear, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field each", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":       func(c *config.Config) { c.Addr = " " },
			"bad log level":    func(c *config.Config) { c.LogLevel = "verbose" },
			"bad log format":   func(c *config.Config) { c.LogFormat = "xml" },
			"unknown store":    func(c *config.Config) { c.Store = "postgres" },
			"missing data dir": func(c *config.Config) { c.DataDir = "" },
			"negative year":    func(c *config.Config) { c.CurrentYear = -1 },
		}

		for name, mutate := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				cfg := config.New()
				mutate(cfg)
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then a memory store needs no data dir", func() {
			cfg := config.New()
			cfg.Store = "memory"
			cfg.DataDir = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
