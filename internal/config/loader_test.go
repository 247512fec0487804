package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/winedex/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Store, convey.ShouldEqual, "sqlite")
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WINEDEX_ADDR", ":8080")
			_ = os.Setenv("WINEDEX_STORE", "badger")
			_ = os.Setenv("WINEDEX_SEED_SAMPLE_DATA", "false")
			_ = os.Setenv("WINEDEX_CURRENT_YEAR", "2030")
			_ = os.Setenv("WINEDEX_CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Store, convey.ShouldEqual, "badger")
				convey.So(cfg.SeedSampleData, convey.ShouldBeFalse)
				convey.So(cfg.CurrentYear, convey.ShouldEqual, 2030)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"http://a.test", "http://b.test"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
# cellar settings
addr: ":9090"
store: memory
log_format: json
current_year: 2025
`)
			_ = os.Setenv("WINEDEX_CONFIG", tmpFile)
			_ = os.Setenv("WINEDEX_ADDR", ":8081")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.Store, convey.ShouldEqual, "memory")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.CurrentYear, convey.ShouldEqual, 2025)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("WINEDEX_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("WINEDEX_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the file sets an empty addr", func() {
			_ = os.Setenv("WINEDEX_CONFIG", createTempConfigFile(t, "addr: \"\"\n"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return validation error for empty addr", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigWatch(t *testing.T) {
	convey.Convey("Given no config file", t, func() {
		clearConfigEnvVars()

		convey.So(errors.Is(config.Watch(context.Background(), func(*config.Config, error) {}), config.ErrNoConfigFile), convey.ShouldBeTrue)
	})

	convey.Convey("Given a watched config file", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		path := createTempConfigFile(t, "store: memory\nlog_level: info\n")
		_ = os.Setenv("WINEDEX_CONFIG", path)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan *config.Config, 4)
		err := config.Watch(ctx, func(cfg *config.Config, err error) {
			if err != nil {
				return
			}
			select {
			case changes <- cfg:
			default:
			}
		})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the file changes", func() {
			convey.So(os.WriteFile(path, []byte("store: memory\nlog_level: debug\n"), 0o600), convey.ShouldBeNil)

			convey.Convey("Then the new level is delivered", func() {
				level := ""
				deadline := time.After(5 * time.Second)
			wait:
				for level != "debug" {
					select {
					case got := <-changes:
						level = got.LogLevel
					case <-deadline:
						break wait
					}
				}
				convey.So(level, convey.ShouldEqual, "debug")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"WINEDEX_CONFIG",
		"WINEDEX_ADDR",
		"WINEDEX_STORE",
		"WINEDEX_SEED_SAMPLE_DATA",
		"WINEDEX_CURRENT_YEAR",
		"WINEDEX_CORS_ALLOWED_ORIGINS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winedex.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
