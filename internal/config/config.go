// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the collection backend: memory, sqlite or badger.
	Store string `koanf:"store"`

	// DataDir holds the sqlite file or badger directory.
	DataDir string `koanf:"data_dir"`

	// SeedSampleData fills an empty collection with sample wines on start.
	SeedSampleData bool `koanf:"seed_sample_data"`

	// CurrentYear pins the year wine ages are measured against.
	// Zero uses the wall clock.
	CurrentYear int `koanf:"current_year"`

	// CORSAllowedOrigins lists origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		Store:              "sqlite",
		DataDir:            "./data",
		SeedSampleData:     true,
		CurrentYear:        0,
		CORSAllowedOrigins: []string{"*"},
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !oneOf(c.LogLevel, "", "debug", "info", "warn", "warning", "error"):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case !oneOf(c.LogFormat, "", "text", "json"):
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	case !oneOf(c.Store, "memory", "sqlite", "badger"):
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	case c.Store != "memory" && strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty for store %q", ErrInvalidConfig, c.Store)
	case c.CurrentYear < 0:
		return fmt.Errorf("%w: current_year must not be negative", ErrInvalidConfig)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
