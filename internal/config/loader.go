package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names.
const (
	EnvPrefix     = "WINEDEX_"
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WINEDEX_CONFIG is set
//  3. env (prefix WINEDEX_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(EnvConfigPath))
}

// LoadFile is Load with an explicit file path. An empty path skips the file layer.
func LoadFile(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Map env keys like WINEDEX_DATA_DIR -> data_dir (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// The path variable itself is not a config field.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch reloads the config file named by WINEDEX_CONFIG whenever it
// changes and passes the result to onChange until ctx is done. Without a
// config file there is nothing to watch and ErrNoConfigFile is returned.
func Watch(ctx context.Context, onChange func(*Config, error)) error {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return ErrNoConfigFile
	}

	fp := file.Provider(path)
	err := fp.Watch(func(_ any, err error) {
		if err != nil {
			onChange(nil, fmt.Errorf("%w: %w", ErrLoadConfig, err))
			return
		}
		onChange(LoadFile(ctx, path))
	})
	if err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrLoadConfig, path, err)
	}

	go func() {
		<-ctx.Done()
		_ = fp.Unwatch()
	}()
	return nil
}
