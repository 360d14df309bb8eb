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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if ARENA_CONFIG is set
//  3. env (prefix ARENA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ARENA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ARENA_ADDR, ARENA_K_FACTOR, ...
	// Keys map flat: ARENA_K_FACTOR -> k_factor, matching the koanf tags.
	envProvider := env.Provider("ARENA_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "arena_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Store != StoreMemory && c.Store != StoreSQLite:
		return fmt.Errorf("%w: store must be %q or %q", ErrInvalidConfig, StoreMemory, StoreSQLite)
	case c.Store == StoreSQLite && c.SQLitePath == "":
		return fmt.Errorf("%w: sqlite_path required for sqlite store", ErrInvalidConfig)
	case c.KFactor <= 0:
		return fmt.Errorf("%w: k_factor must be positive", ErrInvalidConfig)
	case c.BaseRating <= 0:
		return fmt.Errorf("%w: base_rating must be positive", ErrInvalidConfig)
	}
	return nil
}
