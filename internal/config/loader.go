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
//  1. defaults (New(ctx))
//  2. file (YAML) if LIGA_CONFIG is set
//  3. env (prefix LIGA_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("LIGA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LIGA_ADDR, LIGA_LEAGUE_ID, ...
	// Map env keys like LIGA_LEAGUE_ID -> league_id (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("LIGA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "liga_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy of the defaults.
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	case cfg.LeagueID <= 0:
		return fmt.Errorf("%w: league_id must be positive", ErrInvalidConfig)
	case len(cfg.RosterA) == 0 || len(cfg.RosterB) == 0:
		return fmt.Errorf("%w: both rosters need at least one entry", ErrInvalidConfig)
	case cfg.RefreshIntervalSec <= 0:
		return fmt.Errorf("%w: refresh_interval_sec must be positive", ErrInvalidConfig)
	}
	if overlap(cfg.RosterA, cfg.RosterB) {
		return fmt.Errorf("%w: rosters must not share entries", ErrInvalidConfig)
	}
	return nil
}

func overlap(a, b []int) bool {
	seen := make(map[int]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			return true
		}
	}
	return false
}
