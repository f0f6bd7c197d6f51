// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// BaseURL is the upstream fantasy API root.
	BaseURL string `koanf:"base_url"`

	// UserAgent identifies this service to the upstream API.
	UserAgent string `koanf:"user_agent"`

	// LeagueID is the classic league whose standings are tracked.
	LeagueID int `koanf:"league_id"`

	// RosterA and RosterB are the two fixed head-to-head rosters (entry ids).
	RosterA []int `koanf:"roster_a"`
	RosterB []int `koanf:"roster_b"`

	// RosterAName and RosterBName label the two rosters on the scoreboard.
	RosterAName string `koanf:"roster_a_name"`
	RosterBName string `koanf:"roster_b_name"`

	// EntryNames maps entry ids (as strings) to display names.
	EntryNames map[string]string `koanf:"entry_names"`

	// RefreshIntervalSec is how often the scoreboard is recomputed.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// FetchTimeoutSec bounds a single upstream request.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// FetchDelayMS is a polite delay between consecutive upstream requests.
	FetchDelayMS int `koanf:"fetch_delay_ms"`

	// Snapshot cache TTLs. Live snapshots go stale quickly; settled and
	// bootstrap data can be held much longer.
	TTLLiveSec      int `koanf:"ttl_live_sec"`
	TTLSettledSec   int `koanf:"ttl_settled_sec"`
	TTLBootstrapSec int `koanf:"ttl_bootstrap_sec"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		BaseURL:            "https://fantasy.premierleague.com/api",
		UserAgent:          "ligalive/1.0",
		LeagueID:           412037,
		RosterA:            []int{4909598, 4658819, 3070732},
		RosterB:            []int{2227937, 4895434, 729967},
		RosterAName:        "Roster A",
		RosterBName:        "Roster B",
		EntryNames:         map[string]string{},
		RefreshIntervalSec: 60,
		FetchTimeoutSec:    10,
		FetchDelayMS:       250,
		TTLLiveSec:         180,
		TTLSettledSec:      3600,
		TTLBootstrapSec:    3600,
	}
	return c
}
