// Package types contains read-model types shared between the app service and
// the HTTP surface.
package types

import (
	"time"

	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/model"
)

// EntryView is one entry's live score enriched for display.
type EntryView struct {
	model.EntryScore
	Name        string `json:"name"`
	SeasonTotal int    `json:"season_total"`
}

// RosterView is one head-to-head roster on the scoreboard.
type RosterView struct {
	Name        string      `json:"name"`
	Entries     []EntryView `json:"entries"`
	WeeklySums  map[int]int `json:"weekly_sums"`
	SeasonTotal int         `json:"season_total"`
	Wins        int         `json:"wins"`
}

// Scoreboard is the full head-to-head read model published after a refresh.
type Scoreboard struct {
	Event        int             `json:"event"`
	DisplayEvent int             `json:"display_event"`
	Status       gameweek.Status `json:"status"`
	RosterA      RosterView      `json:"roster_a"`
	RosterB      RosterView      `json:"roster_b"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// MatchStatus describes how far a player's fixture has progressed.
type MatchStatus string

const (
	MatchNotStarted MatchStatus = "not_started"
	MatchLive       MatchStatus = "live"
	MatchFinished   MatchStatus = "finished"
)

// PlayerToPlay is one starting player whose fixture has not finished.
type PlayerToPlay struct {
	Name          string      `json:"name"`
	IsCaptain     bool        `json:"is_captain"`
	IsViceCaptain bool        `json:"is_vice_captain"`
	Multiplier    int         `json:"multiplier"`
	Status        MatchStatus `json:"status"`
}

// CaptainView summarizes an entry's captain for the league table.
type CaptainView struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Played    bool   `json:"played"`
	IsPlaying bool   `json:"is_playing"`
}

// LeagueEntry is one classic-league row enriched with live data.
type LeagueEntry struct {
	EntryID        int            `json:"entry_id"`
	EntryName      string         `json:"entry_name"`
	ManagerName    string         `json:"manager_name"`
	SeasonTotal    int            `json:"season_total"`
	LivePoints     int            `json:"live_points"`
	Waiting        []PlayerToPlay `json:"waiting"`
	Playing        []PlayerToPlay `json:"playing"`
	ToPlayCount    int            `json:"to_play_count"`
	HasLivePlayers bool           `json:"has_live_players"`
	Captain        *CaptainView   `json:"captain,omitempty"`
}

// League is the enriched classic-league table.
type League struct {
	Name    string        `json:"name"`
	Entries []LeagueEntry `json:"entries"`
}

// SquadPlayer is one pick of an entry's squad for the detail view.
type SquadPlayer struct {
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Multiplier    int    `json:"multiplier"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

// EntryDetail is the per-entry squad view.
type EntryDetail struct {
	EntryID       int                  `json:"entry_id"`
	Name          string               `json:"name"`
	Gameweek      int                  `json:"gameweek"`
	StartingXI    []SquadPlayer        `json:"starting_xi"`
	Bench         []SquadPlayer        `json:"bench"`
	TotalPoints   int                  `json:"total_points"`
	BenchPoints   int                  `json:"bench_points"`
	ActiveChip    string               `json:"active_chip,omitempty"`
	Substitutions []model.Substitution `json:"substitutions,omitempty"`
}
