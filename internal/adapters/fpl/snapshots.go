package fpl

import (
	"context"
	"fmt"

	"github.com/nosata/ligalive/internal/domain/model"
	"github.com/nosata/ligalive/pkg/metrics"
)

// Snapshot kinds used for metric labels.
const (
	kindBootstrap = "bootstrap"
	kindFixtures  = "fixtures"
	kindLive      = "live"
	kindPicks     = "picks"
	kindHistory   = "history"
	kindStandings = "standings"
)

type wireEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	Finished  bool `json:"finished"`
}

type wireElement struct {
	ID          int    `json:"id"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
}

type wireBootstrap struct {
	Events   []wireEvent   `json:"events"`
	Elements []wireElement `json:"elements"`
}

// displayName prefers the short web name when it is both present and actually
// shorter than the full name.
func (e wireElement) displayName() string {
	full := e.FirstName + " " + e.SecondName
	if e.WebName != "" && len(e.WebName) < len(full) {
		return e.WebName
	}
	return full
}

// Bootstrap fetches the season-level snapshot: events and player elements.
func (c *Client) Bootstrap(ctx context.Context) (model.Bootstrap, error) {
	var raw wireBootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", &raw); err != nil {
		metrics.RecordSnapshotFetch(kindBootstrap, "error")
		return model.Bootstrap{}, err
	}
	if len(raw.Events) == 0 {
		metrics.RecordSnapshotFetch(kindBootstrap, "incomplete")
		return model.Bootstrap{}, fmt.Errorf("%w: bootstrap has no events", ErrIncompleteSnapshot)
	}
	metrics.RecordSnapshotFetch(kindBootstrap, "ok")

	out := model.Bootstrap{
		Events:   make([]model.GameweekEvent, 0, len(raw.Events)),
		Elements: make([]model.PlayerElement, 0, len(raw.Elements)),
	}
	for _, ev := range raw.Events {
		out.Events = append(out.Events, model.GameweekEvent{
			ID:        ev.ID,
			IsCurrent: ev.IsCurrent,
			Finished:  ev.Finished,
		})
	}
	for _, el := range raw.Elements {
		out.Elements = append(out.Elements, model.PlayerElement{
			ID:          el.ID,
			TeamID:      el.Team,
			Position:    model.Position(el.ElementType),
			DisplayName: el.displayName(),
		})
	}
	return out, nil
}

type wireStatPair struct {
	Element int `json:"element"`
	Value   int `json:"value"`
}

type wireStatLine struct {
	Identifier string         `json:"identifier"`
	Home       []wireStatPair `json:"h"`
	Away       []wireStatPair `json:"a"`
}

type wireFixture struct {
	ID                  int            `json:"id"`
	TeamH               int            `json:"team_h"`
	TeamA               int            `json:"team_a"`
	Started             bool           `json:"started"`
	Finished            bool           `json:"finished"`
	FinishedProvisional bool           `json:"finished_provisional"`
	Minutes             int            `json:"minutes"`
	Stats               []wireStatLine `json:"stats"`
}

// Fixtures fetches the fixtures of one gameweek with their stat leaderboards.
func (c *Client) Fixtures(ctx context.Context, event int) ([]model.Fixture, error) {
	var raw []wireFixture
	path := fmt.Sprintf("/fixtures/?event=%d", event)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		metrics.RecordSnapshotFetch(kindFixtures, "error")
		return nil, err
	}
	metrics.RecordSnapshotFetch(kindFixtures, "ok")

	out := make([]model.Fixture, 0, len(raw))
	for _, fx := range raw {
		f := model.Fixture{
			ID:                  fx.ID,
			HomeTeamID:          fx.TeamH,
			AwayTeamID:          fx.TeamA,
			Started:             fx.Started,
			Finished:            fx.Finished,
			FinishedProvisional: fx.FinishedProvisional,
			MinutesElapsed:      fx.Minutes,
			Stats:               make([]model.StatLine, 0, len(fx.Stats)),
		}
		for _, st := range fx.Stats {
			f.Stats = append(f.Stats, model.StatLine{
				Identifier: st.Identifier,
				Home:       convertPairs(st.Home),
				Away:       convertPairs(st.Away),
			})
		}
		out = append(out, f)
	}
	return out, nil
}

func convertPairs(in []wireStatPair) []model.StatPair {
	out := make([]model.StatPair, 0, len(in))
	for _, p := range in {
		out = append(out, model.StatPair{PlayerID: p.Element, Value: p.Value})
	}
	return out
}

type wireLiveStats struct {
	TotalPoints int `json:"total_points"`
	Bonus       int `json:"bonus"`
	Minutes     int `json:"minutes"`
}

type wireLiveElement struct {
	ID    int           `json:"id"`
	Stats wireLiveStats `json:"stats"`
}

type wireLive struct {
	Elements []wireLiveElement `json:"elements"`
}

// Live fetches the per-player official stats of one gameweek.
func (c *Client) Live(ctx context.Context, event int) ([]model.LiveElementStat, error) {
	var raw wireLive
	path := fmt.Sprintf("/event/%d/live/", event)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		metrics.RecordSnapshotFetch(kindLive, "error")
		return nil, err
	}
	metrics.RecordSnapshotFetch(kindLive, "ok")

	out := make([]model.LiveElementStat, 0, len(raw.Elements))
	for _, el := range raw.Elements {
		out = append(out, model.LiveElementStat{
			PlayerID:    el.ID,
			TotalPoints: el.Stats.TotalPoints,
			Bonus:       el.Stats.Bonus,
			Minutes:     el.Stats.Minutes,
		})
	}
	return out, nil
}

type wirePick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type wireEntryHistory struct {
	EventTransfersCost int `json:"event_transfers_cost"`
}

type wirePicks struct {
	Picks        []wirePick       `json:"picks"`
	EntryHistory wireEntryHistory `json:"entry_history"`
	ActiveChip   string           `json:"active_chip"`
}

// Picks fetches one entry's squad selection for one gameweek. A missing or
// empty selection returns ErrIncompleteSnapshot so callers can degrade to a
// zero score instead of aborting the refresh.
func (c *Client) Picks(ctx context.Context, entry, event int) (model.EntrySelection, error) {
	var raw wirePicks
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entry, event)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		metrics.RecordSnapshotFetch(kindPicks, "error")
		return model.EntrySelection{}, err
	}
	if len(raw.Picks) == 0 {
		metrics.RecordSnapshotFetch(kindPicks, "incomplete")
		return model.EntrySelection{}, fmt.Errorf("%w: entry %d has no picks for event %d", ErrIncompleteSnapshot, entry, event)
	}
	metrics.RecordSnapshotFetch(kindPicks, "ok")

	sel := model.EntrySelection{
		EntryID:      entry,
		Gameweek:     event,
		Picks:        make([]model.Pick, 0, len(raw.Picks)),
		TransferCost: raw.EntryHistory.EventTransfersCost,
		ActiveChip:   raw.ActiveChip,
	}
	for _, p := range raw.Picks {
		sel.Picks = append(sel.Picks, model.Pick{
			PlayerID:      p.Element,
			Slot:          p.Position,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}
	return sel, nil
}

type wireHistoryWeek struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	EventTransfersCost int `json:"event_transfers_cost"`
}

type wireHistory struct {
	Current []wireHistoryWeek `json:"current"`
}

// History fetches one entry's per-gameweek net scores: official points minus
// the transfer penalty of each week.
func (c *Client) History(ctx context.Context, entry int) (map[int]int, error) {
	var raw wireHistory
	path := fmt.Sprintf("/entry/%d/history/", entry)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		metrics.RecordSnapshotFetch(kindHistory, "error")
		return nil, err
	}
	metrics.RecordSnapshotFetch(kindHistory, "ok")

	out := make(map[int]int, len(raw.Current))
	for _, wk := range raw.Current {
		out[wk.Event] = wk.Points - wk.EventTransfersCost
	}
	return out, nil
}

type wireStandingRow struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Total      int    `json:"total"`
}

type wireStandings struct {
	League struct {
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		Results []wireStandingRow `json:"results"`
	} `json:"standings"`
}

// LeagueStandings fetches the classic-league table.
func (c *Client) LeagueStandings(ctx context.Context, league int) (model.League, error) {
	var raw wireStandings
	path := fmt.Sprintf("/leagues-classic/%d/standings/", league)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		metrics.RecordSnapshotFetch(kindStandings, "error")
		return model.League{}, err
	}
	metrics.RecordSnapshotFetch(kindStandings, "ok")

	out := model.League{
		Name:      raw.League.Name,
		Standings: make([]model.LeagueStanding, 0, len(raw.Standings.Results)),
	}
	for _, row := range raw.Standings.Results {
		out.Standings = append(out.Standings, model.LeagueStanding{
			EntryID:     row.Entry,
			EntryName:   row.EntryName,
			ManagerName: row.PlayerName,
			SeasonTotal: row.Total,
		})
	}
	return out, nil
}
