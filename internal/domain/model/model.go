// Package model contains domain records decoded from upstream snapshots and
// passed between layers. All values are plain immutable data; scoring logic
// lives in the sibling domain packages.
package model

// Squad slot boundaries. Slots 1..11 start, 12..15 are the bench in
// substitution-priority order.
const (
	StartingSlots = 11
	SquadSlots    = 15

	// SettledMinutes is the elapsed-minutes threshold after which a
	// provisionally finished fixture counts as settled.
	SettledMinutes = 90
)

// Position classifies a player for formation accounting.
type Position int

const (
	Goalkeeper Position = iota + 1
	Defender
	Midfielder
	Forward
)

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return "UNK"
	}
}

// Valid reports whether p is one of the four known position classes.
func (p Position) Valid() bool {
	return p >= Goalkeeper && p <= Forward
}

// FormationMinimums returns the minimum starting-XI count per position:
// 1 GK, 3 DEF, 2 MID, 1 FWD.
func FormationMinimums() map[Position]int {
	return map[Position]int{
		Goalkeeper: 1,
		Defender:   3,
		Midfielder: 2,
		Forward:    1,
	}
}

// GameweekEvent is one scoring round as reported by the bootstrap snapshot.
// Lifecycle is externally driven; the core only reads these flags.
type GameweekEvent struct {
	ID        int
	IsCurrent bool
	Finished  bool
}

// StatPair is one (player, value) row of a fixture stat leaderboard.
type StatPair struct {
	PlayerID int
	Value    int
}

// StatLine is one per-identifier leaderboard of a fixture, split by side.
type StatLine struct {
	Identifier string
	Home       []StatPair
	Away       []StatPair
}

// Fixture is one match of a gameweek with its stat leaderboards.
type Fixture struct {
	ID                  int
	HomeTeamID          int
	AwayTeamID          int
	Started             bool
	Finished            bool
	FinishedProvisional bool
	MinutesElapsed      int
	Stats               []StatLine
}

// Settled reports whether the fixture's result counts as official for
// scoring: finished outright, or provisionally finished with at least
// SettledMinutes elapsed.
func (f Fixture) Settled() bool {
	return f.Finished || (f.FinishedProvisional && f.MinutesElapsed >= SettledMinutes)
}

// Live reports whether the fixture has started but is not yet settled.
func (f Fixture) Live() bool {
	return f.Started && !f.Settled()
}

// Stat returns the leaderboard with the given identifier, if present.
func (f Fixture) Stat(identifier string) (StatLine, bool) {
	for _, s := range f.Stats {
		if s.Identifier == identifier {
			return s, true
		}
	}
	return StatLine{}, false
}

// PlayerElement is one footballer from the bootstrap snapshot.
type PlayerElement struct {
	ID          int
	TeamID      int
	Position    Position
	DisplayName string
}

// Pick is one player's inclusion in an entry's squad for a gameweek.
type Pick struct {
	PlayerID      int
	Slot          int // 1..15; ascending bench slots mean higher substitution priority
	Multiplier    int // 0 bench, 1 starts, 2 captain, 3 triple captain
	IsCaptain     bool
	IsViceCaptain bool
}

// Starting reports whether the pick occupies a starting slot.
func (p Pick) Starting() bool {
	return p.Slot <= StartingSlots
}

// EntrySelection is one entry's squad for one gameweek.
type EntrySelection struct {
	EntryID      int
	Gameweek     int
	Picks        []Pick // ordered by slot
	TransferCost int    // points penalty for this week's transfers
	ActiveChip   string
}

// StartingXI returns the picks in starting slots, in slot order.
func (s EntrySelection) StartingXI() []Pick {
	out := make([]Pick, 0, StartingSlots)
	for _, p := range s.Picks {
		if p.Starting() {
			out = append(out, p)
		}
	}
	return out
}

// Bench returns the bench picks in slot (priority) order.
func (s EntrySelection) Bench() []Pick {
	out := make([]Pick, 0, SquadSlots-StartingSlots)
	for _, p := range s.Picks {
		if !p.Starting() {
			out = append(out, p)
		}
	}
	return out
}

// Captain returns the captain pick, if the selection has one.
func (s EntrySelection) Captain() (Pick, bool) {
	for _, p := range s.Picks {
		if p.IsCaptain {
			return p, true
		}
	}
	return Pick{}, false
}

// LiveElementStat is one player's official stats for one gameweek.
type LiveElementStat struct {
	PlayerID    int
	TotalPoints int // as published; includes official bonus once awarded
	Bonus       int
	Minutes     int
}

// PerformerRef names a player alongside the points credited to them.
type PerformerRef struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

// Substitution records one bench-for-starter swap.
type Substitution struct {
	Out int `json:"out"`
	In  int `json:"in"`
}

// EntryScore is the scored result for one entry in one gameweek.
type EntryScore struct {
	EntryID          int            `json:"entry_id"`
	Gameweek         int            `json:"gameweek"`
	TotalPoints      int            `json:"total_points"`
	BenchPoints      int            `json:"bench_points"`
	CaptainPoints    int            `json:"captain_points"`
	TransferCost     int            `json:"transfer_cost"`
	BestPerformers   []PerformerRef `json:"best_performers"`
	WorstPerformers  []PerformerRef `json:"worst_performers"`
	NewPlayerPoints  int            `json:"new_player_points"`
	SoldPlayerPoints int            `json:"sold_player_points"`
	Substitutions    []Substitution `json:"substitutions,omitempty"`

	// NoData marks a score produced from an empty or missing selection
	// snapshot; totals are zero but the record keeps its shape so roster
	// aggregation stays stable.
	NoData bool `json:"no_data,omitempty"`
}

// Bootstrap is the season-level snapshot: events plus player elements.
type Bootstrap struct {
	Events   []GameweekEvent
	Elements []PlayerElement
}

// LeagueStanding is one row of the classic-league table.
type LeagueStanding struct {
	EntryID     int
	EntryName   string
	ManagerName string
	SeasonTotal int
}

// League is the classic-league snapshot.
type League struct {
	Name      string
	Standings []LeagueStanding
}
