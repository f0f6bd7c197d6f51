// Package livepoints merges official per-player stats with provisional bonus
// into a single points map for one gameweek.
package livepoints

import (
	"github.com/nosata/ligalive/internal/domain/bonus"
	"github.com/nosata/ligalive/internal/domain/model"
)

// Compute returns playerID -> live points for one gameweek.
//
// For players whose fixture is settled the official total already includes
// the published bonus and is used as-is. For everyone else the official bonus
// is stripped and replaced with the provisional award computed from the live
// BPS leaderboards (zero if the player has none). Players with no fixture in
// the snapshot are treated as unsettled, so their official bonus (necessarily
// zero) is simply passed through.
//
// The map is the sole numeric input to downstream scoring; it never reads
// picks or entries.
func Compute(stats []model.LiveElementStat, fixtures []model.Fixture) map[int]int {
	provisional := bonus.Provisional(fixtures)
	byPlayer := FixtureIndex(fixtures)

	points := make(map[int]int, len(stats))
	for _, st := range stats {
		fx, ok := byPlayer[st.PlayerID]
		if ok && fx.Settled() {
			points[st.PlayerID] = st.TotalPoints
			continue
		}
		points[st.PlayerID] = st.TotalPoints - st.Bonus + provisional[st.PlayerID]
	}
	return points
}

// FixtureIndex maps every player appearing on a fixture stat leaderboard to
// that fixture. Membership on any leaderboard of a fixture places the player
// in it; the "bps" and "minutes" identifiers cover everyone who featured.
func FixtureIndex(fixtures []model.Fixture) map[int]model.Fixture {
	idx := make(map[int]model.Fixture)
	for _, fx := range fixtures {
		for _, line := range fx.Stats {
			for _, p := range line.Home {
				idx[p.PlayerID] = fx
			}
			for _, p := range line.Away {
				idx[p.PlayerID] = fx
			}
		}
	}
	return idx
}

// Settlement returns playerID -> whether that player's fixture is settled.
// Players absent from every fixture leaderboard are reported unsettled.
func Settlement(fixtures []model.Fixture) map[int]bool {
	settled := make(map[int]bool)
	for player, fx := range FixtureIndex(fixtures) {
		settled[player] = fx.Settled()
	}
	return settled
}

// Minutes extracts playerID -> minutes played from the official stats.
func Minutes(stats []model.LiveElementStat) map[int]int {
	minutes := make(map[int]int, len(stats))
	for _, st := range stats {
		minutes[st.PlayerID] = st.Minutes
	}
	return minutes
}
