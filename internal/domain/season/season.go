// Package season rolls weekly entry scores up into roster totals and
// head-to-head win tallies.
package season

import (
	"maps"
	"slices"
)

// WeeklyScores maps entryID -> gameweek -> net weekly score (live points
// minus that week's transfer penalty).
type WeeklyScores map[int]map[int]int

// RosterTotals is one roster's season roll-up.
type RosterTotals struct {
	// WeeklySums holds the roster's summed net score per gameweek.
	WeeklySums map[int]int `json:"weekly_sums"`
	// Total is the sum of WeeklySums across the season so far.
	Total int `json:"total"`
	// Wins counts gameweeks this roster strictly outscored the other.
	Wins int `json:"wins"`
}

// Aggregate computes both rosters' weekly sums, season totals and win
// tallies. A week scores a win only when both rosters have a sum for it and
// one is strictly greater; ties award neither side. The computation is a pure
// function of its inputs: aggregating the same maps twice yields identical
// results.
func Aggregate(scores WeeklyScores, rosterA, rosterB []int) (RosterTotals, RosterTotals) {
	a := RosterTotals{WeeklySums: weeklySums(scores, rosterA)}
	b := RosterTotals{WeeklySums: weeklySums(scores, rosterB)}

	for _, sum := range a.WeeklySums {
		a.Total += sum
	}
	for _, sum := range b.WeeklySums {
		b.Total += sum
	}

	for _, week := range slices.Sorted(maps.Keys(a.WeeklySums)) {
		sumB, ok := b.WeeklySums[week]
		if !ok {
			continue
		}
		sumA := a.WeeklySums[week]
		switch {
		case sumA > sumB:
			a.Wins++
		case sumB > sumA:
			b.Wins++
		}
	}

	return a, b
}

// MergeLive overrides one entry's score for the given week with the freshest
// live figure, so season-to-date totals always reflect the current live
// computation rather than a stale historical snapshot. The input map is not
// mutated.
func MergeLive(history map[int]int, week, liveNet int) map[int]int {
	merged := make(map[int]int, len(history)+1)
	maps.Copy(merged, history)
	merged[week] = liveNet
	return merged
}

// weeklySums adds up the net scores of the roster's entries per gameweek.
// Entries without data simply contribute nothing.
func weeklySums(scores WeeklyScores, roster []int) map[int]int {
	sums := make(map[int]int)
	for _, entryID := range roster {
		for week, net := range scores[entryID] {
			sums[week] += net
		}
	}
	return sums
}
