// Package bonus computes provisional bonus points for in-progress fixtures
// from their BPS leaderboards, honoring the 3-2-1 tie-compression rules.
package bonus

import (
	"cmp"
	"slices"

	"github.com/nosata/ligalive/internal/domain/model"
)

// BPSIdentifier names the fixture stat leaderboard the engine ranks on.
const BPSIdentifier = "bps"

// Bonus award values by finishing position.
const (
	firstAward  = 3
	secondAward = 2
	thirdAward  = 1
)

// Provisional returns playerID -> provisional bonus for every fixture that is
// live right now (started but not settled). Settled fixtures are skipped:
// their bonus is already folded into the official totals.
//
// The result is a pure function of the fixtures snapshot; ties within a BPS
// score are ordered by player id so repeated computation is reproducible
// regardless of upstream list order.
func Provisional(fixtures []model.Fixture) map[int]int {
	awards := make(map[int]int)
	for _, fx := range fixtures {
		if !fx.Live() {
			continue
		}
		allocateFixture(fx, awards)
	}
	return awards
}

// allocateFixture applies the 3-2-1 rule to one fixture's BPS leaderboard.
//
// Tie compression: a 2-way tie for first awards 3+3 and then 1 to the next
// best player; a 3-way (or larger) tie for first exhausts all awards; a tie
// for second or third awards that position's value to every tied player and
// stops.
func allocateFixture(fx model.Fixture, awards map[int]int) {
	stat, ok := fx.Stat(BPSIdentifier)
	if !ok {
		return
	}

	ranked := rank(stat)
	groups := groupByValue(ranked)
	if len(groups) == 0 {
		return
	}

	first := groups[0]
	switch {
	case len(first) == 1:
		awards[first[0].PlayerID] += firstAward
	case len(first) == 2:
		for _, p := range first {
			awards[p.PlayerID] += firstAward
		}
		// The single next-best player takes the third-place award.
		if len(groups) > 1 {
			awards[groups[1][0].PlayerID] += thirdAward
		}
		return
	default: // 3+ way tie for first exhausts the podium
		for _, p := range first {
			awards[p.PlayerID] += firstAward
		}
		return
	}

	if len(groups) < 2 {
		return
	}
	second := groups[1]
	for _, p := range second {
		awards[p.PlayerID] += secondAward
	}
	if len(second) > 1 {
		return
	}

	if len(groups) < 3 {
		return
	}
	for _, p := range groups[2] {
		awards[p.PlayerID] += thirdAward
	}
}

// rank merges both sides of the leaderboard, drops non-positive scores, and
// imposes a total order: value descending, then player id ascending.
func rank(stat model.StatLine) []model.StatPair {
	merged := make([]model.StatPair, 0, len(stat.Home)+len(stat.Away))
	for _, p := range stat.Home {
		if p.Value > 0 {
			merged = append(merged, p)
		}
	}
	for _, p := range stat.Away {
		if p.Value > 0 {
			merged = append(merged, p)
		}
	}
	slices.SortFunc(merged, func(a, b model.StatPair) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	return merged
}

// groupByValue splits a ranked leaderboard into runs of equal value,
// preserving rank order.
func groupByValue(ranked []model.StatPair) [][]model.StatPair {
	var groups [][]model.StatPair
	for i := 0; i < len(ranked); {
		j := i
		for j < len(ranked) && ranked[j].Value == ranked[i].Value {
			j++
		}
		groups = append(groups, ranked[i:j])
		i = j
	}
	return groups
}
