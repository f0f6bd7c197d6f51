// Package lineup applies formation-constrained bench substitutions for
// starters who did not play.
package lineup

import (
	"cmp"
	"slices"

	"github.com/nosata/ligalive/internal/domain/model"
)

// Result is the corrected lineup after substitutions. StartingXI and Bench
// are ordered by slot; Substitutions lists swaps in the order they were made.
//
// The corrected lineup is authoritative: all downstream point totals are
// computed from it, not from the raw selection.
type Result struct {
	StartingXI    []model.Pick
	Bench         []model.Pick
	Substitutions []model.Substitution
}

// Selection rebuilds an EntrySelection carrying the corrected lineup, with
// multipliers moved along: an incoming substitute scores at multiplier 1 and
// the outgoing starter drops to 0. Captaincy multipliers stay with the
// captain if they remain in the XI.
func (r Result) Selection(base model.EntrySelection) model.EntrySelection {
	out := base
	out.Picks = make([]model.Pick, 0, len(r.StartingXI)+len(r.Bench))
	for _, p := range r.StartingXI {
		if p.Multiplier == 0 {
			p.Multiplier = 1
		}
		out.Picks = append(out.Picks, p)
	}
	for _, p := range r.Bench {
		p.Multiplier = 0
		out.Picks = append(out.Picks, p)
	}
	slices.SortFunc(out.Picks, func(a, b model.Pick) int {
		return cmp.Compare(a.Slot, b.Slot)
	})
	return out
}

// Apply scans starting slots in ascending order and swaps in the
// highest-priority eligible bench player for every starter who recorded zero
// minutes in a settled fixture. A swap is eligible only if the resulting XI
// keeps at least 1 GK, 3 DEF, 2 MID and 1 FWD. Starters with no eligible
// replacement stay in the XI even at zero points.
func Apply(sel model.EntrySelection, minutes map[int]int, settled map[int]bool, positions map[int]model.Position) Result {
	xi := sel.StartingXI()
	bench := sel.Bench()
	slices.SortFunc(xi, func(a, b model.Pick) int { return cmp.Compare(a.Slot, b.Slot) })
	slices.SortFunc(bench, func(a, b model.Pick) int { return cmp.Compare(a.Slot, b.Slot) })

	counts := formationCounts(xi, positions)
	minimums := model.FormationMinimums()

	// Starters swapped out occupy bench slots afterwards but must not be
	// swapped back in for a later qualifying starter.
	swappedOut := make(map[int]bool)

	var subs []model.Substitution
	for i := range xi {
		out := xi[i]
		if minutes[out.PlayerID] != 0 || !settled[out.PlayerID] {
			continue
		}

		benchIdx := findSubstitute(bench, out, counts, minimums, positions, swappedOut)
		if benchIdx < 0 {
			continue
		}

		in := bench[benchIdx]
		subs = append(subs, model.Substitution{Out: out.PlayerID, In: in.PlayerID})
		swappedOut[out.PlayerID] = true

		// Swap slots so the incoming player starts and the outgoing one
		// takes the vacated bench slot.
		xi[i], bench[benchIdx] = in, out
		xi[i].Slot, bench[benchIdx].Slot = out.Slot, in.Slot

		// Recompute formation counts before evaluating the next starter.
		counts[positions[out.PlayerID]]--
		counts[positions[in.PlayerID]]++
	}

	return Result{StartingXI: xi, Bench: bench, Substitutions: subs}
}

// findSubstitute returns the index of the first bench player, in priority
// order, whose swap keeps the formation at or above the minimums. Returns -1
// when no bench player is eligible.
func findSubstitute(bench []model.Pick, out model.Pick, counts map[model.Position]int, minimums map[model.Position]int, positions map[int]model.Position, swappedOut map[int]bool) int {
	outPos := positions[out.PlayerID]
	for i, cand := range bench {
		if swappedOut[cand.PlayerID] {
			continue
		}
		inPos := positions[cand.PlayerID]
		if !inPos.Valid() {
			continue
		}

		ok := true
		for pos, minimum := range minimums {
			n := counts[pos]
			if pos == outPos {
				n--
			}
			if pos == inPos {
				n++
			}
			if n < minimum {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func formationCounts(xi []model.Pick, positions map[int]model.Position) map[model.Position]int {
	counts := make(map[model.Position]int, 4)
	for _, p := range xi {
		if pos := positions[p.PlayerID]; pos.Valid() {
			counts[pos]++
		}
	}
	return counts
}
