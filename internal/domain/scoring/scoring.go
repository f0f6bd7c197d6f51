// Package scoring converts one entry's corrected selection and the live
// points map into a scored entry.
package scoring

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nosata/ligalive/internal/domain/model"
)

// captainFactor doubles the captain's raw points for the display figure.
const captainFactor = 2

// Sentinel performer labels. NobodyPlayed marks a week in which no playing
// player scored above zero.
const (
	NobodyPlayed  = "No one played"
	NoPerformers  = "N/A"
	unknownPlayer = "Player %d"
)

// Input bundles everything needed to score one entry for one gameweek.
//
// Selection is expected to be the auto-substituted selection; the corrected
// lineup is authoritative for every total computed here.
type Input struct {
	Selection  model.EntrySelection
	LivePoints map[int]int
	// PreviousXI holds the player ids that started (multiplier > 0) in the
	// immediately preceding gameweek; empty for gameweek 1.
	PreviousXI []int
	// Names maps player ids to display names; missing ids degrade to a
	// placeholder label rather than failing the computation.
	Names map[int]string
	// Substitutions performed on the selection, recorded on the score for
	// the presentation layer.
	Substitutions []model.Substitution
}

// Score computes the entry's totals from the live points map.
//
// An empty selection produces a zero-valued score flagged NoData so roster
// aggregation keeps a stable shape (one bad snapshot never blanks a roster).
func Score(in Input) model.EntryScore {
	score := model.EntryScore{
		EntryID:       in.Selection.EntryID,
		Gameweek:      in.Selection.Gameweek,
		TransferCost:  in.Selection.TransferCost,
		Substitutions: in.Substitutions,
	}

	if len(in.Selection.Picks) == 0 {
		score.NoData = true
		score.BestPerformers = []model.PerformerRef{{Name: NoPerformers}}
		score.WorstPerformers = []model.PerformerRef{{Name: NoPerformers}}
		return score
	}

	var playing []model.PerformerRef
	for _, pick := range in.Selection.Picks {
		raw := in.LivePoints[pick.PlayerID]

		if pick.Multiplier == 0 {
			score.BenchPoints += raw
			continue
		}

		multiplied := raw * pick.Multiplier
		score.TotalPoints += multiplied
		playing = append(playing, model.PerformerRef{
			PlayerID: pick.PlayerID,
			Name:     playerName(in.Names, pick.PlayerID),
			Points:   multiplied,
		})
	}

	if captain, ok := in.Selection.Captain(); ok {
		score.CaptainPoints = in.LivePoints[captain.PlayerID] * captainFactor
	}

	score.BestPerformers, score.WorstPerformers = performers(playing)
	score.NewPlayerPoints = newPlayerPoints(in)
	// Sold players' points would need the previous week's live map for the
	// week they were still owned; reported as zero until that input exists.
	score.SoldPlayerPoints = 0

	return score
}

// performers returns all playing players tied at the maximum multiplied
// points, and all players tied at the minimum among those who scored above
// zero. When nobody scored, the worst list is a single sentinel entry.
func performers(playing []model.PerformerRef) (best, worst []model.PerformerRef) {
	if len(playing) == 0 {
		sentinel := []model.PerformerRef{{Name: NoPerformers}}
		return sentinel, sentinel
	}

	maxPoints := slices.MaxFunc(playing, func(a, b model.PerformerRef) int {
		return cmp.Compare(a.Points, b.Points)
	}).Points
	for _, p := range playing {
		if p.Points == maxPoints {
			best = append(best, p)
		}
	}

	var scored []model.PerformerRef
	for _, p := range playing {
		if p.Points > 0 {
			scored = append(scored, p)
		}
	}
	if len(scored) == 0 {
		return best, []model.PerformerRef{{Name: NobodyPlayed}}
	}

	minPoints := slices.MinFunc(scored, func(a, b model.PerformerRef) int {
		return cmp.Compare(a.Points, b.Points)
	}).Points
	for _, p := range scored {
		if p.Points == minPoints {
			worst = append(worst, p)
		}
	}
	return best, worst
}

// newPlayerPoints sums the unmultiplied live points of players starting this
// week who were absent from the previous week's XI. Gameweek 1 has no
// transfers to credit.
func newPlayerPoints(in Input) int {
	if in.Selection.Gameweek <= 1 || len(in.PreviousXI) == 0 {
		return 0
	}

	previous := make(map[int]bool, len(in.PreviousXI))
	for _, id := range in.PreviousXI {
		previous[id] = true
	}

	total := 0
	for _, pick := range in.Selection.Picks {
		if pick.Multiplier > 0 && !previous[pick.PlayerID] {
			total += in.LivePoints[pick.PlayerID]
		}
	}
	return total
}

func playerName(names map[int]string, id int) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf(unknownPlayer, id)
}
