package service

import (
	"context"
	"fmt"

	"github.com/nosata/ligalive/internal/domain/model"
	"github.com/nosata/ligalive/internal/domain/season"
	"github.com/nosata/ligalive/internal/domain/types"
)

// indexElements splits the bootstrap player list into the lookup maps the
// scoring pass needs.
func indexElements(elements []model.PlayerElement) (positions map[int]model.Position, names map[int]string, teams map[int]int) {
	positions = make(map[int]model.Position, len(elements))
	names = make(map[int]string, len(elements))
	teams = make(map[int]int, len(elements))
	for _, el := range elements {
		positions[el.ID] = el.Position
		names[el.ID] = el.DisplayName
		teams[el.ID] = el.TeamID
	}
	return positions, names, teams
}

// teamStatuses maps every team with a fixture this round to its match phase.
func teamStatuses(fixtures []model.Fixture) map[int]types.MatchStatus {
	out := make(map[int]types.MatchStatus, len(fixtures)*2)
	for _, fx := range fixtures {
		status := types.MatchNotStarted
		switch {
		case fx.Settled():
			status = types.MatchFinished
		case fx.Live():
			status = types.MatchLive
		}
		out[fx.HomeTeamID] = status
		out[fx.AwayTeamID] = status
	}
	return out
}

func (s *Service) entryName(id int) string {
	if name, ok := s.entryNames[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Entry %d", id)
}

func (s *Service) rosterView(name string, roster []int, results map[int]entryResult, seasonTotals map[int]int, totals season.RosterTotals) types.RosterView {
	entries := make([]types.EntryView, 0, len(roster))
	for _, id := range roster {
		res := results[id]
		entries = append(entries, types.EntryView{
			EntryScore:  res.score,
			Name:        s.entryName(id),
			SeasonTotal: seasonTotals[id],
		})
	}
	return types.RosterView{
		Name:        name,
		Entries:     entries,
		WeeklySums:  totals.WeeklySums,
		SeasonTotal: totals.Total,
		Wins:        totals.Wins,
	}
}

// buildDetail assembles the per-entry squad view from the corrected lineup.
// Starter points carry the multiplier; bench points stay raw.
func buildDetail(name string, res entryResult, livePts map[int]int, names map[int]string) types.EntryDetail {
	detail := types.EntryDetail{
		EntryID:       res.score.EntryID,
		Name:          name,
		Gameweek:      res.score.Gameweek,
		TotalPoints:   res.score.TotalPoints,
		BenchPoints:   res.score.BenchPoints,
		ActiveChip:    res.corrected.ActiveChip,
		Substitutions: res.subs,
	}
	for _, p := range res.corrected.Picks {
		sp := types.SquadPlayer{
			PlayerID:      p.PlayerID,
			Name:          displayName(names, p.PlayerID),
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		}
		if p.Multiplier > 0 {
			sp.Points = livePts[p.PlayerID] * p.Multiplier
			detail.StartingXI = append(detail.StartingXI, sp)
		} else {
			sp.Points = livePts[p.PlayerID]
			detail.Bench = append(detail.Bench, sp)
		}
	}
	return detail
}

// buildLeague enriches the classic-league table with live figures. Rows for
// tracked entries reuse the scores already computed this pass; other rows are
// scored on demand.
func (s *Service) buildLeague(ctx context.Context, event int, results map[int]entryResult, livePts, minutes map[int]int, settled map[int]bool, positions map[int]model.Position, names map[int]string, teams map[int]int, teamStatus map[int]types.MatchStatus) (types.League, error) {
	if s.leagueID == 0 {
		return types.League{}, nil
	}
	raw, err := s.cachedStandings(ctx, s.leagueID)
	if err != nil {
		return types.League{}, err
	}

	out := types.League{
		Name:    raw.Name,
		Entries: make([]types.LeagueEntry, 0, len(raw.Standings)),
	}
	for _, row := range raw.Standings {
		res, ok := results[row.EntryID]
		if !ok {
			res = s.scoreEntry(ctx, row.EntryID, event, livePts, minutes, settled, positions, names)
		}

		waiting, playing := playersToPlay(res.corrected, teams, teamStatus, names)
		out.Entries = append(out.Entries, types.LeagueEntry{
			EntryID:        row.EntryID,
			EntryName:      row.EntryName,
			ManagerName:    row.ManagerName,
			SeasonTotal:    row.SeasonTotal,
			LivePoints:     res.score.TotalPoints - res.score.TransferCost,
			Waiting:        waiting,
			Playing:        playing,
			ToPlayCount:    len(waiting) + len(playing),
			HasLivePlayers: len(playing) > 0,
			Captain:        captainView(res, teams, teamStatus, names),
		})
	}
	return out, nil
}

// playersToPlay splits the corrected XI into players whose fixture has not
// kicked off yet and players currently on the pitch. Finished fixtures drop
// out of both lists.
func playersToPlay(sel model.EntrySelection, teams map[int]int, teamStatus map[int]types.MatchStatus, names map[int]string) (waiting, playing []types.PlayerToPlay) {
	for _, p := range sel.Picks {
		if p.Multiplier == 0 {
			continue
		}
		status, ok := teamStatus[teams[p.PlayerID]]
		if !ok {
			status = types.MatchNotStarted
		}
		if status == types.MatchFinished {
			continue
		}

		player := types.PlayerToPlay{
			Name:          displayName(names, p.PlayerID),
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
			Multiplier:    p.Multiplier,
			Status:        status,
		}
		if status == types.MatchLive {
			playing = append(playing, player)
		} else {
			waiting = append(waiting, player)
		}
	}
	return waiting, playing
}

func captainView(res entryResult, teams map[int]int, teamStatus map[int]types.MatchStatus, names map[int]string) *types.CaptainView {
	captain, ok := res.corrected.Captain()
	if !ok {
		return nil
	}
	status := teamStatus[teams[captain.PlayerID]]
	return &types.CaptainView{
		Name:      displayName(names, captain.PlayerID),
		Points:    res.score.CaptainPoints,
		Played:    status == types.MatchFinished,
		IsPlaying: status == types.MatchLive,
	}
}

func displayName(names map[int]string, id int) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Player %d", id)
}
