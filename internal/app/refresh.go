package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nosata/ligalive/internal/adapters/cache"
	"github.com/nosata/ligalive/internal/adapters/http/ws"
	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/lineup"
	"github.com/nosata/ligalive/internal/domain/livepoints"
	"github.com/nosata/ligalive/internal/domain/model"
	"github.com/nosata/ligalive/internal/domain/scoring"
	"github.com/nosata/ligalive/internal/domain/season"
	"github.com/nosata/ligalive/internal/domain/types"
	"github.com/nosata/ligalive/pkg/logger"
	"github.com/nosata/ligalive/pkg/metrics"
)

// entryResult carries one entry's scored outcome through view assembly.
type entryResult struct {
	score     model.EntryScore
	corrected model.EntrySelection
	subs      []model.Substitution
}

// refresh runs one full scoring pass and publishes the resulting read model.
func (s *Service) refresh(ctx context.Context) error {
	start := time.Now()

	boot, err := s.cachedBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("%w: bootstrap: %w", ErrRefresh, err)
	}

	state := gameweek.Resolve(boot.Events)
	metrics.SetCurrentGameweek(state.EventID)

	// The display round carries the figures; before kick-off of a new round
	// it is the last completed one.
	event := state.DisplayEventID

	fixtures, err := s.cachedFixtures(ctx, event)
	if err != nil {
		return fmt.Errorf("%w: fixtures: %w", ErrRefresh, err)
	}
	stats, err := s.cachedLive(ctx, event)
	if err != nil {
		return fmt.Errorf("%w: live stats: %w", ErrRefresh, err)
	}

	livePts := livepoints.Compute(stats, fixtures)
	settled := livepoints.Settlement(fixtures)
	minutes := livepoints.Minutes(stats)
	positions, names, teams := indexElements(boot.Elements)
	teamStatus := teamStatuses(fixtures)

	// Score every tracked entry concurrently; each failure degrades to a
	// zero score instead of aborting the pass.
	tracked := trackedEntries(s.rosterA, s.rosterB)
	results := make(map[int]entryResult, len(tracked))
	var (
		wg  sync.WaitGroup
		rmu sync.Mutex
	)
	for _, id := range tracked {
		wg.Add(1)
		go func(entryID int) {
			defer wg.Done()
			res := s.scoreEntry(ctx, entryID, event, livePts, minutes, settled, positions, names)
			rmu.Lock()
			results[entryID] = res
			rmu.Unlock()
		}(id)
	}
	wg.Wait()

	weekly := make(season.WeeklyScores, len(results))
	seasonTotals := make(map[int]int, len(results))
	for id, res := range results {
		history, err := s.cachedHistory(ctx, id)
		if err != nil {
			s.logger.Warn(ctx, "history fetch failed, season totals use live week only",
				logger.Int("entry", id),
				logger.Error(err))
			history = map[int]int{}
		}
		merged := season.MergeLive(history, event, res.score.TotalPoints-res.score.TransferCost)
		weekly[id] = merged
		for _, net := range merged {
			seasonTotals[id] += net
		}
	}
	totalsA, totalsB := season.Aggregate(weekly, s.rosterA, s.rosterB)

	board := types.Scoreboard{
		Event:        state.EventID,
		DisplayEvent: state.DisplayEventID,
		Status:       state.Status,
		RosterA:      s.rosterView(s.rosterAName, s.rosterA, results, seasonTotals, totalsA),
		RosterB:      s.rosterView(s.rosterBName, s.rosterB, results, seasonTotals, totalsB),
		GeneratedAt:  time.Now().UTC(),
	}

	details := make(map[int]types.EntryDetail, len(results))
	for id, res := range results {
		details[id] = buildDetail(s.entryName(id), res, livePts, names)
	}

	league, err := s.buildLeague(ctx, event, results, livePts, minutes, settled, positions, names, teams, teamStatus)
	if err != nil {
		// The scoreboard is still publishable without the league table.
		s.logger.Warn(ctx, "league enrichment failed", logger.Error(err))
	}

	s.mu.Lock()
	s.snap = &snapshot{state: state, board: board, league: league, details: details}
	s.refreshes++
	s.lastRun = start
	s.mu.Unlock()

	s.store.Prune()

	metrics.RecordRefresh(time.Now())
	metrics.RecordRefreshDuration(float64(time.Since(start).Milliseconds()))

	if s.hub != nil {
		s.hub.Broadcast(ws.TypeStatus, state)
		s.hub.Broadcast(ws.TypeScoreboard, board)
		s.hub.Broadcast(ws.TypeLeague, league)
	}

	s.logger.Info(ctx, "refresh completed",
		logger.Int("event", state.EventID),
		logger.String("status", string(state.Status)),
		logger.Int("entries", len(results)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// scoreEntry fetches one entry's selection, applies bench substitutions and
// scores the corrected lineup. Any fetch failure degrades to a zero score so
// one broken entry never blanks the roster.
func (s *Service) scoreEntry(ctx context.Context, entryID, event int, livePts, minutes map[int]int, settled map[int]bool, positions map[int]model.Position, names map[int]string) entryResult {
	sel, err := s.cachedPicks(ctx, entryID, event)
	if err != nil {
		metrics.RecordScoringFailure()
		s.logger.Warn(ctx, "picks fetch failed, scoring as no data",
			logger.Int("entry", entryID),
			logger.Int("event", event),
			logger.Error(err))
		score := scoring.Score(scoring.Input{
			Selection: model.EntrySelection{EntryID: entryID, Gameweek: event},
		})
		return entryResult{score: score}
	}

	var prevXI []int
	if event > 1 {
		if prev, err := s.cachedPicks(ctx, entryID, event-1); err == nil {
			for _, p := range prev.Picks {
				if p.Multiplier > 0 {
					prevXI = append(prevXI, p.PlayerID)
				}
			}
		}
	}

	res := lineup.Apply(sel, minutes, settled, positions)
	metrics.RecordSubstitutions(len(res.Substitutions))

	corrected := res.Selection(sel)
	score := scoring.Score(scoring.Input{
		Selection:     corrected,
		LivePoints:    livePts,
		PreviousXI:    prevXI,
		Names:         names,
		Substitutions: res.Substitutions,
	})
	metrics.RecordEntryScored()

	return entryResult{score: score, corrected: corrected, subs: res.Substitutions}
}

// trackedEntries returns the union of both rosters, preserving order.
func trackedEntries(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	out := make([]int, 0, len(a)+len(b))
	for _, id := range append(append([]int{}, a...), b...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Cached fetch wrappers. Each consults the TTL store first and falls through
// to the upstream source on a miss.

func (s *Service) cachedBootstrap(ctx context.Context) (model.Bootstrap, error) {
	key := cache.Key{Kind: cache.KindBootstrap}
	if v, ok := s.store.Get(key); ok {
		if b, ok := v.(model.Bootstrap); ok {
			return b, nil
		}
	}
	b, err := s.source.Bootstrap(ctx)
	if err != nil {
		return model.Bootstrap{}, err
	}
	s.store.Put(key, b)
	return b, nil
}

func (s *Service) cachedFixtures(ctx context.Context, event int) ([]model.Fixture, error) {
	key := cache.Key{Kind: cache.KindFixtures, Gameweek: event}
	if v, ok := s.store.Get(key); ok {
		if f, ok := v.([]model.Fixture); ok {
			return f, nil
		}
	}
	f, err := s.source.Fixtures(ctx, event)
	if err != nil {
		return nil, err
	}
	s.store.Put(key, f)
	return f, nil
}

func (s *Service) cachedLive(ctx context.Context, event int) ([]model.LiveElementStat, error) {
	key := cache.Key{Kind: cache.KindLive, Gameweek: event}
	if v, ok := s.store.Get(key); ok {
		if st, ok := v.([]model.LiveElementStat); ok {
			return st, nil
		}
	}
	st, err := s.source.Live(ctx, event)
	if err != nil {
		return nil, err
	}
	s.store.Put(key, st)
	return st, nil
}

func (s *Service) cachedPicks(ctx context.Context, entry, event int) (model.EntrySelection, error) {
	key := cache.Key{Kind: cache.KindPicks, Gameweek: event, Entry: entry}
	if v, ok := s.store.Get(key); ok {
		if sel, ok := v.(model.EntrySelection); ok {
			return sel, nil
		}
	}
	sel, err := s.source.Picks(ctx, entry, event)
	if err != nil {
		return model.EntrySelection{}, err
	}
	s.store.Put(key, sel)
	return sel, nil
}

func (s *Service) cachedHistory(ctx context.Context, entry int) (map[int]int, error) {
	key := cache.Key{Kind: cache.KindHistory, Entry: entry}
	if v, ok := s.store.Get(key); ok {
		if h, ok := v.(map[int]int); ok {
			return h, nil
		}
	}
	h, err := s.source.History(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.store.Put(key, h)
	return h, nil
}

func (s *Service) cachedStandings(ctx context.Context, league int) (model.League, error) {
	key := cache.Key{Kind: cache.KindStandings, Entry: league}
	if v, ok := s.store.Get(key); ok {
		if l, ok := v.(model.League); ok {
			return l, nil
		}
	}
	l, err := s.source.LeagueStandings(ctx, league)
	if err != nil {
		return model.League{}, err
	}
	s.store.Put(key, l)
	return l, nil
}
