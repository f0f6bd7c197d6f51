// Package service runs the refresh loop and implements the dependencies
// required by the HTTP API: it pulls upstream snapshots, scores both rosters,
// and publishes an immutable read model per refresh.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/nosata/ligalive/internal/adapters/cache"
	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/model"
	"github.com/nosata/ligalive/internal/domain/types"
	"github.com/nosata/ligalive/pkg/logger"
)

// SnapshotSource provides upstream snapshots. Implemented by the fpl client.
type SnapshotSource interface {
	Bootstrap(ctx context.Context) (model.Bootstrap, error)
	Fixtures(ctx context.Context, event int) ([]model.Fixture, error)
	Live(ctx context.Context, event int) ([]model.LiveElementStat, error)
	Picks(ctx context.Context, entry, event int) (model.EntrySelection, error)
	History(ctx context.Context, entry int) (map[int]int, error)
	LeagueStandings(ctx context.Context, league int) (model.League, error)
}

// Broadcaster pushes refreshed read models to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, data any)
}

// snapshot is the read model published after one refresh. Readers receive the
// pointer under a lock and never see a partially built refresh.
type snapshot struct {
	state   gameweek.State
	board   types.Scoreboard
	league  types.League
	details map[int]types.EntryDetail
}

// Service implements the API dependencies for the scoreboard system.
type Service struct {
	mu sync.RWMutex

	// Core components
	source SnapshotSource
	store  *cache.Store
	hub    Broadcaster

	// Configuration
	rosterA         []int
	rosterB         []int
	rosterAName     string
	rosterBName     string
	entryNames      map[int]string
	leagueID        int
	refreshInterval time.Duration

	// State
	started   bool
	stopCh    chan struct{}
	snap      *snapshot
	refreshes int
	lastRun   time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the upstream snapshot source.
func WithSource(src SnapshotSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithCache sets the snapshot cache.
func WithCache(store *cache.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBroadcaster sets the push channel for refreshed read models.
func WithBroadcaster(hub Broadcaster) Option {
	return func(s *Service) {
		if hub != nil {
			s.hub = hub
		}
	}
}

// WithRosters sets the two head-to-head rosters.
func WithRosters(a, b []int) Option {
	return func(s *Service) {
		s.rosterA = a
		s.rosterB = b
	}
}

// WithRosterNames sets the display names of the two rosters.
func WithRosterNames(a, b string) Option {
	return func(s *Service) {
		s.rosterAName = a
		s.rosterBName = b
	}
}

// WithEntryNames sets display names for tracked entries.
func WithEntryNames(names map[int]string) Option {
	return func(s *Service) {
		s.entryNames = names
	}
}

// WithLeagueID sets the classic league to enrich.
func WithLeagueID(id int) Option {
	return func(s *Service) {
		if id > 0 {
			s.leagueID = id
		}
	}
}

// WithRefreshInterval sets the pause between refreshes.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rosterAName:     "Roster A",
		rosterBName:     "Roster B",
		entryNames:      map[int]string{},
		refreshInterval: time.Minute,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs an initial refresh and starts the periodic loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.store == nil {
		s.store = cache.New()
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting scoreboard service",
		logger.Int("roster_a", len(s.rosterA)),
		logger.Int("roster_b", len(s.rosterB)),
		logger.Duration("refresh_interval", s.refreshInterval),
	)

	if err := s.refresh(ctx); err != nil {
		// First refresh failing is not fatal; the loop retries.
		s.logger.Warn(ctx, "initial refresh failed", logger.Error(err))
	}

	go s.loop(ctx)
	return nil
}

// Stop terminates the refresh loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	close(s.stopCh)
	s.started = false
	s.logger.Info(context.Background(), "scoreboard service stopped")
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn(ctx, "refresh failed", logger.Error(err))
			}
		}
	}
}

// current returns the latest published snapshot.
func (s *Service) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotReady
	}
	return s.snap, nil
}

// Status returns the resolved gameweek state of the last refresh.
func (s *Service) Status(ctx context.Context) (gameweek.State, error) {
	snap, err := s.current()
	if err != nil {
		return gameweek.State{}, err
	}
	return snap.state, nil
}

// Scoreboard returns the head-to-head read model of the last refresh.
func (s *Service) Scoreboard(ctx context.Context) (types.Scoreboard, error) {
	snap, err := s.current()
	if err != nil {
		return types.Scoreboard{}, err
	}
	return snap.board, nil
}

// League returns the enriched classic-league table.
func (s *Service) League(ctx context.Context) (types.League, error) {
	snap, err := s.current()
	if err != nil {
		return types.League{}, err
	}
	return snap.league, nil
}

// Entry returns the squad detail view for one tracked entry.
func (s *Service) Entry(ctx context.Context, entryID int) (types.EntryDetail, error) {
	snap, err := s.current()
	if err != nil {
		return types.EntryDetail{}, err
	}
	detail, ok := snap.details[entryID]
	if !ok {
		return types.EntryDetail{}, ErrUnknownEntry
	}
	return detail, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"refreshes":      s.refreshes,
		"trackedEntries": len(s.rosterA) + len(s.rosterB),
	}
	if !s.lastRun.IsZero() {
		stats["lastRefresh"] = s.lastRun.UTC().Format(time.RFC3339)
	}
	if s.snap != nil {
		stats["event"] = s.snap.state.EventID
		stats["status"] = string(s.snap.state.Status)
	}
	if s.store != nil {
		stats["cacheEntries"] = s.store.Len()
	}
	return stats
}
