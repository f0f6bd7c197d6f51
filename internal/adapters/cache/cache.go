// Package cache is an in-process TTL store for upstream snapshots. Entries
// are keyed by snapshot kind plus scope; each kind carries its own lifetime
// so settled data can outlive live data.
package cache

import (
	"sync"
	"time"

	"github.com/nosata/ligalive/pkg/metrics"
)

// Kind identifies a snapshot family for TTL selection.
type Kind string

const (
	KindBootstrap Kind = "bootstrap"
	KindFixtures  Kind = "fixtures"
	KindLive      Kind = "live"
	KindPicks     Kind = "picks"
	KindHistory   Kind = "history"
	KindStandings Kind = "standings"
)

// Key addresses one cached snapshot. Zero fields are valid; a bootstrap key
// has no gameweek or entry scope.
type Key struct {
	Kind     Kind
	Gameweek int
	Entry    int
}

// TTLPolicy returns the lifetime for a snapshot kind.
type TTLPolicy func(kind Kind) time.Duration

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a concurrency-safe TTL cache.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttl     TTLPolicy
	now     func() time.Time
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithTTLPolicy overrides the per-kind lifetime policy.
func WithTTLPolicy(p TTLPolicy) Option {
	return func(s *Store) {
		if p != nil {
			s.ttl = p
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// DefaultTTLPolicy gives live snapshots a short lifetime and slow-moving data
// a longer one.
func DefaultTTLPolicy(liveTTL, settledTTL, bootstrapTTL time.Duration) TTLPolicy {
	return func(kind Kind) time.Duration {
		switch kind {
		case KindBootstrap:
			return bootstrapTTL
		case KindHistory, KindStandings:
			return settledTTL
		default:
			return liveTTL
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[Key]entry),
		ttl:     DefaultTTLPolicy(3*time.Minute, time.Hour, time.Hour),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value for key if present and not expired.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		metrics.RecordCacheMiss()
		return nil, false
	}
	metrics.RecordCacheHit()
	return e.value, true
}

// Put stores value under key with the kind's configured lifetime.
func (s *Store) Put(key Key, value any) {
	s.PutTTL(key, value, s.ttl(key.Kind))
}

// PutTTL stores value under key with an explicit lifetime.
func (s *Store) PutTTL(key Key, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Invalidate removes all entries of the given kinds, or everything when no
// kind is given.
func (s *Store) Invalidate(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(kinds) == 0 {
		s.entries = make(map[Key]entry)
		return
	}
	for key := range s.entries {
		for _, k := range kinds {
			if key.Kind == k {
				delete(s.entries, key)
				break
			}
		}
	}
}

// Prune drops expired entries. The refresh loop calls this periodically so
// abandoned gameweek keys do not accumulate over a season.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
