// Package metrics provides Prometheus metrics for the ligalive scoreboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Snapshot ingestion - upstream fetches and cache behavior
	snapshotFetches *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	// Scoring - what the refresh loop actually computes
	refreshes       prometheus.Counter
	refreshDuration prometheus.Histogram
	entriesScored   prometheus.Counter
	scoringFailures prometheus.Counter
	substitutions   prometheus.Counter
	lastRefreshUnix prometheus.Gauge
	currentGameweek prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// WebSocket surface
	wsClients    prometheus.Gauge
	wsBroadcasts prometheus.Counter
}

var (
	globalManager  *Manager
	customRegistry = prometheus.NewRegistry()
)

//nolint:gochecknoinits // global metrics setup mirrors registration at import time
func init() {
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ligalive",
		subsystem:        "scoreboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.snapshotFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "snapshot_fetches_total",
			Help:      "Upstream snapshot fetches by kind and result",
		},
		[]string{"kind", "result"},
	)

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_hits_total",
		Help:      "Snapshot cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_misses_total",
		Help:      "Snapshot cache misses",
	})

	m.refreshes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refreshes_total",
		Help:      "Completed scoreboard refresh cycles",
	})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Duration of a full scoreboard refresh in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.entriesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_scored_total",
		Help:      "Entry scores computed across all refreshes",
	})

	m.scoringFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_failures_total",
		Help:      "Entries that degraded to a zero-valued score",
	})

	m.substitutions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "auto_substitutions_total",
		Help:      "Bench substitutions applied to starting lineups",
	})

	m.lastRefreshUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last completed refresh",
	})

	m.currentGameweek = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_gameweek",
		Help:      "Gameweek the scoreboard is currently tracking",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.wsClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_clients",
		Help:      "Currently connected websocket clients",
	})

	m.wsBroadcasts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_broadcasts_total",
		Help:      "Scoreboard broadcasts pushed to websocket clients",
	})
}

// RecordSnapshotFetch counts one upstream fetch with its result ("ok" or "error").
func RecordSnapshotFetch(kind, result string) {
	globalManager.snapshotFetches.WithLabelValues(kind, result).Inc()
}

// RecordCacheHit counts a snapshot served from cache.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a snapshot that had to be fetched.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordRefresh counts a completed refresh cycle and stamps its time.
func RecordRefresh(at time.Time) {
	globalManager.refreshes.Inc()
	globalManager.lastRefreshUnix.Set(float64(at.Unix()))
}

// RecordRefreshDuration records the duration of a refresh in milliseconds.
func RecordRefreshDuration(ms float64) {
	globalManager.refreshDuration.Observe(ms)
}

// RecordEntryScored counts one computed entry score.
func RecordEntryScored() {
	globalManager.entriesScored.Inc()
}

// RecordScoringFailure counts an entry that degraded to a zero-valued score.
func RecordScoringFailure() {
	globalManager.scoringFailures.Inc()
}

// RecordSubstitutions counts bench substitutions applied in one lineup.
func RecordSubstitutions(n int) {
	globalManager.substitutions.Add(float64(n))
}

// SetCurrentGameweek sets the gameweek being tracked.
func SetCurrentGameweek(gw int) {
	globalManager.currentGameweek.Set(float64(gw))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// SetWSClients sets the connected websocket client count.
func SetWSClients(n int) {
	globalManager.wsClients.Set(float64(n))
}

// RecordWSBroadcast counts one scoreboard broadcast.
func RecordWSBroadcast() {
	globalManager.wsBroadcasts.Inc()
}

// GetRegistry returns the registry all service metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
