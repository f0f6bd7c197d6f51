package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"github.com/nosata/ligalive/internal/adapters/cache"
	"github.com/nosata/ligalive/internal/adapters/fpl"
	"github.com/nosata/ligalive/internal/adapters/http/api"
	"github.com/nosata/ligalive/internal/adapters/http/ws"
	app "github.com/nosata/ligalive/internal/app"
	"github.com/nosata/ligalive/internal/config"
	"github.com/nosata/ligalive/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries the
	// service's own metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	client := fpl.NewClient(
		fpl.WithBaseURL(cfg.BaseURL),
		fpl.WithUserAgent(cfg.UserAgent),
		fpl.WithTimeout(time.Duration(cfg.FetchTimeoutSec)*time.Second),
		fpl.WithDelay(time.Duration(cfg.FetchDelayMS)*time.Millisecond),
	)

	store := cache.New(cache.WithTTLPolicy(cache.DefaultTTLPolicy(
		time.Duration(cfg.TTLLiveSec)*time.Second,
		time.Duration(cfg.TTLSettledSec)*time.Second,
		time.Duration(cfg.TTLBootstrapSec)*time.Second,
	)))

	hub := ws.NewHub()
	go hub.Run(ctx)

	svc := app.New(
		app.WithLogger(log),
		app.WithSource(client),
		app.WithCache(store),
		app.WithBroadcaster(hub),
		app.WithRosters(cfg.RosterA, cfg.RosterB),
		app.WithRosterNames(cfg.RosterAName, cfg.RosterBName),
		app.WithEntryNames(parseEntryNames(cfg.EntryNames)),
		app.WithLeagueID(cfg.LeagueID),
		app.WithRefreshInterval(time.Duration(cfg.RefreshIntervalSec)*time.Second),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP routes.
	router := mux.NewRouter()
	api.NewServer(svc, svc).Register(router)
	router.HandleFunc("/ws", hub.ServeWS)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// parseEntryNames converts the configured string-keyed entry names to ids,
// dropping keys that are not numeric.
func parseEntryNames(raw map[string]string) map[int]string {
	out := make(map[int]string, len(raw))
	for key, name := range raw {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 {
			continue
		}
		out[id] = name
	}
	return out
}
