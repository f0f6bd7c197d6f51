// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the refresh service.
type Dependencies interface {
	// Status returns the resolved gameweek state of the last refresh.
	Status(ctx context.Context) (gameweek.State, error)

	// Scoreboard returns the head-to-head read model of the last refresh.
	Scoreboard(ctx context.Context) (types.Scoreboard, error)

	// League returns the enriched classic-league table.
	League(ctx context.Context) (types.League, error)

	// Entry returns the squad detail view for one entry.
	Entry(ctx context.Context, entryID int) (types.EntryDetail, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	statusHandler     *StatusHandler
	scoreboardHandler *ScoreboardHandler
	leagueHandler     *LeagueHandler
	entryHandler      *EntryHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		statusHandler:     NewStatusHandler(deps),
		scoreboardHandler: NewScoreboardHandler(deps),
		leagueHandler:     NewLeagueHandler(deps),
		entryHandler:      NewEntryHandler(deps),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(router *mux.Router) {
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status")).Methods(http.MethodGet)
	v1.HandleFunc("/scoreboard", MetricsMiddleware(s.scoreboardHandler.HandleScoreboard, "scoreboard")).Methods(http.MethodGet)
	v1.HandleFunc("/league", MetricsMiddleware(s.leagueHandler.HandleLeague, "league")).Methods(http.MethodGet)
	v1.HandleFunc("/entries/{id:[0-9]+}", MetricsMiddleware(s.entryHandler.HandleEntry, "entry")).Methods(http.MethodGet)

	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.healthHandler.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
