// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nosata/ligalive/internal/domain/types"
)

// LeagueDependencies defines the interface for league operations.
type LeagueDependencies interface {
	League(ctx context.Context) (types.League, error)
}

// LeagueHandler handles classic-league table requests.
type LeagueHandler struct {
	deps LeagueDependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps LeagueDependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandleLeague handles GET /api/v1/league requests.
func (h *LeagueHandler) HandleLeague(w http.ResponseWriter, r *http.Request) {
	league, err := h.deps.League(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}
