// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nosata/ligalive/internal/domain/types"
)

// ScoreboardDependencies defines the interface for scoreboard operations.
type ScoreboardDependencies interface {
	Scoreboard(ctx context.Context) (types.Scoreboard, error)
}

// ScoreboardHandler handles scoreboard requests.
type ScoreboardHandler struct {
	deps ScoreboardDependencies
}

// NewScoreboardHandler creates a new scoreboard handler.
func NewScoreboardHandler(deps ScoreboardDependencies) *ScoreboardHandler {
	return &ScoreboardHandler{deps: deps}
}

// HandleScoreboard handles GET /api/v1/scoreboard requests.
func (h *ScoreboardHandler) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.deps.Scoreboard(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
