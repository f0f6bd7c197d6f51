// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nosata/ligalive/internal/domain/gameweek"
)

// StatusDependencies defines the interface for status operations.
type StatusDependencies interface {
	Status(ctx context.Context) (gameweek.State, error)
}

// StatusHandler handles gameweek status requests.
type StatusHandler struct {
	deps StatusDependencies
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps StatusDependencies) *StatusHandler {
	return &StatusHandler{deps: deps}
}

// HandleStatus handles GET /api/v1/status requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.deps.Status(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
