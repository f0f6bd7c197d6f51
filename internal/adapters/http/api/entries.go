// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nosata/ligalive/internal/domain/types"
)

// EntryDependencies defines the interface for entry detail operations.
type EntryDependencies interface {
	Entry(ctx context.Context, entryID int) (types.EntryDetail, error)
}

// EntryHandler handles per-entry squad detail requests.
type EntryHandler struct {
	deps EntryDependencies
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(deps EntryDependencies) *EntryHandler {
	return &EntryHandler{deps: deps}
}

// HandleEntry handles GET /api/v1/entries/{id} requests.
func (h *EntryHandler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	detail, err := h.deps.Entry(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownEntry):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, ErrNotReady):
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
