package api

import (
	"errors"

	service "github.com/nosata/ligalive/internal/app"
)

// Sentinel kinds for API errors. The service-level conditions are re-exported
// so handlers and their tests can match without importing the service.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotReady     = service.ErrNotReady
	ErrUnknownEntry = service.ErrUnknownEntry
)
