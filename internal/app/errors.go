package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotReady     = errors.New("no refresh has completed yet")
	ErrUnknownEntry = errors.New("unknown entry")
	ErrRefresh      = errors.New("refresh failed")
)
