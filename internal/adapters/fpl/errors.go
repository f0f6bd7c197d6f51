package fpl

import "errors"

// Sentinel kinds for snapshot errors. ErrUpstream and ErrDecode mean the
// collaborator could not produce a snapshot at all; ErrIncompleteSnapshot
// means the snapshot arrived but an expected collection was empty, which the
// caller degrades to a zero-valued result rather than failing outright.
var (
	ErrUpstream           = errors.New("upstream fetch failed")
	ErrDecode             = errors.New("snapshot decode failed")
	ErrIncompleteSnapshot = errors.New("incomplete snapshot")
)
