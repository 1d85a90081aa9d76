package engine

import "errors"

// Sentinel errors for show execution.
var (
	// ErrPlaybackUnavailable indicates the playback source could not start.
	// A show never runs without its clock reference.
	ErrPlaybackUnavailable = errors.New("engine: playback source unavailable")
)
