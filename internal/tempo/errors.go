package tempo

import "errors"

// Domain errors for the tempo package.
var (
	// ErrInvalidTempo is returned when a non-positive BPM is supplied.
	ErrInvalidTempo = errors.New("tempo: bpm must be positive")
)
