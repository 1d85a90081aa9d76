package playback

import "errors"

// Domain errors for the playback package.
var (
	// ErrAlreadyStarted is returned when Start is called on a source that
	// has already played. Sources are single-use; one show, one track.
	ErrAlreadyStarted = errors.New("playback: already started")
)
