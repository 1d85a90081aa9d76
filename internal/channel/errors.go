package channel

import "errors"

// Domain errors for the channel package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, channel.ErrEmptyMap) {
//	    // handle empty map case
//	}
var (
	// ErrEmptyMap is returned when a channel map file declares no channels.
	ErrEmptyMap = errors.New("channel: map declares no channels")
)
