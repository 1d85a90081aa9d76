package playback

import (
	"context"
	"sync"
	"time"
)

// Null is a silent playback source: a wall clock that "plays" for a fixed
// duration. It backs silent rehearsal runs and tests, where the timeline
// should advance exactly as if a track of that length were playing.
type Null struct {
	duration time.Duration

	mu      sync.RWMutex
	started bool
	ref     time.Time
	stopped bool
}

// NewNull creates a silent source that stays active for the given duration
// after Start.
func NewNull(duration time.Duration) *Null {
	return &Null{duration: duration}
}

// Start implements Source: the clock reference is simply now.
func (n *Null) Start(_ context.Context) (time.Time, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return time.Time{}, ErrAlreadyStarted
	}
	n.started = true
	n.ref = time.Now()
	return n.ref, nil
}

// Active reports whether the fixed duration has yet to elapse.
func (n *Null) Active() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if !n.started || n.stopped {
		return false
	}
	return time.Since(n.ref) < n.duration
}

// Stop implements Source.
func (n *Null) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
}
