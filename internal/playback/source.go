package playback

import (
	"context"
	"time"
)

// Source is the playback boundary the show engine consumes: a clock start
// reference and a "still playing" predicate. The engine only reads these;
// it never seeks, pauses, or otherwise controls playback.
type Source interface {
	// Start begins playback and returns the clock reference: the instant
	// playback began, against which all show timing is computed.
	Start(ctx context.Context) (time.Time, error)

	// Active reports whether the track is still playing.
	Active() bool

	// Stop ends playback. Best-effort; called during final cleanup.
	Stop()
}

// Logger defines the logging interface used by playback sources.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
