package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frostline/lumencore/internal/channel"
	"github.com/frostline/lumencore/internal/infrastructure/mqtt"
	"github.com/frostline/lumencore/internal/pattern"
	"github.com/frostline/lumencore/internal/playback"
	"github.com/frostline/lumencore/internal/show"
	"github.com/frostline/lumencore/internal/tempo"
)

// Default scheduler timings, used when the configured values are zero.
const (
	defaultPollInterval  = 50 * time.Millisecond
	defaultDrainInterval = 100 * time.Millisecond
)

// MQTTClient is the interface for publishing show status to the broker.
type MQTTClient interface {
	// Publish sends a message to the specified MQTT topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Telemetry is the interface for recording show progress to the
// time-series store.
type Telemetry interface {
	// WriteShowTick records one elapsed-second progress tick.
	WriteShowTick(show string, elapsed int)
	// WriteSegmentEvent records the dispatch of one timeline segment.
	WriteSegmentEvent(show, pattern string, start, duration float64)
}

// Logger defines the logging interface used by the engine.
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

// Options configures a Runner beyond its required collaborators.
// The zero value is usable: no status plane, no telemetry, default timings.
type Options struct {
	// MQTT publishes show status events (may be nil).
	MQTT MQTTClient

	// Telemetry records show progress points (may be nil).
	Telemetry Telemetry

	// Logger receives engine logs (nil disables logging).
	Logger Logger

	// PollInterval is the wait granularity ahead of a segment's start.
	PollInterval time.Duration

	// DrainInterval is the poll granularity while waiting for playback to end.
	DrainInterval time.Duration

	// TickInterval is the clock reporter's poll granularity.
	TickInterval time.Duration

	// ReporterJoinTimeout bounds the wait for the clock reporter on shutdown.
	ReporterJoinTimeout time.Duration

	// QoS is the MQTT quality-of-service level for status messages.
	QoS byte
}

// Runner executes one show: it starts playback to obtain the clock
// reference, dispatches timeline segments against that clock, and
// guarantees every channel is off when the run ends.
//
// Thread Safety: a Runner executes on the calling goroutine and is the
// only mutator of channel state for the duration of Run. It is not safe
// to share a Runner across goroutines or to call Run twice.
type Runner struct {
	sh     *show.Show
	reg    *channel.Registry
	lib    *pattern.Library
	source playback.Source

	mqtt      MQTTClient
	telemetry Telemetry
	logger    Logger
	topics    mqtt.Topics

	pollInterval  time.Duration
	drainInterval time.Duration
	tickInterval  time.Duration
	joinTimeout   time.Duration
	qos           byte
}

// NewRunner creates a show runner.
//
// Parameters:
//   - sh: The show to execute, with segment times already resolved to seconds
//   - reg: Channel registry the patterns drive
//   - lib: Pattern catalog
//   - source: Playback source providing the clock reference
//   - opts: Optional collaborators and timing overrides
func NewRunner(sh *show.Show, reg *channel.Registry, lib *pattern.Library, source playback.Source, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	drainInterval := opts.DrainInterval
	if drainInterval <= 0 {
		drainInterval = defaultDrainInterval
	}
	return &Runner{
		sh:            sh,
		reg:           reg,
		lib:           lib,
		source:        source,
		mqtt:          opts.MQTT,
		telemetry:     opts.Telemetry,
		logger:        logger,
		pollInterval:  pollInterval,
		drainInterval: drainInterval,
		tickInterval:  opts.TickInterval,
		joinTimeout:   opts.ReporterJoinTimeout,
		qos:           opts.QoS,
	}
}

// Run executes the show from start to finish.
//
// It performs the following sequence:
//  1. Starts the playback source and captures the clock reference
//  2. Starts the clock reporter
//  3. Dispatches each timeline segment at its start offset
//  4. Drains: waits for playback to finish after the last segment
//  5. Cleanup: stops the reporter, stops playback, forces every channel off
//
// Step 5 runs on every exit path, including cancellation and a failed
// playback start, so lights are never left on.
//
// Parameters:
//   - ctx: Context for cancellation, checked between segments and while waiting
//
// Returns:
//   - error: ErrPlaybackUnavailable if the source fails to start,
//     the context error on cancellation, nil on normal completion
func (r *Runner) Run(ctx context.Context) error {
	reporter := NewReporter(r.tickInterval, r.joinTimeout, r.tick, r.logger)

	defer func() {
		reporter.Stop()
		r.source.Stop()
		r.reg.AllOff()
		r.logger.Info("show cleanup complete", "show", r.sh.File)
	}()

	reference, err := r.source.Start(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlaybackUnavailable, err)
	}

	r.logger.Info("show started",
		"show", r.sh.File,
		"sections", len(r.sh.Sections),
		"bpm", r.sh.BPM,
	)
	r.publishStatus("started")
	reporter.Start(reference)

	for i := range r.sh.Sections {
		seg := &r.sh.Sections[i]

		if err := ctx.Err(); err != nil {
			return err
		}

		// Inverted or empty windows are skipped without consuming any time,
		// so a malformed section never stalls the timeline.
		if seg.End <= seg.Start {
			r.logger.Warn("skipping section with non-positive duration",
				"section", i,
				"pattern", seg.Pattern,
				"start", seg.Start,
				"end", seg.End,
			)
			continue
		}

		if err := r.waitUntil(ctx, reference, seg.Start); err != nil {
			return err
		}

		fn, ok := r.lib.Lookup(seg.Pattern)
		if !ok {
			r.logger.Warn("skipping unknown pattern",
				"section", i,
				"pattern", seg.Pattern,
			)
			r.publishWarning(seg.Pattern, "unknown pattern")
			continue
		}

		opts, err := tempo.NormalizeOptions(seg.Options, r.sh.BPM)
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}

		r.logger.Info("dispatching section",
			"section", i,
			"pattern", seg.Pattern,
			"start", seg.Start,
			"end", seg.End,
		)
		r.publishSegment(seg)
		if r.telemetry != nil {
			r.telemetry.WriteSegmentEvent(r.sh.File, seg.Pattern, seg.Start, seg.End-seg.Start)
		}

		r.runSegment(i, fn, seg.Duration(), opts)
	}

	if err := r.drain(ctx); err != nil {
		return err
	}

	r.logger.Info("show complete", "show", r.sh.File)
	r.publishStatus("complete")
	return nil
}

// runSegment invokes one pattern. A panicking pattern must not kill the
// show; the panic is logged and the timeline moves on.
func (r *Runner) runSegment(section int, fn pattern.Func, duration time.Duration, opts map[string]float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("pattern panicked",
				"section", section,
				"panic", rec,
			)
			r.reg.AllOff()
		}
	}()
	fn(r.reg, duration, pattern.Options(opts))
}

// waitUntil blocks until offset seconds have elapsed since the clock
// reference, polling at the configured interval.
func (r *Runner) waitUntil(ctx context.Context, reference time.Time, offset float64) error {
	target := time.Duration(offset * float64(time.Second))
	for time.Since(reference) < target {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.pollInterval):
		}
	}
	return nil
}

// drain waits for the playback source to finish after the last timeline
// segment, so the audio outlives the final pattern rather than being cut.
func (r *Runner) drain(ctx context.Context) error {
	for r.source.Active() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.drainInterval):
		}
	}
	return nil
}

// tick relays a clock reporter tick to the status plane and telemetry.
func (r *Runner) tick(elapsed int) {
	if r.mqtt != nil {
		payload, err := json.Marshal(tickPayload{
			Show:           r.sh.File,
			ElapsedSeconds: elapsed,
		})
		if err == nil {
			if pubErr := r.mqtt.Publish(r.topics.ShowTick(), payload, r.qos, false); pubErr != nil {
				r.logger.Warn("failed to publish tick", "error", pubErr)
			}
		}
	}
	if r.telemetry != nil {
		r.telemetry.WriteShowTick(r.sh.File, elapsed)
	}
}

// tickPayload is the JSON body published on the show tick topic.
type tickPayload struct {
	Show           string `json:"show"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// statusPayload is the JSON body published on the show status topic.
type statusPayload struct {
	Event     string    `json:"event"`
	Show      string    `json:"show"`
	Timestamp time.Time `json:"timestamp"`
}

// segmentPayload is the JSON body published on the segment topic.
type segmentPayload struct {
	Show    string  `json:"show"`
	Pattern string  `json:"pattern"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// warningPayload is the JSON body published on the warning topic.
type warningPayload struct {
	Show    string `json:"show"`
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

func (r *Runner) publishStatus(event string) {
	if r.mqtt == nil {
		return
	}
	payload, err := json.Marshal(statusPayload{
		Event:     event,
		Show:      r.sh.File,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := r.mqtt.Publish(r.topics.ShowStatus(), payload, r.qos, true); err != nil {
		r.logger.Warn("failed to publish show status", "event", event, "error", err)
	}
}

func (r *Runner) publishSegment(seg *show.Segment) {
	if r.mqtt == nil {
		return
	}
	payload, err := json.Marshal(segmentPayload{
		Show:    r.sh.File,
		Pattern: seg.Pattern,
		Start:   seg.Start,
		End:     seg.End,
	})
	if err != nil {
		return
	}
	if err := r.mqtt.Publish(r.topics.ShowSegment(), payload, r.qos, false); err != nil {
		r.logger.Warn("failed to publish segment event", "pattern", seg.Pattern, "error", err)
	}
}

func (r *Runner) publishWarning(patternName, reason string) {
	if r.mqtt == nil {
		return
	}
	payload, err := json.Marshal(warningPayload{
		Show:    r.sh.File,
		Pattern: patternName,
		Reason:  reason,
	})
	if err != nil {
		return
	}
	if err := r.mqtt.Publish(r.topics.ShowWarning(), payload, r.qos, false); err != nil {
		r.logger.Warn("failed to publish warning", "pattern", patternName, "error", err)
	}
}
