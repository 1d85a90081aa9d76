package engine

import (
	"sync"
	"time"
)

// Default reporter timings, used when the configured values are zero.
const (
	defaultTickInterval = 50 * time.Millisecond
	defaultJoinTimeout  = 500 * time.Millisecond
)

// Reporter announces elapsed show time once per whole second from a
// background goroutine.
//
// The reporter is an observer: it reads the clock and emits ticks, and
// never touches channel state. Stop is cooperative with a bounded join,
// so a wedged reporter can delay shutdown by at most the join timeout.
type Reporter struct {
	logger       Logger
	tickInterval time.Duration
	joinTimeout  time.Duration
	onTick       func(elapsed int)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewReporter creates a clock reporter.
//
// Parameters:
//   - tickInterval: Poll granularity; zero selects the default (50ms)
//   - joinTimeout: Bound on the Stop wait; zero selects the default (500ms)
//   - onTick: Called once per elapsed whole second (may be nil)
//   - logger: Logger instance (nil disables logging)
func NewReporter(tickInterval, joinTimeout time.Duration, onTick func(elapsed int), logger Logger) *Reporter {
	if logger == nil {
		logger = noopLogger{}
	}
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	if joinTimeout <= 0 {
		joinTimeout = defaultJoinTimeout
	}
	return &Reporter{
		logger:       logger,
		tickInterval: tickInterval,
		joinTimeout:  joinTimeout,
		onTick:       onTick,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the reporter goroutine.
//
// Parameters:
//   - reference: The show's clock reference; elapsed time is measured from it
func (r *Reporter) Start(reference time.Time) {
	if r.started {
		return
	}
	r.started = true
	go r.run(reference)
}

// Stop signals the reporter to exit and waits for it, bounded by the join
// timeout. Safe to call more than once and before Start.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	if !r.started {
		return
	}

	select {
	case <-r.done:
	case <-time.After(r.joinTimeout):
		r.logger.Warn("clock reporter did not stop within join timeout",
			"timeout", r.joinTimeout,
		)
	}
}

// run is the reporter loop. It polls at tickInterval and emits one tick
// each time the whole-second elapsed count advances. If the goroutine is
// starved across a second boundary, only the latest count is reported.
func (r *Reporter) run(reference time.Time) {
	defer close(r.done)

	last := 0
	for {
		select {
		case <-r.stop:
			return
		case <-time.After(r.tickInterval):
		}

		elapsed := int(time.Since(reference).Seconds())
		if elapsed <= last {
			continue
		}
		last = elapsed

		r.logger.Info("show clock", "elapsed_seconds", elapsed)
		if r.onTick != nil {
			r.onTick(elapsed)
		}
	}
}
