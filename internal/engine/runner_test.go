package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frostline/lumencore/internal/channel"
	"github.com/frostline/lumencore/internal/infrastructure/mqtt"
	"github.com/frostline/lumencore/internal/pattern"
	"github.com/frostline/lumencore/internal/playback"
	"github.com/frostline/lumencore/internal/show"
)

// memOutput is an in-memory channel output for tests.
type memOutput struct{}

func (memOutput) On()  {}
func (memOutput) Off() {}

// recordingMQTT captures published messages. Safe for concurrent use
// because the clock reporter publishes from its own goroutine.
type recordingMQTT struct {
	mu       sync.Mutex
	messages []publishedMessage
}

type publishedMessage struct {
	topic   string
	payload []byte
}

func (m *recordingMQTT) Publish(topic string, payload []byte, _ byte, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, publishedMessage{topic: topic, payload: payload})
	return nil
}

func (m *recordingMQTT) byTopic(topic string) []publishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedMessage
	for _, msg := range m.messages {
		if msg.topic == topic {
			out = append(out, msg)
		}
	}
	return out
}

// recordingTelemetry captures telemetry writes.
type recordingTelemetry struct {
	mu       sync.Mutex
	ticks    []int
	segments []string
}

func (r *recordingTelemetry) WriteShowTick(_ string, elapsed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, elapsed)
}

func (r *recordingTelemetry) WriteSegmentEvent(_, pattern string, _, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, pattern)
}

// failingSource always fails to start.
type failingSource struct{}

func (failingSource) Start(context.Context) (time.Time, error) {
	return time.Time{}, errors.New("no audio device")
}
func (failingSource) Active() bool { return false }
func (failingSource) Stop()        {}

func newTestRegistry() *channel.Registry {
	reg := channel.NewRegistry()
	for _, name := range []string{"tree_1", "tree_2", "bulb_1", "bulb_2"} {
		reg.Add(name, memOutput{})
	}
	reg.SetGroup("trees", []string{"tree_1", "tree_2"})
	reg.SetGroup("bulbs", []string{"bulb_1", "bulb_2"})
	return reg
}

func requireAllOff(t *testing.T, reg *channel.Registry) {
	t.Helper()
	for name, on := range reg.States() {
		if on {
			t.Errorf("channel %q left on after run", name)
		}
	}
}

func fastOptions() Options {
	return Options{
		PollInterval:  5 * time.Millisecond,
		DrainInterval: 10 * time.Millisecond,
		TickInterval:  10 * time.Millisecond,
	}
}

func TestRunnerFullShow(t *testing.T) {
	reg := newTestRegistry()
	lib := pattern.NewLibrary()
	broker := &recordingMQTT{}
	telemetry := &recordingTelemetry{}

	sh := &show.Show{
		File: "rehearsal.mp3",
		Sections: []show.Segment{
			{Start: 0, End: 0.15, Pattern: "blink_all", Options: map[string]float64{"interval": 0.04}},
			{Start: 0.15, End: 0.18, Pattern: "laser_storm"}, // not in the catalog
			{Start: 0.3, End: 0.2, Pattern: "blink_all"},     // inverted window
			{Start: 0.2, End: 0.25, Pattern: "all_on"},
		},
	}

	opts := fastOptions()
	opts.MQTT = broker
	opts.Telemetry = telemetry

	source := playback.NewNull(350 * time.Millisecond)
	runner := NewRunner(sh, reg, lib, source, opts)

	started := time.Now()
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The drain phase holds the runner until playback ends.
	if elapsed := time.Since(started); elapsed < 340*time.Millisecond {
		t.Errorf("run finished in %v, expected to drain until playback ended", elapsed)
	}

	// all_on left every channel lit; cleanup must have forced them off.
	requireAllOff(t, reg)

	topics := mqtt.Topics{}

	status := broker.byTopic(topics.ShowStatus())
	if len(status) != 2 {
		t.Fatalf("expected 2 status messages, got %d", len(status))
	}
	for i, want := range []string{"started", "complete"} {
		var p struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(status[i].payload, &p); err != nil {
			t.Fatalf("unmarshal status: %v", err)
		}
		if p.Event != want {
			t.Errorf("status[%d] event = %q, want %q", i, p.Event, want)
		}
	}

	segments := broker.byTopic(topics.ShowSegment())
	if len(segments) != 2 {
		t.Fatalf("expected 2 segment messages, got %d", len(segments))
	}

	warnings := broker.byTopic(topics.ShowWarning())
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning message, got %d", len(warnings))
	}
	if !strings.Contains(string(warnings[0].payload), "laser_storm") {
		t.Errorf("warning payload %q does not name the unknown pattern", warnings[0].payload)
	}

	telemetry.mu.Lock()
	defer telemetry.mu.Unlock()
	if len(telemetry.segments) != 2 {
		t.Errorf("telemetry segments = %v, want 2 entries", telemetry.segments)
	}
	if telemetry.segments[0] != "blink_all" || telemetry.segments[1] != "all_on" {
		t.Errorf("telemetry segments = %v, want [blink_all all_on]", telemetry.segments)
	}
}

func TestRunnerPlaybackUnavailable(t *testing.T) {
	reg := newTestRegistry()
	reg.On("tree_1") // simulate a stray lit channel from a previous run

	runner := NewRunner(&show.Show{File: "x.mp3"}, reg, pattern.NewLibrary(), failingSource{}, fastOptions())

	err := runner.Run(context.Background())
	if !errors.Is(err, ErrPlaybackUnavailable) {
		t.Fatalf("expected ErrPlaybackUnavailable, got %v", err)
	}

	// Cleanup must run even when the show never starts.
	requireAllOff(t, reg)
}

func TestRunnerCancellation(t *testing.T) {
	reg := newTestRegistry()

	sh := &show.Show{
		File: "x.mp3",
		Sections: []show.Segment{
			{Start: 0, End: 0.05, Pattern: "all_on"},
			{Start: 5, End: 5.1, Pattern: "blink_all"}, // never reached
		},
	}

	runner := NewRunner(sh, reg, pattern.NewLibrary(), playback.NewNull(10*time.Second), fastOptions())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := runner.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Errorf("cancelled run took %v, expected prompt exit", elapsed)
	}

	// all_on ran before cancellation; cleanup must have cleared it.
	requireAllOff(t, reg)
}

func TestRunnerSkipsInvertedWindowWithoutDelay(t *testing.T) {
	reg := newTestRegistry()

	sh := &show.Show{
		File: "x.mp3",
		Sections: []show.Segment{
			{Start: 0.2, End: 0.1, Pattern: "blink_all"},
			{Start: 0.1, End: 0.1, Pattern: "blink_all"},
		},
	}

	runner := NewRunner(sh, reg, pattern.NewLibrary(), playback.NewNull(50*time.Millisecond), fastOptions())

	started := time.Now()
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Neither malformed section should consume timeline waiting; only the
	// drain phase (50ms of playback) holds the runner.
	if elapsed := time.Since(started); elapsed > 300*time.Millisecond {
		t.Errorf("run took %v, skipped sections should not consume time", elapsed)
	}
}
