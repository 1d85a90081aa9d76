package engine

import (
	"sync"
	"testing"
	"time"
)

func TestReporterTicksWholeSeconds(t *testing.T) {
	var mu sync.Mutex
	var ticks []int
	onTick := func(elapsed int) {
		mu.Lock()
		ticks = append(ticks, elapsed)
		mu.Unlock()
	}

	r := NewReporter(10*time.Millisecond, 500*time.Millisecond, onTick, nil)

	// Backdate the reference so second boundaries fall inside the test
	// without sleeping whole seconds.
	r.Start(time.Now().Add(-2950 * time.Millisecond))
	time.Sleep(150 * time.Millisecond)
	r.Stop()

	mu.Lock()
	defer mu.Unlock()

	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks, got %v", ticks)
	}
	if ticks[0] != 2 {
		t.Errorf("first tick = %d, want 2", ticks[0])
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Errorf("ticks not strictly increasing: %v", ticks)
		}
	}
}

func TestReporterNoTickBeforeFirstSecond(t *testing.T) {
	var mu sync.Mutex
	count := 0
	onTick := func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	r := NewReporter(10*time.Millisecond, 500*time.Millisecond, onTick, nil)
	r.Start(time.Now())
	time.Sleep(80 * time.Millisecond)
	r.Stop()

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("expected no ticks before the first elapsed second, got %d", count)
	}
}

func TestReporterStopWithoutStart(t *testing.T) {
	r := NewReporter(10*time.Millisecond, 500*time.Millisecond, nil, nil)

	done := make(chan struct{})
	go func() {
		r.Stop()
		r.Stop() // second call must also be safe
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start did not return")
	}
}

func TestReporterStopBoundedByJoinTimeout(t *testing.T) {
	// A callback that wedges must not wedge shutdown.
	onTick := func(int) {
		time.Sleep(2 * time.Second)
	}

	r := NewReporter(5*time.Millisecond, 50*time.Millisecond, onTick, nil)
	r.Start(time.Now().Add(-1500 * time.Millisecond))
	time.Sleep(20 * time.Millisecond) // let the first tick fire and block

	stopStart := time.Now()
	r.Stop()
	if elapsed := time.Since(stopStart); elapsed > time.Second {
		t.Errorf("Stop took %v, want bounded by join timeout", elapsed)
	}
}
