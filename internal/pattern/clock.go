package pattern

import "time"

// Clock abstracts time for pattern execution so tests can drive patterns
// deterministically with a fake clock instead of real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// realClock is the wall-clock implementation used in production.
type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns the wall-clock Clock.
func RealClock() Clock {
	return realClock{}
}
