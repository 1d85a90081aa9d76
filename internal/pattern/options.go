package pattern

import "time"

// Options carries a segment's pattern parameters. Interval-like values are
// already normalized to seconds by the time a pattern runs.
type Options map[string]float64

// Seconds returns the named option as a duration, or def when absent.
func (o Options) Seconds(key string, def time.Duration) time.Duration {
	v, ok := o[key]
	if !ok {
		return def
	}
	return time.Duration(v * float64(time.Second))
}

// Float returns the named option, or def when absent.
func (o Options) Float(key string, def float64) float64 {
	v, ok := o[key]
	if !ok {
		return def
	}
	return v
}
