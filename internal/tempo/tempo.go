package tempo

import (
	"fmt"
	"strings"
)

// secondsPerMinute converts per-minute rates to per-second values.
const secondsPerMinute = 60.0

// DefaultBeatsPerMeasure is the assumed time signature numerator when a show
// does not declare one (4/4).
const DefaultBeatsPerMeasure = 4

// intervalSuffix marks option keys whose values are beat-denominated
// intervals (e.g. "step_interval").
const intervalSuffix = "_interval"

// intervalKey is the bare option key treated as an interval.
const intervalKey = "interval"

// BeatsToSeconds converts a beat count to seconds at the given tempo.
//
// Parameters:
//   - beats: Number of beats (may be fractional)
//   - bpm: Tempo in beats per minute, must be positive
//
// Returns:
//   - float64: Equivalent duration in seconds
//   - error: ErrInvalidTempo if bpm <= 0
func BeatsToSeconds(beats, bpm float64) (float64, error) {
	if bpm <= 0 {
		return 0, fmt.Errorf("%w: %v bpm", ErrInvalidTempo, bpm)
	}
	return beats / bpm * secondsPerMinute, nil
}

// MeasuresToSeconds converts a measure count to seconds.
//
// A beatsPerMeasure of zero or less falls back to DefaultBeatsPerMeasure.
//
// Returns:
//   - float64: Equivalent duration in seconds
//   - error: ErrInvalidTempo if bpm <= 0
func MeasuresToSeconds(measures, bpm float64, beatsPerMeasure int) (float64, error) {
	if beatsPerMeasure <= 0 {
		beatsPerMeasure = DefaultBeatsPerMeasure
	}
	return BeatsToSeconds(measures*float64(beatsPerMeasure), bpm)
}

// NormalizeOptions converts beat-denominated interval options to seconds.
//
// Every key equal to "interval" or ending in "_interval" is treated as a
// beat count and converted via BeatsToSeconds; all other keys pass through
// unchanged. When bpm is zero the show declared no tempo and the options
// are returned as-is: interval values are already seconds.
//
// Parameters:
//   - opts: Pattern options from a timeline segment (may be nil)
//   - bpm: Show tempo, or 0 when none was declared
//
// Returns:
//   - map[string]float64: Normalized options (a new map when converting)
//   - error: ErrInvalidTempo if bpm < 0
func NormalizeOptions(opts map[string]float64, bpm float64) (map[string]float64, error) {
	if bpm == 0 || len(opts) == 0 {
		return opts, nil
	}

	normalized := make(map[string]float64, len(opts))
	for key, value := range opts {
		if key == intervalKey || strings.HasSuffix(key, intervalSuffix) {
			seconds, err := BeatsToSeconds(value, bpm)
			if err != nil {
				return nil, fmt.Errorf("normalizing %q: %w", key, err)
			}
			normalized[key] = seconds
			continue
		}
		normalized[key] = value
	}
	return normalized, nil
}
