package show

import (
	"fmt"
	"time"

	"github.com/frostline/lumencore/internal/tempo"
)

// Segment is one timeline entry: a time window, a pattern name, and the
// pattern's options.
//
// A segment is either second-indexed (Start/End) or measure-indexed
// (StartMeasure/EndMeasure); measure-indexed segments require the show to
// declare a tempo and are resolved to seconds by ResolveTimes before the
// scheduler sees them. Segments are immutable once resolved.
type Segment struct {
	Start        float64            `yaml:"start"`
	End          float64            `yaml:"end"`
	StartMeasure int                `yaml:"start_measure"`
	EndMeasure   int                `yaml:"end_measure"`
	Pattern      string             `yaml:"pattern"`
	Options      map[string]float64 `yaml:"options"`
}

// Duration returns the segment's length as a time.Duration.
// Zero or negative windows yield a non-positive duration; the scheduler
// skips those segments.
func (s *Segment) Duration() time.Duration {
	return time.Duration((s.End - s.Start) * float64(time.Second))
}

// measureIndexed reports whether the segment was declared in measures.
func (s *Segment) measureIndexed() bool {
	return s.EndMeasure > 0 || s.StartMeasure > 0
}

// Show is a complete declarative light show: the audio track it follows,
// an optional tempo, and the ordered timeline of segments.
type Show struct {
	File            string    `yaml:"file"`
	BPM             float64   `yaml:"bpm"`
	BeatsPerMeasure int       `yaml:"beats_per_measure"`
	Sections        []Segment `yaml:"sections"`
}

// ResolveTimes converts any measure-indexed segments to seconds in place.
//
// Requires a declared tempo when measure-indexed segments are present.
// Second-indexed segments are left untouched. Safe to call on an already
// resolved show.
//
// Returns:
//   - error: ErrMeasuresWithoutTempo if a measure-indexed segment exists
//     and the show has no tempo, or tempo.ErrInvalidTempo for a negative one
func (s *Show) ResolveTimes() error {
	for i := range s.Sections {
		seg := &s.Sections[i]
		if !seg.measureIndexed() {
			continue
		}
		if s.BPM == 0 {
			return fmt.Errorf("%w: section %d", ErrMeasuresWithoutTempo, i)
		}

		start, err := tempo.MeasuresToSeconds(float64(seg.StartMeasure), s.BPM, s.BeatsPerMeasure)
		if err != nil {
			return fmt.Errorf("resolving section %d start: %w", i, err)
		}
		end, err := tempo.MeasuresToSeconds(float64(seg.EndMeasure), s.BPM, s.BeatsPerMeasure)
		if err != nil {
			return fmt.Errorf("resolving section %d end: %w", i, err)
		}

		seg.Start = start
		seg.End = end
	}
	return nil
}
