package show

import "errors"

// Domain errors for the show package.
var (
	// ErrNoAudioFile is returned when a show file declares no audio track.
	ErrNoAudioFile = errors.New("show: no audio file declared")

	// ErrNoSections is returned when a show file declares no timeline sections.
	ErrNoSections = errors.New("show: no sections declared")

	// ErrMeasuresWithoutTempo is returned when a measure-indexed section
	// appears in a show that declares no tempo.
	ErrMeasuresWithoutTempo = errors.New("show: measure-indexed section requires bpm")
)
