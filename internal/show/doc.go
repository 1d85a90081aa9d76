// Package show defines the declarative light-show format and its loader.
//
// A show file names the audio track, optionally declares a tempo and time
// signature, and lists an ordered timeline of sections:
//
//	file: "carol_of_the_bells.mp3"
//	bpm: 98.5
//	beats_per_measure: 4
//	sections:
//	  - start: 0.0
//	    end: 12.5
//	    pattern: "blink_all"
//	    options:
//	      interval: 2        # beats when bpm is set, else seconds
//
// Sections may instead be measure-indexed (start_measure/end_measure);
// these are converted to seconds at load time using the declared tempo.
// The runtime trusts section ordering and does not detect overlaps.
package show
