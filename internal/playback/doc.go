// Package playback provides the audio playback boundary for the show engine.
//
// The engine treats playback as nothing more than a clock source plus a
// "still playing" predicate (the Source interface). Two implementations are
// provided: Player, which supervises an external audio player subprocess
// (mpv, ffplay, or anything that takes a file path and exits when the track
// ends), and Null, a silent fixed-duration clock for rehearsals and tests.
//
// Audio decoding, mixing, and output are entirely the player binary's
// concern; this package only manages its lifecycle.
package playback
