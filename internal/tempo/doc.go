// Package tempo converts musical time into wall-clock time.
//
// Shows may declare a tempo (BPM) and a time signature; segment options
// whose keys name an interval are then denominated in beats and must be
// normalized to seconds before a pattern runs. Shows without a tempo use
// raw second values throughout and normalization is a pass-through.
package tempo
