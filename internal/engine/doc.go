// Package engine schedules and executes light shows.
//
// A Runner takes a resolved show timeline, a channel registry, the pattern
// catalog, and a playback source. Starting the source yields the clock
// reference; every segment start offset is measured against it, so the
// lights track the audio rather than accumulated sleep drift.
//
// The scheduler is deliberately simple: it polls ahead of each segment's
// start, invokes the pattern synchronously for the segment's duration, and
// moves on. Patterns are not preempted; a late-running segment shifts its
// successors. Unknown pattern names and non-positive windows are warned
// about and skipped, never fatal.
//
// A background Reporter announces elapsed whole seconds while the show
// runs. It observes the clock only and never touches channel state, which
// keeps the registry single-mutator without locking.
//
// Cleanup is unconditional: on every exit path the runner stops the
// reporter, stops playback, and forces every channel off.
package engine
