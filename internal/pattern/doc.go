// Package pattern is the fixed catalog of light choreography routines.
//
// Every pattern shares one contract: run against a channel registry until a
// duration elapses, then leave the registry however the pattern defines
// (all time-driven patterns end all-off; the one-shot all_on deliberately
// leaves everything lit for the next segment to shape).
//
// Patterns are bounded loops with no cancellation path; the scheduler
// blocks for a pattern's full duration. Group-based patterns resolve their
// groups through the registry, so a rig wired with only part of a group
// runs the same show with the channels it has, and a fully absent group
// makes the pattern return immediately with no side effects.
//
// Time is taken from an injectable Clock so tests drive patterns through
// fake time instead of sleeping.
package pattern
