// Package channel maps logical channel names to binary outputs.
//
// The Registry is the only mutator of channel state. Patterns and the show
// scheduler toggle channels exclusively through its On/Off/AllOn/AllOff
// operations; unknown names are silent no-ops so a show written for a full
// rig runs correctly on partial hardware.
//
// # Concurrency
//
// The registry is deliberately unlocked. Channel state is owned by the
// single goroutine running the show; background observers (the clock
// reporter) never read channel state. A deployment that introduces a second
// writer must serialise access externally.
//
// # Channel map
//
// Registries are built from a YAML channel map declaring named groups:
//
//	groups:
//	  trees:
//	    T1: 17
//	    BigTree: 23
//	  bulbs:
//	    B1: 5
//
// Group membership drives the group-based patterns (waves, chases,
// alternation); the numeric addresses are consumed by the output factory.
package channel
