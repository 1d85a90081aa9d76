package pattern

import (
	"math/rand"
	"sort"
	"time"

	"github.com/frostline/lumencore/internal/channel"
)

// Channel groups the catalog choreographs. These are the logical group
// names from the channel map; a rig missing a group still runs every
// pattern, the group simply resolves empty.
const (
	GroupTrees = "trees"
	GroupBulbs = "bulbs"
)

// Func is the common execution contract for every pattern: run against the
// registry until the duration elapses. Funcs are self-contained bounded
// loops with no external cancellation; a running pattern ends only when its
// duration expires.
type Func func(reg *channel.Registry, duration time.Duration, opts Options)

// Library is the fixed catalog of named patterns.
//
// Lookup by name is a handled miss, not an error: the scheduler warns and
// skips segments naming unknown patterns.
type Library struct {
	clock    Clock
	rng      *rand.Rand
	patterns map[string]Func
}

// NewLibrary creates the standard pattern catalog using the wall clock.
func NewLibrary() *Library {
	return NewLibraryWithClock(RealClock())
}

// NewLibraryWithClock creates the catalog with an injected clock, letting
// tests run patterns against fake time.
func NewLibraryWithClock(clock Clock) *Library {
	l := &Library{
		clock: clock,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	l.patterns = map[string]Func{
		"all_off":                   l.allOff,
		"all_on":                    l.allOn,
		"blink_all":                 l.blinkAll,
		"alternate_trees_and_bulbs": l.alternateTreesAndBulbs,
		"wave_trees":                l.waveTrees,
		"wave_pairs":                l.wavePairs,
		"cascade_trees":             l.cascadeTrees,
		"chase_bulbs":               l.chaseBulbs,
		"sparkle":                   l.sparkle,
		"finale_flash":              l.finaleFlash,
	}
	return l
}

// Seed reseeds the library's random source. Tests use this to make
// sparkle deterministic.
func (l *Library) Seed(seed int64) {
	l.rng = rand.New(rand.NewSource(seed))
}

// Lookup returns the pattern registered under name, if any.
func (l *Library) Lookup(name string) (Func, bool) {
	f, ok := l.patterns[name]
	return f, ok
}

// Names returns every registered pattern name, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.patterns))
	for name := range l.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
