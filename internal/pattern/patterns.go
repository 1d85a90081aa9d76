package pattern

import (
	"time"

	"github.com/frostline/lumencore/internal/channel"
)

// Default intervals, tuned on the reference rig.
const (
	defaultBlinkInterval     = 500 * time.Millisecond
	defaultAlternateInterval = 400 * time.Millisecond
	defaultWaveStep          = 200 * time.Millisecond
	defaultCascadeStep       = 200 * time.Millisecond
	defaultChaseStep         = 150 * time.Millisecond
	defaultSparkleInterval   = 80 * time.Millisecond
	defaultFinaleInterval    = 120 * time.Millisecond
	defaultFinaleHold        = 500 * time.Millisecond
)

// allOff is one-shot: everything off immediately.
func (l *Library) allOff(reg *channel.Registry, _ time.Duration, _ Options) {
	reg.AllOff()
}

// allOn is one-shot: everything on, left on for the next segment to shape.
func (l *Library) allOn(reg *channel.Registry, _ time.Duration, _ Options) {
	reg.AllOn()
}

// blinkAll alternates all-on and all-off at a fixed interval.
func (l *Library) blinkAll(reg *channel.Registry, duration time.Duration, opts Options) {
	interval := opts.Seconds("interval", defaultBlinkInterval)
	end := l.clock.Now().Add(duration)

	state := false
	for l.clock.Now().Before(end) {
		if state {
			reg.AllOff()
		} else {
			reg.AllOn()
		}
		state = !state
		l.clock.Sleep(interval)
	}
	reg.AllOff()
}

// alternateTreesAndBulbs flips between trees-on/bulbs-off and the reverse.
func (l *Library) alternateTreesAndBulbs(reg *channel.Registry, duration time.Duration, opts Options) {
	trees := reg.Group(GroupTrees)
	bulbs := reg.Group(GroupBulbs)
	if len(trees) == 0 && len(bulbs) == 0 {
		return
	}

	interval := opts.Seconds("interval", defaultAlternateInterval)
	end := l.clock.Now().Add(duration)

	treesOn := true
	for l.clock.Now().Before(end) {
		for _, t := range trees {
			if treesOn {
				reg.On(t)
			} else {
				reg.Off(t)
			}
		}
		for _, b := range bulbs {
			if treesOn {
				reg.Off(b)
			} else {
				reg.On(b)
			}
		}
		treesOn = !treesOn
		l.clock.Sleep(interval)
	}
	reg.AllOff()
}

// waveTrees lights the tree channels one at a time in sequence, looping.
func (l *Library) waveTrees(reg *channel.Registry, duration time.Duration, opts Options) {
	names := reg.Group(GroupTrees)
	if len(names) == 0 {
		return
	}

	step := opts.Seconds("step_interval", defaultWaveStep)
	end := l.clock.Now().Add(duration)

	for l.clock.Now().Before(end) {
		for _, name := range names {
			if !l.clock.Now().Before(end) {
				break
			}
			reg.AllOff()
			reg.On(name)
			l.clock.Sleep(step)
		}
	}
	reg.AllOff()
}

// wavePairs runs a wave over fixed tree/bulb pairs, lighting each pair
// together. Pairing is positional; the shorter group bounds the wave.
func (l *Library) wavePairs(reg *channel.Registry, duration time.Duration, opts Options) {
	trees := reg.Group(GroupTrees)
	bulbs := reg.Group(GroupBulbs)
	pairs := len(trees)
	if len(bulbs) < pairs {
		pairs = len(bulbs)
	}
	if pairs == 0 {
		return
	}

	step := opts.Seconds("step_interval", defaultWaveStep)
	end := l.clock.Now().Add(duration)

	i := 0
	for l.clock.Now().Before(end) {
		reg.AllOff()
		reg.On(trees[i%pairs])
		reg.On(bulbs[i%pairs])
		i++
		l.clock.Sleep(step)
	}
	reg.AllOff()
}

// cascadeTrees turns each tree on in sequence, then each off in sequence,
// looping.
func (l *Library) cascadeTrees(reg *channel.Registry, duration time.Duration, opts Options) {
	names := reg.Group(GroupTrees)
	if len(names) == 0 {
		return
	}

	step := opts.Seconds("step_interval", defaultCascadeStep)
	end := l.clock.Now().Add(duration)

	for l.clock.Now().Before(end) {
		for _, name := range names {
			if !l.clock.Now().Before(end) {
				break
			}
			reg.On(name)
			l.clock.Sleep(step)
		}
		for _, name := range names {
			if !l.clock.Now().Before(end) {
				break
			}
			reg.Off(name)
			l.clock.Sleep(step)
		}
	}
	reg.AllOff()
}

// chaseBulbs lights exactly one bulb at a time in rotating sequence.
func (l *Library) chaseBulbs(reg *channel.Registry, duration time.Duration, opts Options) {
	names := reg.Group(GroupBulbs)
	if len(names) == 0 {
		return
	}

	step := opts.Seconds("step_interval", defaultChaseStep)
	end := l.clock.Now().Add(duration)

	idx := 0
	for l.clock.Now().Before(end) {
		reg.AllOff()
		reg.On(names[idx%len(names)])
		idx++
		l.clock.Sleep(step)
	}
	reg.AllOff()
}

// sparkle randomizes every channel independently each tick, with a
// configurable on-probability.
func (l *Library) sparkle(reg *channel.Registry, duration time.Duration, opts Options) {
	names := reg.Names()
	if len(names) == 0 {
		return
	}

	interval := opts.Seconds("interval", defaultSparkleInterval)
	onFraction := opts.Float("on_fraction", 0.5)
	end := l.clock.Now().Add(duration)

	for l.clock.Now().Before(end) {
		for _, name := range names {
			if l.rng.Float64() < onFraction {
				reg.On(name)
			} else {
				reg.Off(name)
			}
		}
		l.clock.Sleep(interval)
	}
	reg.AllOff()
}

// finaleFlash strobes everything rapidly, holds all-on for a beat, then
// ends all-off.
func (l *Library) finaleFlash(reg *channel.Registry, duration time.Duration, opts Options) {
	interval := opts.Seconds("interval", defaultFinaleInterval)
	hold := opts.Seconds("hold", defaultFinaleHold)
	end := l.clock.Now().Add(duration)

	state := false
	for l.clock.Now().Before(end) {
		if state {
			reg.AllOn()
		} else {
			reg.AllOff()
		}
		state = !state
		l.clock.Sleep(interval)
	}

	reg.AllOn()
	l.clock.Sleep(hold)
	reg.AllOff()
}
