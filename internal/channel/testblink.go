package channel

import "time"

// TestBlink lights each registered channel in sequence for the given
// duration, one channel at a time, then turns everything off.
//
// This is an operator utility for verifying wiring after changes to the
// channel map; it runs on the wall clock and is not scheduled by a show.
func TestBlink(reg *Registry, duration, interval time.Duration) {
	names := reg.Names()
	if len(names) == 0 {
		return
	}

	end := time.Now().Add(duration)
	i := 0
	for time.Now().Before(end) {
		reg.AllOff()
		name := names[i%len(names)]
		reg.logger.Info("test blink", "channel", name)
		reg.On(name)
		time.Sleep(interval)
		i++
	}

	reg.AllOff()
}
