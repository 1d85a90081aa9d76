package channel

// Output is a binary output handle backing a single channel.
//
// Implementations map a logical channel onto whatever actually emits light:
// a GPIO pin, a relay board, a log line. Construction and teardown of
// physical handles is the deployment's concern; the registry only toggles.
type Output interface {
	On()
	Off()
}

// Channel is a named binary output with tracked state.
//
// A Channel is owned by exactly one Registry and is mutated only through
// the registry's On/Off/AllOn/AllOff operations.
type Channel struct {
	name string
	out  Output
	on   bool
}

// Name returns the channel's logical name.
func (c *Channel) Name() string {
	return c.name
}

// IsOn reports the channel's current state.
func (c *Channel) IsOn() bool {
	return c.on
}

// StateSink receives every channel state transition as it happens.
//
// Sinks are invoked inline on the goroutine performing the mutation, so the
// registry's single-mutator ownership extends to them. Sinks must not call
// back into the registry.
type StateSink func(name string, on bool)

// NopOutput is an Output that does nothing. It backs test registries and
// hardware-less runs where only the tracked state matters.
type NopOutput struct{}

// On implements Output.
func (NopOutput) On() {}

// Off implements Output.
func (NopOutput) Off() {}
