package channel

import "sort"

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry maps logical channel names to binary outputs and owns their state.
//
// Referencing an unknown name is a silent no-op on On/Off; this lets a show
// written against the full channel set run unchanged on a rig wired with only
// a subset of channels. The miss is an explicit Lookup branch, not an error.
//
// Ownership: the registry's state is mutated by a single goroutine at a time
// (the show scheduler while a pattern runs). It is not internally locked;
// any future concurrent writer must serialise access itself.
type Registry struct {
	channels map[string]*Channel
	names    []string // registration order, for stable bulk operations
	groups   map[string][]string
	logger   Logger
	sink     StateSink
}

// NewRegistry creates an empty channel registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*Channel),
		groups:   make(map[string][]string),
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// SetStateSink registers a sink invoked on every state transition.
// Pass nil to remove it.
func (r *Registry) SetStateSink(sink StateSink) {
	r.sink = sink
}

// Add registers a channel under the given name, initially off.
// Re-adding an existing name replaces its output handle and resets its state.
func (r *Registry) Add(name string, out Output) {
	if _, exists := r.channels[name]; !exists {
		r.names = append(r.names, name)
	}
	r.channels[name] = &Channel{name: name, out: out}
}

// SetGroup declares a named group of channel names.
// Members need not all be registered; Group filters to present members.
func (r *Registry) SetGroup(name string, members []string) {
	r.groups[name] = append([]string(nil), members...)
}

// Lookup returns the channel registered under name, if any.
// Call sites that ignore a miss make the missing-channel no-op an
// explicit, auditable branch.
func (r *Registry) Lookup(name string) (*Channel, bool) {
	c, ok := r.channels[name]
	return c, ok
}

// On turns a single channel on by name. Unknown names are ignored.
func (r *Registry) On(name string) {
	c, ok := r.channels[name]
	if !ok {
		return
	}
	r.set(c, true)
}

// Off turns a single channel off by name. Unknown names are ignored.
func (r *Registry) Off(name string) {
	c, ok := r.channels[name]
	if !ok {
		return
	}
	r.set(c, false)
}

// AllOn turns every registered channel on.
func (r *Registry) AllOn() {
	for _, name := range r.names {
		r.set(r.channels[name], true)
	}
}

// AllOff turns every registered channel off.
//
// Safe to call at any time, including repeatedly and from failure paths;
// it is the terminal guarantee of every show.
func (r *Registry) AllOff() {
	for _, name := range r.names {
		r.set(r.channels[name], false)
	}
}

// set applies a state change, drives the output, and notifies the sink.
// Unchanged states still drive the output so AllOff remains an absolute reset.
func (r *Registry) set(c *Channel, on bool) {
	changed := c.on != on
	c.on = on
	if on {
		c.out.On()
	} else {
		c.out.Off()
	}
	if changed && r.sink != nil {
		r.sink(c.name, on)
	}
}

// Group resolves a named group to its members present in the registry.
// Unknown groups and fully absent groups resolve to an empty slice.
func (r *Registry) Group(name string) []string {
	members := r.groups[name]
	present := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := r.channels[m]; ok {
			present = append(present, m)
		}
	}
	return present
}

// Names returns all registered channel names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// GroupNames returns the declared group names, sorted.
func (r *Registry) GroupNames() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// States returns a snapshot of every channel's current state.
// Intended for tests and shutdown checks on the owning goroutine.
func (r *Registry) States() map[string]bool {
	states := make(map[string]bool, len(r.channels))
	for name, c := range r.channels {
		states[name] = c.on
	}
	return states
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	return len(r.channels)
}
