package channel

import "testing"

// recordingOutput counts transitions for verifying output wiring.
type recordingOutput struct {
	onCalls  int
	offCalls int
}

func (o *recordingOutput) On()  { o.onCalls++ }
func (o *recordingOutput) Off() { o.offCalls++ }

func newTestRegistry(names ...string) *Registry {
	reg := NewRegistry()
	for _, name := range names {
		reg.Add(name, NopOutput{})
	}
	return reg
}

func TestRegistry_OnOff(t *testing.T) {
	reg := newTestRegistry("T1", "B1")

	reg.On("T1")
	if !reg.States()["T1"] {
		t.Error("T1 should be on")
	}
	if reg.States()["B1"] {
		t.Error("B1 should still be off")
	}

	reg.Off("T1")
	if reg.States()["T1"] {
		t.Error("T1 should be off")
	}
}

func TestRegistry_UnknownNameIsNoOp(t *testing.T) {
	reg := newTestRegistry("T1")

	// Must not panic or alter existing state.
	reg.On("T99")
	reg.Off("T99")

	if reg.States()["T1"] {
		t.Error("T1 should be unaffected by unknown-name operations")
	}
	if _, ok := reg.Lookup("T99"); ok {
		t.Error("Lookup should miss for unknown name")
	}
}

func TestRegistry_AllOnAllOff(t *testing.T) {
	reg := newTestRegistry("T1", "T2", "B1")

	reg.AllOn()
	for name, on := range reg.States() {
		if !on {
			t.Errorf("channel %s should be on after AllOn", name)
		}
	}

	reg.AllOff()
	for name, on := range reg.States() {
		if on {
			t.Errorf("channel %s should be off after AllOff", name)
		}
	}

	// Terminal guarantee: repeated AllOff is safe.
	reg.AllOff()
	reg.AllOff()
}

func TestRegistry_OutputsDriven(t *testing.T) {
	out := &recordingOutput{}
	reg := NewRegistry()
	reg.Add("T1", out)

	reg.On("T1")
	reg.Off("T1")
	reg.AllOff()

	if out.onCalls != 1 {
		t.Errorf("onCalls = %d, want 1", out.onCalls)
	}
	// AllOff drives the output even when the state is unchanged.
	if out.offCalls != 2 {
		t.Errorf("offCalls = %d, want 2", out.offCalls)
	}
}

func TestRegistry_Group(t *testing.T) {
	reg := newTestRegistry("T1", "T2")
	reg.SetGroup("trees", []string{"T1", "T2", "T3"})
	reg.SetGroup("bulbs", []string{"B1", "B2"})

	trees := reg.Group("trees")
	if len(trees) != 2 || trees[0] != "T1" || trees[1] != "T2" {
		t.Errorf("Group(trees) = %v, want [T1 T2]", trees)
	}

	// Group entirely absent from the registry resolves empty, not nil panic.
	if got := reg.Group("bulbs"); len(got) != 0 {
		t.Errorf("Group(bulbs) = %v, want empty", got)
	}

	if got := reg.Group("nonexistent"); len(got) != 0 {
		t.Errorf("Group(nonexistent) = %v, want empty", got)
	}
}

func TestRegistry_StateSink(t *testing.T) {
	reg := newTestRegistry("T1", "B1")

	type transition struct {
		name string
		on   bool
	}
	var seen []transition
	reg.SetStateSink(func(name string, on bool) {
		seen = append(seen, transition{name, on})
	})

	reg.On("T1")
	reg.On("T1") // unchanged, no sink call
	reg.AllOff()

	want := []transition{{"T1", true}, {"T1", false}}
	if len(seen) != len(want) {
		t.Fatalf("sink saw %d transitions, want %d: %v", len(seen), len(want), seen)
	}
	for i, tr := range want {
		if seen[i] != tr {
			t.Errorf("transition %d = %v, want %v", i, seen[i], tr)
		}
	}
}

func TestRegistry_NamesOrder(t *testing.T) {
	reg := newTestRegistry("B1", "T1", "A1")

	names := reg.Names()
	want := []string{"B1", "T1", "A1"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q (registration order)", i, names[i], name)
		}
	}
}
