package channel

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map is the parsed channel map file.
//
// The file declares named groups of channels, each channel assigned a
// numeric output address (a GPIO pin on the reference rig):
//
//	groups:
//	  trees:
//	    T1: 17
//	    T2: 27
//	    BigTree: 23
//	  bulbs:
//	    B1: 5
//	    B2: 6
type Map struct {
	Groups map[string]map[string]int `yaml:"groups"`
}

// OutputFactory constructs the output handle for one channel.
// The address is the channel's numeric assignment from the map file.
type OutputFactory func(name string, address int) Output

// LoadMap reads and parses a channel map YAML file.
//
// Parameters:
//   - path: Path to the channel map file
//
// Returns:
//   - *Map: Parsed map
//   - error: If the file cannot be read or parsed, or declares no channels
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading channel map: %w", err)
	}

	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing channel map: %w", err)
	}

	total := 0
	for _, members := range m.Groups {
		total += len(members)
	}
	if total == 0 {
		return nil, ErrEmptyMap
	}

	return &m, nil
}

// Build constructs a Registry from a channel map, creating one output per
// channel via the factory. Channels and group members are registered in
// sorted order so bulk operations behave deterministically.
func (m *Map) Build(factory OutputFactory) *Registry {
	reg := NewRegistry()

	groupNames := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	for _, group := range groupNames {
		channels := m.Groups[group]
		members := make([]string, 0, len(channels))
		for name := range channels {
			members = append(members, name)
		}
		sort.Strings(members)

		for _, name := range members {
			reg.Add(name, factory(name, channels[name]))
		}
		reg.SetGroup(group, members)
	}

	return reg
}
