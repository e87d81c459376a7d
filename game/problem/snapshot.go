package problem

import (
	"maps"
	"slices"
)

// Snapshot is an immutable set of named statistics computed from one grid state.
type Snapshot struct {
	values map[string]int
}

// NewSnapshot copies values into a snapshot.
func NewSnapshot(values map[string]int) Snapshot {
	return Snapshot{values: maps.Clone(values)}
}

// Get returns the value of a statistic, zero when absent.
func (s Snapshot) Get(name string) int {
	return s.values[name]
}

// Has reports whether the statistic was computed.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names lists the statistics in lexical order.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Map returns a copy of the statistics.
func (s Snapshot) Map() map[string]int {
	out := maps.Clone(s.values)
	if out == nil {
		out = map[string]int{}
	}
	return out
}
