// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"sort"
	"strings"
)

// State is one apportionment unit for a single projection year.
type State struct {
	Name          string
	Population    int64
	BaselineSeats *int // existing seats, if known
}

// PopulationTable is the validated, immutable input for one projection year.
// States are held sorted by name so that every sum taken over the table is
// independent of input row order.
type PopulationTable struct {
	year   string
	states []State
	total  int64
}

// NewPopulationTable validates states and builds a table.
func NewPopulationTable(year string, states []State) (PopulationTable, error) {
	if len(states) == 0 {
		return PopulationTable{}, invalidInput("population table for year %q has no states", year)
	}

	cleaned := make([]State, 0, len(states))
	seen := make(map[string]bool, len(states))
	var total int64

	for i, s := range states {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return PopulationTable{}, invalidInput("row %d: state name is empty", i+1)
		}
		if seen[name] {
			return PopulationTable{}, invalidInput("duplicate state %q", name)
		}
		seen[name] = true

		if s.Population < 0 {
			return PopulationTable{}, invalidInput("state %q: negative population %d", name, s.Population)
		}
		if s.BaselineSeats != nil && *s.BaselineSeats < 0 {
			return PopulationTable{}, invalidInput("state %q: negative baseline seats %d", name, *s.BaselineSeats)
		}

		var baseline *int
		if s.BaselineSeats != nil {
			b := *s.BaselineSeats
			baseline = &b
		}

		cleaned = append(cleaned, State{Name: name, Population: s.Population, BaselineSeats: baseline})
		total += s.Population
	}

	if total == 0 {
		return PopulationTable{}, invalidInput("population table for year %q has zero total population", year)
	}

	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i].Name < cleaned[j].Name })

	return PopulationTable{year: year, states: cleaned, total: total}, nil
}

func (t PopulationTable) Year() string { return t.year }

func (t PopulationTable) Len() int { return len(t.states) }

// TotalPopulation is the sum over all states, zero-population states included.
func (t PopulationTable) TotalPopulation() int64 { return t.total }

// States returns a copy of the states in name order.
func (t PopulationTable) States() []State {
	out := make([]State, len(t.states))
	copy(out, t.states)
	return out
}

// Lookup finds a state by canonical name.
func (t PopulationTable) Lookup(name string) (State, bool) {
	i := sort.Search(len(t.states), func(i int) bool { return t.states[i].Name >= name })
	if i < len(t.states) && t.states[i].Name == name {
		return t.states[i], true
	}
	return State{}, false
}

// HasBaseline reports whether every state carries baseline seats.
func (t PopulationTable) HasBaseline() bool {
	if len(t.states) == 0 {
		return false
	}
	for _, s := range t.states {
		if s.BaselineSeats == nil {
			return false
		}
	}
	return true
}
