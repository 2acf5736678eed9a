// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package popdata

import (
	"fmt"
	"slices"
	"sort"

	"github.com/danielhkuo/fair-seats/apportion"
)

const (
	SeverityError = "error"
	SeverityWarn  = "warn"
)

// Issue is one finding from Check.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ValidateSeatTotal checks that total is one of the allowed house sizes,
// by default the standard sizes.
func ValidateSeatTotal(total int, allowed ...int) error {
	if len(allowed) == 0 {
		allowed = apportion.StandardHouseSizes
	}
	if slices.Contains(allowed, total) {
		return nil
	}
	return fmt.Errorf("%w: seat total %d, expected one of %v", apportion.ErrInvalidInput, total, allowed)
}

// Check reports problems that do not stop a file from loading: duplicate
// names, zero populations, names missing from the canonical list, and a
// seat column that does not sum to a standard house size. canonical may be
// nil to skip the name check.
func Check(ds Dataset, canonical map[string]string) []Issue {
	var issues []Issue

	counts := make(map[string]int, len(ds.States))
	for _, s := range ds.States {
		counts[s.Name]++
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		issues = append(issues, Issue{SeverityError, fmt.Sprintf("duplicate states: %v", dups)})
	}

	var zero []string
	for _, s := range ds.States {
		if s.Population == 0 {
			zero = append(zero, s.Name)
		}
	}
	if len(zero) > 0 {
		issues = append(issues, Issue{SeverityWarn, fmt.Sprintf("states with zero population: %v", zero)})
	}

	if canonical != nil {
		known := make(map[string]bool, len(canonical))
		for _, c := range canonical {
			known[c] = true
		}
		var unknown []string
		for _, s := range ds.States {
			if !known[s.Name] {
				unknown = append(unknown, s.Name)
			}
		}
		if len(unknown) > 0 {
			issues = append(issues, Issue{SeverityWarn, fmt.Sprintf("states not in canonical list: %v", unknown)})
		}
	}

	if ds.SeatColumn != "" {
		total := 0
		for _, s := range ds.States {
			if s.BaselineSeats != nil {
				total += *s.BaselineSeats
			}
		}
		if err := ValidateSeatTotal(total); err != nil {
			issues = append(issues, Issue{SeverityError, err.Error()})
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
