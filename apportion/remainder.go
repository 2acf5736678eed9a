// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"fmt"
	"math"
	"sort"
)

const (
	// RemainderTolerance is the width within which two remainders count as tied
	RemainderTolerance = 1e-9

	// quotaSumTolerance bounds |Σquota - H| relative to H
	quotaSumTolerance = 1e-6
)

// SeatRow is one state's line in an allocation.
type SeatRow struct {
	State       string  `json:"state"`
	Population  int64   `json:"population"`
	Quota       float64 `json:"quota"`
	Remainder   float64 `json:"remainder"`
	Seats       int     `json:"seats"`
	FloorRaised bool    `json:"floor_raised,omitempty"`
}

// Allocate converts fractional quotas into whole seats summing exactly to
// houseSize using the Hamilton (largest remainder) method.
//
// Each state starts at max(floor, ⌊quota⌋). Remaining seats go one each to
// the largest fractional remainders across all states. A state raised to the
// floor keeps the fractional part of its original quota as its remainder
// and competes for leftover seats like any other. Remainders within
// RemainderTolerance are tied; ties go to the smaller population, then to
// the lexicographically smaller name.
//
// Rows are returned sorted by state name. The result depends only on the
// set of quotas, never on their order.
func Allocate(quotas []Quota, houseSize, floor int) ([]SeatRow, error) {
	if houseSize <= 0 {
		return nil, invalidParameter("house size %d must be positive", houseSize)
	}
	if floor < 0 {
		return nil, invalidParameter("floor %d must be non-negative", floor)
	}
	if len(quotas) == 0 {
		return nil, invalidInput("no quotas to allocate")
	}
	if int64(floor)*int64(len(quotas)) > int64(houseSize) {
		return nil, fmt.Errorf("%w: floor %d for %d states needs %d seats, house size is %d",
			ErrInfeasibleFloor, floor, len(quotas), int64(floor)*int64(len(quotas)), houseSize)
	}

	rows := make([]SeatRow, 0, len(quotas))
	seen := make(map[string]bool, len(quotas))
	var quotaSum float64

	for _, q := range quotas {
		if q.State == "" {
			return nil, invalidInput("quota with empty state name")
		}
		if seen[q.State] {
			return nil, invalidInput("duplicate state %q", q.State)
		}
		seen[q.State] = true

		if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) || q.Value < 0 {
			return nil, invalidInput("state %q: quota %v is not a non-negative number", q.State, q.Value)
		}
		if q.Population < 0 {
			return nil, invalidInput("state %q: negative population %d", q.State, q.Population)
		}
		quotaSum += q.Value

		whole := math.Floor(q.Value)
		row := SeatRow{
			State:      q.State,
			Population: q.Population,
			Quota:      q.Value,
			Remainder:  q.Value - whole,
			Seats:      int(whole),
		}
		if row.Seats < floor {
			row.Seats = floor
			row.FloorRaised = true
		}
		rows = append(rows, row)
	}

	h := float64(houseSize)
	if math.Abs(quotaSum-h) > quotaSumTolerance*h {
		return nil, invalidInput("quotas sum to %v, expected house size %d", quotaSum, houseSize)
	}

	base := 0
	for _, r := range rows {
		base += r.Seats
	}

	deficit := houseSize - base
	if deficit < 0 {
		return nil, fmt.Errorf("%w: base seats %d exceed house size %d by %d (floor %d)",
			ErrOverAllocation, base, houseSize, -deficit, floor)
	}

	// Name order first so the stable sort below never depends on input order.
	sort.Slice(rows, func(i, j int) bool { return rows[i].State < rows[j].State })

	// Σ frac(quota) < n, so deficit never exceeds the number of states
	// within the quota-sum tolerance.
	if deficit > len(rows) {
		return nil, fmt.Errorf("%d seats left after base assignment for %d states", deficit, len(rows))
	}
	order := make([]int, len(rows))
	for i := range rows {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remainderBefore(rows[order[i]], rows[order[j]])
	})

	for _, idx := range order[:deficit] {
		rows[idx].Seats++
	}

	return rows, nil
}

// remainderBefore orders candidates for the leftover seats.
func remainderBefore(a, b SeatRow) bool {
	if math.Abs(a.Remainder-b.Remainder) > RemainderTolerance {
		return a.Remainder > b.Remainder
	}
	if a.Population != b.Population {
		return a.Population < b.Population
	}
	return a.State < b.State
}
