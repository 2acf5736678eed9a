// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"fmt"
	"math"
)

// DefaultFloor is the minimum seats per state when none is configured
const DefaultFloor = 1

// Parameter sets studied for the Lok Sabha
var (
	StandardAlphas     = []float64{0.4, 0.5, 0.6, 0.8, 0.9, 1.0}
	StandardHouseSizes = []int{543, 888}
)

// AllocationParameters are passed by value into every computation.
// Alpha = 1 is pure proportionality.
type AllocationParameters struct {
	Alpha     float64 `json:"alpha"`
	HouseSize int     `json:"house_size"`
	Floor     int     `json:"floor"`
}

// Validate checks 0 < Alpha <= 1, HouseSize > 0 and Floor >= 0.
func (p AllocationParameters) Validate() error {
	if math.IsNaN(p.Alpha) || p.Alpha <= 0 || p.Alpha > 1 {
		return invalidParameter("alpha %v outside (0, 1]", p.Alpha)
	}
	if p.HouseSize <= 0 {
		return invalidParameter("house size %d must be positive", p.HouseSize)
	}
	if p.Floor < 0 {
		return invalidParameter("floor %d must be non-negative", p.Floor)
	}
	return nil
}

// Proportional reports whether these parameters describe strict proportionality.
func (p AllocationParameters) Proportional() bool {
	return p.Alpha == 1
}

func (p AllocationParameters) String() string {
	return fmt.Sprintf("alpha=%g H=%d floor=%d", p.Alpha, p.HouseSize, p.Floor)
}
