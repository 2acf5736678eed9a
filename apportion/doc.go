// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apportion allocates legislative seats across states.

# Inputs

A PopulationTable holds one projection year of state populations. It is
validated once at construction (names, duplicates, negative values) and is
read-only afterwards:

	table, err := apportion.NewPopulationTable("2036", states)

AllocationParameters carries alpha, house size, and the per-state seat floor.
There is no package-level configuration; every call receives its parameters.

# Quotas

ComputeQuotas weights each state by population^alpha and scales the weights
to sum to the house size. Alpha below 1 flattens seats-per-capita in favour
of smaller states; alpha = 1 is strict proportionality.

# Rounding

Allocate applies the Hamilton (largest remainder) method with an explicit
floor and a fixed tie-break chain:

 1. remainder, larger first (ties within RemainderTolerance)
 2. population, smaller first
 3. state name, lexicographic

# Running

	alloc, err := apportion.Run(table, apportion.AllocationParameters{
		Alpha:     0.5,
		HouseSize: 543,
		Floor:     1,
	})

# Errors

All failures wrap one of ErrInvalidInput, ErrInvalidParameter,
ErrInfeasibleFloor or ErrOverAllocation. Kind maps them to stable codes.
*/
package apportion
