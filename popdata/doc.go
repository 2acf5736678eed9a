// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package popdata loads state population tables from CSV files.

Column detection is by header name, case-insensitive:

	state:      state, state_name, region, unit
	population: population, pop, population_total, total_population, persons
	seats:      baseline_seats, seats (optional)

Files without a recognised header fall back to the first non-numeric column
for names and the numeric column with the largest total for populations.

Projections are often published in crores. When the mean population is
below one million, or Options.ForceScale is set, values are multiplied by
Options.Scale (default 1e7) and rounded to whole persons. A scale of 1
turns this off.

	canon, _, err := popdata.LoadCanonicalMap("states_canonical.csv")
	ds, err := popdata.Load("pop_2026.csv", popdata.Options{Canonical: canon})
	table, err := ds.Table("2026")

Check reports softer problems for the validate command.
*/
package popdata
