// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export writes allocation results as CSV annexures and an XLSX
workbook.

# CSV files

	alloc_proportional_543.csv      state,population,alpha,seats,quota
	alloc_dp_alpha_0.8_543.csv      same columns, one file per scenario
	fairness_indicators.csv         one row per scenario
	representation.csv              one row per state per scenario

AllocationFileName gives the per-scenario file name. Floats are written
with the shortest exact decimal form. Values that are undefined for a row,
such as the mean relative change of the proportional run or the seats per
million of a zero-population state, are left blank.

# Workbook

Workbook puts the same tables on the Allocations, Indicators, and
Representation sheets. Failed units go to a Failures sheet, which is
present only when at least one unit failed.

	results, _ := cycle.Runner{Workers: 4, CompareToProportional: true}.Run(ctx, scenarios)
	if err := export.WriteWorkbook("out/annexures.xlsx", results); err != nil {
		return err
	}
*/
package export
