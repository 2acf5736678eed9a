// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cycle runs allocations across many projection years, alphas, and
house sizes.

Each Scenario is an independent unit: one immutable PopulationTable and one
AllocationParameters value. Units share nothing, so the Runner evaluates
them in parallel with a bounded number of workers:

	scenarios := cycle.Expand(tables, []int{543, 888}, apportion.StandardAlphas, 1)
	results, summary := cycle.Runner{Workers: 4, CompareToProportional: true}.Run(ctx, scenarios)

A failing unit never stops the batch. Its error stays on its Result and is
listed in the Summary. Cancelling the context marks units that have not
started as skipped.
*/
package cycle
