// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the fair-seats API.

# Handler Types

Each handler is a struct with run store and config dependencies:

  - AllocationHandler: single allocation runs
  - BatchHandler: cycle sweeps over years, house sizes, and alphas
  - RunsHandler: listing, fetching, and deleting stored runs, plus health

Handlers are created via constructor functions that accept *db.Store and Config:

	allocationHandler := handlers.NewAllocationHandler(store, cfg)

# Allocation

	POST /allocations → CreateAllocation (returns run and admin_key)

The request carries its own alpha, house size, and optional floor; nothing is
global. When the floor is omitted the configured DefaultFloor applies. With
compare_to_proportional set, the alpha = 1 allocation is computed alongside
and the report carries its mean relative change (mrc).

# Batches

	POST /batches → RunBatch

Scenarios run on a bounded worker pool (Config.Workers). A failing unit is
reported in the summary with its error kind and never aborts the rest.
Alphas and house sizes default to the standard sweep.

# Errors

Domain errors map to 422 with the taxonomy code in "kind":
invalid_input, invalid_parameter, infeasible_floor, over_allocation.
Malformed JSON is 400, missing runs are 404, storage failures are 500.

# Run Deletion

	DELETE /runs/{id} → DeleteRun

Requires the X-Admin-Key header holding the key returned when the run (or
the batch that created it) was submitted.
*/
package handlers
