// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the fair-seats API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health and metrics:

	GET /health   - Database reachability
	GET /metrics  - Prometheus exposition

Computation:

	POST /allocations - Allocate one (year, alpha, house size, floor) and store it
	POST /batches     - Sweep years x house sizes x alphas, optionally storing runs

Stored runs:

	GET    /runs       - List runs (?year=, ?limit=)
	GET    /runs/{id}  - Full run with seats and report
	DELETE /runs/{id}  - Delete (requires X-Admin-Key)

# Handler Initialization

The router creates handler instances with dependency injection:

	allocationHandler := handlers.NewAllocationHandler(store, cfg)
	batchHandler := handlers.NewBatchHandler(store, cfg)
	runsHandler := handlers.NewRunsHandler(store, cfg)

All handlers receive the run store and configuration. CORS and request
metrics wrap the whole mux in main.
*/
package router
