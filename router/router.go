// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/fair-seats/cliparse"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/handlers"
	"github.com/danielhkuo/fair-seats/metrics"
	"github.com/danielhkuo/fair-seats/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	allocationHandler := handlers.NewAllocationHandler(store, cfg)
	batchHandler := handlers.NewBatchHandler(store, cfg)
	runsHandler := handlers.NewRunsHandler(store, cfg)

	// Health and metrics
	mux.HandleFunc("GET /health", runsHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Computation
	mux.HandleFunc("POST /allocations", middleware.WithLogging(allocationHandler.CreateAllocation))
	mux.HandleFunc("POST /batches", middleware.WithLogging(batchHandler.RunBatch))

	// Stored runs
	mux.HandleFunc("GET /runs", middleware.WithLogging(runsHandler.ListRuns))
	mux.HandleFunc("GET /runs/{id}", middleware.WithLogging(runsHandler.GetRun))
	mux.HandleFunc("DELETE /runs/{id}", middleware.WithLogging(runsHandler.DeleteRun))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		w.Write([]byte("fair-seats API v1"))
	})

	return mux
}
