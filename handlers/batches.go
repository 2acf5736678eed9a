// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/auth"
	"github.com/danielhkuo/fair-seats/cliparse"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/middleware"
	"github.com/danielhkuo/fair-seats/models"
)

// MaxBatchScenarios bounds the work a single request may queue
const MaxBatchScenarios = 1000

type BatchHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewBatchHandler(store *db.Store, cfg cliparse.Config) *BatchHandler {
	return &BatchHandler{store: store, cfg: cfg}
}

// RunBatch handles POST /batches
// Failed units are reported in the summary and never abort the batch.
func (h *BatchHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Years) == 0 {
		writeDomainError(w, fmt.Errorf("%w: at least one year is required", apportion.ErrInvalidInput))
		return
	}

	tables := make([]apportion.PopulationTable, 0, len(req.Years))
	seen := make(map[string]bool, len(req.Years))
	for _, y := range req.Years {
		if seen[y.Year] {
			writeDomainError(w, fmt.Errorf("%w: year %q listed twice", apportion.ErrInvalidInput, y.Year))
			return
		}
		seen[y.Year] = true

		table, err := buildTable(y.Year, y.States)
		if err != nil {
			writeDomainError(w, fmt.Errorf("year %q: %w", y.Year, err))
			return
		}
		tables = append(tables, table)
	}

	alphas := req.Alphas
	if len(alphas) == 0 {
		alphas = apportion.StandardAlphas
	}
	houseSizes := req.HouseSizes
	if len(houseSizes) == 0 {
		houseSizes = apportion.StandardHouseSizes
	}
	floor := h.cfg.DefaultFloor
	if req.Floor != nil {
		floor = *req.Floor
	}

	scenarios := cycle.Expand(tables, houseSizes, alphas, floor)
	if len(scenarios) > MaxBatchScenarios {
		writeDomainError(w, fmt.Errorf("%w: batch has %d scenarios, limit is %d",
			apportion.ErrInvalidParameter, len(scenarios), MaxBatchScenarios))
		return
	}

	runner := cycle.Runner{Workers: h.cfg.Workers, CompareToProportional: true}
	results, summary := runner.Run(r.Context(), scenarios)

	batchID := auth.NewRunID()
	resp := models.BatchResponse{
		BatchID: batchID,
		Results: make([]models.BatchResult, 0, len(results)),
		Summary: summary,
	}

	failures := summary.Failures
	records := make([]db.RunRecord, 0, summary.Succeeded)
	for _, res := range results {
		if !res.OK() {
			f := failures[0]
			failures = failures[1:]
			resp.Results = append(resp.Results, models.BatchResult{Failure: &f})
			continue
		}

		rec := recordFromResult(auth.NewRunID(), batchID, res)
		records = append(records, rec)
		run := runResponse(rec)
		resp.Results = append(resp.Results, models.BatchResult{Run: &run})
	}

	// All or nothing: the batch key is issued only once every run is stored.
	if req.Persist {
		if err := h.store.SaveRuns(records); err != nil {
			slog.Error("batch store failed", "batch_id", batchID, "runs", len(records), "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.AdminKey = auth.GenerateAdminKey(batchID, h.cfg.AdminKeySalt)
	}

	slog.Info("batch served",
		"batch_id", batchID,
		"scenarios", summary.Total,
		"failed", summary.Failed,
		"persisted", req.Persist,
	)

	middleware.JSONResponse(w, http.StatusOK, resp)
}
