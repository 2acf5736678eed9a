// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/fair-seats/auth"
	"github.com/danielhkuo/fair-seats/cliparse"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/middleware"
	"github.com/danielhkuo/fair-seats/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type RunsHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewRunsHandler(store *db.Store, cfg cliparse.Config) *RunsHandler {
	return &RunsHandler{store: store, cfg: cfg}
}

// ListRuns handles GET /runs?year=&limit=
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	records, err := h.store.ListRuns(r.URL.Query().Get("year"), limit)
	if err != nil {
		writeStoreError(w, err, "")
		return
	}

	resp := models.ListRunsResponse{Runs: make([]models.RunSummary, 0, len(records))}
	for _, rec := range records {
		resp.Runs = append(resp.Runs, runSummary(rec))
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetRun handles GET /runs/{id}
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")
	if runID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	rec, err := h.store.GetRun(runID)
	if err != nil {
		writeStoreError(w, err, runID)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, runResponse(rec))
}

// DeleteRun handles DELETE /runs/{id}
// Requires the run's admin key, or the key of the batch that created it.
func (h *RunsHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")
	if runID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	// Look the run up first so a batch key can be checked against its batch
	rec, err := h.store.GetRun(runID)
	if err != nil {
		writeStoreError(w, err, runID)
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateRunKey(runID, rec.BatchID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := h.store.DeleteRun(runID); err != nil {
		writeStoreError(w, err, runID)
		return
	}

	slog.Info("run deleted", "run_id", runID)
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health
func (h *RunsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DB().PingContext(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "degraded",
			Database: "unreachable",
		})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok", Database: "ok"})
}
