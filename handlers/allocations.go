// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/auth"
	"github.com/danielhkuo/fair-seats/cliparse"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/fairness"
	"github.com/danielhkuo/fair-seats/middleware"
	"github.com/danielhkuo/fair-seats/models"
)

type AllocationHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewAllocationHandler(store *db.Store, cfg cliparse.Config) *AllocationHandler {
	return &AllocationHandler{store: store, cfg: cfg}
}

// CreateAllocation handles POST /allocations
func (h *AllocationHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req models.AllocateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	table, err := buildTable(req.Year, req.States)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	floor := h.cfg.DefaultFloor
	if req.Floor != nil {
		floor = *req.Floor
	}
	scenario := cycle.Scenario{
		Table: table,
		Params: apportion.AllocationParameters{
			Alpha:     req.Alpha,
			HouseSize: req.HouseSize,
			Floor:     floor,
		},
	}

	res := cycle.Compute(scenario)
	if !res.OK() {
		writeDomainError(w, res.Err)
		return
	}

	if req.CompareToProportional && !scenario.Params.Proportional() {
		refAlloc, err := apportion.Proportional(table, req.HouseSize, floor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		ref, err := fairness.Evaluate(refAlloc, table)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if res.Report, err = res.Report.WithMRC(ref); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	runID := auth.NewRunID()
	rec := recordFromResult(runID, "", res)
	if err := h.store.SaveRun(rec); err != nil {
		writeStoreError(w, err, runID)
		return
	}

	slog.Info("allocation created",
		"run_id", runID,
		"year", rec.Year,
		"alpha", rec.Params.Alpha,
		"house_size", rec.Params.HouseSize,
		"lhi", rec.Report.LHI,
	)

	resp := runResponse(rec)
	resp.AdminKey = auth.GenerateAdminKey(runID, h.cfg.AdminKeySalt)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}
