// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/middleware"
	"github.com/danielhkuo/fair-seats/models"
)

// buildTable converts request states into a PopulationTable. A state with
// no population field is rejected instead of being read as zero.
func buildTable(year string, inputs []models.StateInput) (apportion.PopulationTable, error) {
	states := make([]apportion.State, 0, len(inputs))
	for i, in := range inputs {
		if in.Population == nil {
			return apportion.PopulationTable{}, fmt.Errorf("%w: states[%d] (%q): population is required",
				apportion.ErrInvalidInput, i, in.Name)
		}
		states = append(states, apportion.State{
			Name:          in.Name,
			Population:    *in.Population,
			BaselineSeats: in.BaselineSeats,
		})
	}
	return apportion.NewPopulationTable(year, states)
}

// writeDomainError maps the apportion error taxonomy to 422 and anything
// else to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := apportion.Kind(err)
	if kind == apportion.KindInternal {
		slog.Error("allocation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Allocation failed")
		return
	}
	middleware.KindErrorResponse(w, http.StatusUnprocessableEntity, kind, err.Error())
}

// writeStoreError maps store errors to 404 or 500.
func writeStoreError(w http.ResponseWriter, err error, runID string) {
	if errors.Is(err, db.ErrRunNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	slog.Error("run store failed", "run_id", runID, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

func recordFromResult(runID, batchID string, res cycle.Result) db.RunRecord {
	return db.RunRecord{
		ID:              runID,
		BatchID:         batchID,
		Year:            res.Scenario.Year(),
		Params:          res.Scenario.Params,
		TotalPopulation: res.Scenario.Table.TotalPopulation(),
		Fingerprint:     res.Fingerprint,
		Report:          res.Report,
		Rows:            res.Allocation.Rows,
		CreatedAt:       time.Now().UTC(),
	}
}

func runResponse(rec db.RunRecord) models.RunResponse {
	return models.RunResponse{
		RunID:       rec.ID,
		BatchID:     rec.BatchID,
		Year:        rec.Year,
		Params:      rec.Params,
		Fingerprint: rec.Fingerprint,
		Seats:       rec.Rows,
		Report:      rec.Report,
		CreatedAt:   rec.CreatedAt,
	}
}

func runSummary(rec db.RunRecord) models.RunSummary {
	return models.RunSummary{
		RunID:           rec.ID,
		BatchID:         rec.BatchID,
		Year:            rec.Year,
		Alpha:           rec.Params.Alpha,
		HouseSize:       rec.Params.HouseSize,
		Floor:           rec.Params.Floor,
		TotalPopulation: rec.TotalPopulation,
		LHI:             rec.Report.LHI,
		Gini:            rec.Report.Gini,
		Fingerprint:     rec.Fingerprint,
		CreatedAt:       rec.CreatedAt,
	}
}
