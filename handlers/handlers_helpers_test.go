// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/models"
	"github.com/danielhkuo/fair-seats/testutil"
)

func stateInputs(states []apportion.State) []models.StateInput {
	inputs := make([]models.StateInput, len(states))
	for i, s := range states {
		pop := s.Population
		inputs[i] = models.StateInput{Name: s.Name, Population: &pop, BaselineSeats: s.BaselineSeats}
	}
	return inputs
}

func intPtr(n int) *int { return &n }

// createRun posts an allocation and returns the decoded response
func createRun(t *testing.T, h *AllocationHandler, req models.AllocateRequest) models.RunResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateAllocation(w, testutil.MakeRequest("POST", "/allocations", req, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RunResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func seatsByState(rows []apportion.SeatRow) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.State] = r.Seats
	}
	return m
}
