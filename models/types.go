// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/fairness"
)

// Request types

// Population is a pointer so a missing value can be told apart from zero.
type StateInput struct {
	Name          string `json:"name"`
	Population    *int64 `json:"population"`
	BaselineSeats *int   `json:"baseline_seats,omitempty"`
}

type AllocateRequest struct {
	Year      string       `json:"year"`
	Alpha     float64      `json:"alpha"`
	HouseSize int          `json:"house_size"`
	Floor     *int         `json:"floor,omitempty"` // server default when omitted
	States    []StateInput `json:"states"`

	// CompareToProportional also computes the alpha = 1 allocation and
	// attaches the mean relative change to the report.
	CompareToProportional bool `json:"compare_to_proportional,omitempty"`
}

type YearInput struct {
	Year   string       `json:"year"`
	States []StateInput `json:"states"`
}

type BatchRequest struct {
	Years      []YearInput `json:"years"`
	Alphas     []float64   `json:"alphas,omitempty"`      // defaults to the standard sweep
	HouseSizes []int       `json:"house_sizes,omitempty"` // defaults to 543 and 888
	Floor      *int        `json:"floor,omitempty"`
	Persist    bool        `json:"persist,omitempty"`
}

// Response types

type RunResponse struct {
	RunID       string                         `json:"run_id"`
	AdminKey    string                         `json:"admin_key,omitempty"`
	BatchID     string                         `json:"batch_id,omitempty"`
	Year        string                         `json:"year"`
	Params      apportion.AllocationParameters `json:"params"`
	Fingerprint string                         `json:"fingerprint"`
	Seats       []apportion.SeatRow            `json:"seats"`
	Report      fairness.Report                `json:"report"`
	CreatedAt   time.Time                      `json:"created_at"`
}

type RunSummary struct {
	RunID           string    `json:"run_id"`
	BatchID         string    `json:"batch_id,omitempty"`
	Year            string    `json:"year"`
	Alpha           float64   `json:"alpha"`
	HouseSize       int       `json:"house_size"`
	Floor           int       `json:"floor"`
	TotalPopulation int64     `json:"total_population"`
	LHI             float64   `json:"lhi"`
	Gini            float64   `json:"gini"`
	Fingerprint     string    `json:"fingerprint"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunSummary `json:"runs"`
}

// BatchResult is one scenario's outcome. Exactly one of Run and Failure is set.
type BatchResult struct {
	Run     *RunResponse   `json:"run,omitempty"`
	Failure *cycle.Failure `json:"failure,omitempty"`
}

type BatchResponse struct {
	BatchID  string        `json:"batch_id"`
	AdminKey string        `json:"admin_key,omitempty"`
	Results  []BatchResult `json:"results"`
	Summary  cycle.Summary `json:"summary"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}
