// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/fairness"
	"github.com/danielhkuo/fair-seats/metrics"
)

// KindSkipped marks units not run because the batch was cancelled
const KindSkipped = "skipped"

// Scenario is one (year, alpha, house size, floor) unit of work.
type Scenario struct {
	Table  apportion.PopulationTable
	Params apportion.AllocationParameters
}

func (s Scenario) Year() string { return s.Table.Year() }

func (s Scenario) String() string {
	return fmt.Sprintf("year=%s %s", s.Table.Year(), s.Params)
}

// Result is the outcome of one Scenario. Exactly one of Err and the
// computed fields is meaningful.
type Result struct {
	Scenario    Scenario
	Allocation  apportion.Allocation
	Report      fairness.Report
	Fingerprint string
	Err         error
}

func (r Result) OK() bool { return r.Err == nil }

// Kind classifies the result's error.
func (r Result) Kind() string {
	if r.Err == nil {
		return ""
	}
	if errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded) {
		return KindSkipped
	}
	return apportion.Kind(r.Err)
}

type Failure struct {
	Year      string  `json:"year"`
	Alpha     float64 `json:"alpha"`
	HouseSize int     `json:"house_size"`
	Floor     int     `json:"floor"`
	Kind      string  `json:"kind"`
	Error     string  `json:"error"`
}

type Summary struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Runner evaluates scenarios. The zero value runs one unit at a time.
type Runner struct {
	Workers int

	// CompareToProportional attaches the mean relative change against the
	// alpha = 1 result with the same table, house size, and floor.
	CompareToProportional bool
}

// Compute allocates and evaluates a single scenario.
func Compute(s Scenario) Result {
	start := time.Now()
	res := Result{Scenario: s}

	alloc, err := apportion.Run(s.Table, s.Params)
	if err == nil {
		res.Allocation = alloc
		res.Report, err = fairness.Evaluate(alloc, s.Table)
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", s, err)
		metrics.AllocationsTotal.WithLabelValues(apportion.Kind(err)).Inc()
		return res
	}

	res.Fingerprint = apportion.Fingerprint(s.Table, alloc)
	metrics.AllocationsTotal.WithLabelValues("ok").Inc()
	metrics.AllocationDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	return res
}

// Run evaluates every scenario and returns results in scenario order.
func (r Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, Summary) {
	results := make([]Result, len(scenarios))

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Scenario: s, Err: fmt.Errorf("%s: %w", s, err)}
				return nil
			}
			results[i] = Compute(s)
			return nil
		})
	}
	_ = g.Wait()

	if r.CompareToProportional {
		attachMRC(results)
	}

	summary := Summarize(results)
	metrics.BatchesTotal.Inc()
	metrics.BatchFailuresTotal.Add(float64(summary.Failed))

	for _, f := range summary.Failures {
		slog.Warn("allocation unit failed",
			"year", f.Year,
			"alpha", f.Alpha,
			"house_size", f.HouseSize,
			"kind", f.Kind,
			"error", f.Error,
		)
	}
	slog.Info("batch completed",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)

	return results, summary
}

// Summarize tallies results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		if res.OK() {
			s.Succeeded++
			continue
		}
		s.Failed++
		s.Failures = append(s.Failures, Failure{
			Year:      res.Scenario.Year(),
			Alpha:     res.Scenario.Params.Alpha,
			HouseSize: res.Scenario.Params.HouseSize,
			Floor:     res.Scenario.Params.Floor,
			Kind:      res.Kind(),
			Error:     res.Err.Error(),
		})
	}
	return s
}

// referenceKey identifies the table by content, so two tables that share a
// year label never share a reference.
type referenceKey struct {
	table string
	house int
	floor int
}

func keyOf(s Scenario) referenceKey {
	return referenceKey{s.Table.Digest(), s.Params.HouseSize, s.Params.Floor}
}

func attachMRC(results []Result) {
	refs := make(map[referenceKey]fairness.Report)
	for _, res := range results {
		if res.OK() && res.Scenario.Params.Proportional() {
			refs[keyOf(res.Scenario)] = res.Report
		}
	}

	for i, res := range results {
		if !res.OK() || res.Scenario.Params.Proportional() {
			continue
		}
		ref, ok := refs[keyOf(res.Scenario)]
		if !ok {
			continue
		}
		withMRC, err := res.Report.WithMRC(ref)
		if err != nil {
			slog.Warn("mean relative change unavailable", "scenario", res.Scenario.String(), "error", err)
			continue
		}
		results[i].Report = withMRC
	}
}

// Expand builds the cartesian product of tables, house sizes, and alphas in
// that nesting order.
func Expand(tables []apportion.PopulationTable, houseSizes []int, alphas []float64, floor int) []Scenario {
	scenarios := make([]Scenario, 0, len(tables)*len(houseSizes)*len(alphas))
	for _, t := range tables {
		for _, h := range houseSizes {
			for _, a := range alphas {
				scenarios = append(scenarios, Scenario{
					Table:  t,
					Params: apportion.AllocationParameters{Alpha: a, HouseSize: h, Floor: floor},
				})
			}
		}
	}
	return scenarios
}
