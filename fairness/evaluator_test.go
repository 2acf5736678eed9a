// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fairness

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/danielhkuo/fair-seats/apportion"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Abs(b))
}

func buildTable(t *testing.T, pops map[string]int64) apportion.PopulationTable {
	t.Helper()
	states := make([]apportion.State, 0, len(pops))
	for name, p := range pops {
		states = append(states, apportion.State{Name: name, Population: p})
	}
	table, err := apportion.NewPopulationTable("test", states)
	if err != nil {
		t.Fatalf("NewPopulationTable failed: %v", err)
	}
	return table
}

func buildAllocation(seats map[string]int) apportion.Allocation {
	alloc := apportion.Allocation{Year: "test"}
	total := 0
	for name, s := range seats {
		alloc.Rows = append(alloc.Rows, apportion.SeatRow{State: name, Seats: s, Quota: float64(s)})
		total += s
	}
	alloc.Params = apportion.AllocationParameters{Alpha: 1, HouseSize: total}
	return alloc
}

func TestEvaluate_ThreeStateExample(t *testing.T) {
	table := buildTable(t, map[string]int64{"s1": 10_000_000, "s2": 5_000_000, "s3": 1_000_000})
	alloc := buildAllocation(map[string]int{"s1": 8, "s2": 6, "s3": 2})

	report, err := Evaluate(alloc, table)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"LHI", report.LHI, 0.125},
		{"Gini", report.Gini, 0.140625},
		{"UnweightedGini", report.UnweightedGini, 0.2},
		{"MalapportionmentIndex", report.MalapportionmentIndex, 0.7},
		{"ElasticityMean", report.Elasticity.Mean, 4.0 / 3.0},
		{"ElasticityMedian", report.Elasticity.Median, 1.2},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	spm := report.SeatsPerMillion()
	wantSPM := map[string]float64{"s1": 0.8, "s2": 1.2, "s3": 2.0}
	for name, want := range wantSPM {
		if !almostEqual(spm[name], want) {
			t.Errorf("seats per million for %s = %v, want %v", name, spm[name], want)
		}
	}

	if report.TotalSeats != 16 || report.TotalPopulation != 16_000_000 {
		t.Errorf("unexpected totals: %d seats, %d people", report.TotalSeats, report.TotalPopulation)
	}
}

func TestEvaluate_PerfectProportionality(t *testing.T) {
	table := buildTable(t, map[string]int64{"A": 50, "B": 50})
	alloc := buildAllocation(map[string]int{"A": 5, "B": 5})

	report, err := Evaluate(alloc, table)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.LHI != 0 {
		t.Errorf("expected LHI 0, got %v", report.LHI)
	}
	if report.Gini != 0 {
		t.Errorf("expected Gini 0, got %v", report.Gini)
	}
	if report.UnweightedGini > tolerance {
		t.Errorf("expected unweighted Gini 0, got %v", report.UnweightedGini)
	}
}

func TestEvaluate_SingleState(t *testing.T) {
	table := buildTable(t, map[string]int64{"Delhi": 16_787_941})
	alloc := buildAllocation(map[string]int{"Delhi": 7})

	report, err := Evaluate(alloc, table)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if report.LHI != 0 || report.Gini != 0 || report.UnweightedGini != 0 {
		t.Errorf("expected all-zero metrics, got LHI=%v Gini=%v UG=%v", report.LHI, report.Gini, report.UnweightedGini)
	}
}

func TestEvaluate_ZeroPopulationState(t *testing.T) {
	table := buildTable(t, map[string]int64{"A": 100, "B": 300, "C": 0})
	alloc := buildAllocation(map[string]int{"A": 3, "B": 3, "C": 1})

	report, err := Evaluate(alloc, table)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(report.ZeroPopulationStates) != 1 || report.ZeroPopulationStates[0] != "C" {
		t.Errorf("expected C flagged, got %v", report.ZeroPopulationStates)
	}
	if !almostEqual(report.LHI, 0.32142857142857145) {
		t.Errorf("LHI = %v, want 9/28", report.LHI)
	}
	if !almostEqual(report.Gini, 0.25) {
		t.Errorf("Gini = %v, want 0.25", report.Gini)
	}

	for _, s := range report.States {
		if s.State == "C" && (s.SeatsPerMillion != nil || s.Elasticity != nil) {
			t.Error("expected no ratio for zero-population state")
		}
	}
	if _, ok := report.SeatsPerMillion()["C"]; ok {
		t.Error("zero-population state must not appear in seats per million")
	}
}

func TestEvaluate_BaselineSeatChange(t *testing.T) {
	four, two := 4, 2
	table, err := apportion.NewPopulationTable("2026", []apportion.State{
		{Name: "A", Population: 600, BaselineSeats: &four},
		{Name: "B", Population: 400, BaselineSeats: &two},
	})
	if err != nil {
		t.Fatalf("NewPopulationTable failed: %v", err)
	}

	alloc, err := apportion.Run(table, apportion.AllocationParameters{Alpha: 1, HouseSize: 5})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	report, err := Evaluate(alloc, table)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	for _, s := range report.States {
		if s.SeatChange == nil {
			t.Fatalf("expected seat change for %s", s.State)
		}
		switch s.State {
		case "A":
			if *s.SeatChange != -1 {
				t.Errorf("A: expected change -1, got %d", *s.SeatChange)
			}
		case "B":
			if *s.SeatChange != 0 {
				t.Errorf("B: expected change 0, got %d", *s.SeatChange)
			}
		}
	}
}

func TestEvaluateBaseline(t *testing.T) {
	four, two := 4, 2
	table, err := apportion.NewPopulationTable("2024", []apportion.State{
		{Name: "A", Population: 600, BaselineSeats: &four},
		{Name: "B", Population: 400, BaselineSeats: &two},
	})
	if err != nil {
		t.Fatalf("NewPopulationTable failed: %v", err)
	}

	report, err := EvaluateBaseline(table)
	if err != nil {
		t.Fatalf("EvaluateBaseline failed: %v", err)
	}
	if !report.Baseline {
		t.Error("expected report to be marked as baseline")
	}
	if report.TotalSeats != 6 || report.HouseSize != 6 {
		t.Errorf("expected 6 seats, got total %d house %d", report.TotalSeats, report.HouseSize)
	}
	if !almostEqual(report.LHI, 1.0/15) {
		t.Errorf("expected LHI 1/15, got %v", report.LHI)
	}
	for _, s := range report.States {
		if s.SeatChange == nil || *s.SeatChange != 0 {
			t.Errorf("%s: baseline against itself should show no change, got %v", s.State, s.SeatChange)
		}
	}

	partial := buildTable(t, map[string]int64{"A": 600, "B": 400})
	if _, err := EvaluateBaseline(partial); !errors.Is(err, apportion.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without baseline seats, got %v", err)
	}
}

func TestEvaluate_Mismatches(t *testing.T) {
	table := buildTable(t, map[string]int64{"A": 100, "B": 100})

	tests := []struct {
		name  string
		alloc apportion.Allocation
	}{
		{"missing state", buildAllocation(map[string]int{"A": 2})},
		{"unknown state", buildAllocation(map[string]int{"A": 1, "B": 1, "Z": 1})},
		{"no seats", buildAllocation(map[string]int{"A": 0, "B": 0})},
		{"negative seats", buildAllocation(map[string]int{"A": 3, "B": -1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.alloc, table)
			if !errors.Is(err, apportion.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEvaluate_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 50; i++ {
		n := 2 + rng.IntN(30)
		pops := make(map[string]int64, n)
		for j := 0; j < n; j++ {
			pops[string(rune('A'+j))] = 1 + rng.Int64N(100_000_000)
		}
		table := buildTable(t, pops)

		alpha := 0.1 + 0.9*rng.Float64()
		alloc, err := apportion.Run(table, apportion.AllocationParameters{Alpha: alpha, HouseSize: 543})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		report, err := Evaluate(alloc, table)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}

		for _, m := range []struct {
			name string
			v    float64
		}{{"LHI", report.LHI}, {"Gini", report.Gini}, {"UnweightedGini", report.UnweightedGini}} {
			if m.v < 0 || m.v > 1 {
				t.Errorf("iteration %d: %s = %v out of [0, 1]", i, m.name, m.v)
			}
		}
	}
}

func TestGini(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 0},
		{"equal", []float64{2, 2, 2, 2}, 0},
		{"all zero", []float64{0, 0}, 0},
		{"one holds all", []float64{0, 0, 0, 4}, 0.75},
		{"three values", []float64{2.0, 0.8, 1.2}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gini(tt.data); !almostEqual(got, tt.want) {
				t.Errorf("gini(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestWeightedGini_EqualWeightsMatchesPairwiseForm(t *testing.T) {
	// With equal weights the weighted form is the mean-absolute-difference Gini.
	x := []float64{1, 2, 3, 4}
	w := []float64{1, 1, 1, 1}

	// mean |xi-xj| over all 16 pairs = 20/16, μ = 2.5
	want := (20.0 / 16.0) / (2 * 2.5)
	if got := weightedGini(x, w); !almostEqual(got, want) {
		t.Errorf("weightedGini = %v, want %v", got, want)
	}
}
