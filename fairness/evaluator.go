// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fairness

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/danielhkuo/fair-seats/apportion"
)

const perMillion = 1_000_000

// StateRepresentation is one state's row in a Report
type StateRepresentation struct {
	State           string   `json:"state"`
	Population      int64    `json:"population"`
	Seats           int      `json:"seats"`
	Quota           float64  `json:"quota"`
	SeatShare       float64  `json:"seat_share"`
	PopulationShare float64  `json:"population_share"`
	SeatsPerMillion *float64 `json:"seats_per_million"` // nil when population is 0
	Elasticity      *float64 `json:"elasticity"`        // nil when population is 0
	BaselineSeats   *int     `json:"baseline_seats,omitempty"`
	SeatChange      *int     `json:"seat_change,omitempty"`
}

type ElasticitySummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
}

// Report holds the fairness metrics of one allocation. It is derived data:
// recomputed for every run and never mutated after Evaluate returns.
type Report struct {
	Year                  string                `json:"year"`
	Alpha                 float64               `json:"alpha"`
	HouseSize             int                   `json:"house_size"`
	Floor                 int                   `json:"floor"`
	TotalSeats            int                   `json:"total_seats"`
	TotalPopulation       int64                 `json:"total_population"`
	LHI                   float64               `json:"lhi"`
	Gini                  float64               `json:"gini"`
	UnweightedGini        float64               `json:"unweighted_gini"`
	MalapportionmentIndex float64               `json:"malapportionment_index"`
	Elasticity            ElasticitySummary     `json:"elasticity"`
	States                []StateRepresentation `json:"states"`
	ZeroPopulationStates  []string              `json:"zero_population_states,omitempty"`
	MRC                   *float64              `json:"mrc,omitempty"`

	// Baseline marks a report on the table's existing seats rather than a
	// computed allocation.
	Baseline bool `json:"baseline,omitempty"`
}

// EvaluateBaseline scores the table's existing seats with the same metrics
// as a computed allocation. Every state must carry baseline seats.
func EvaluateBaseline(table apportion.PopulationTable) (Report, error) {
	alloc, err := apportion.BaselineAllocation(table)
	if err != nil {
		return Report{}, err
	}
	rep, err := Evaluate(alloc, table)
	if err != nil {
		return Report{}, err
	}
	rep.Baseline = true
	return rep, nil
}

// SeatsPerMillion returns the marginal representation table, zero-population
// states excluded.
func (r Report) SeatsPerMillion() map[string]float64 {
	m := make(map[string]float64, len(r.States))
	for _, s := range r.States {
		if s.SeatsPerMillion != nil {
			m[s.State] = *s.SeatsPerMillion
		}
	}
	return m
}

// Evaluate computes the fairness report for alloc. The allocation must cover
// exactly the states in table.
func Evaluate(alloc apportion.Allocation, table apportion.PopulationTable) (Report, error) {
	if table.Len() == 0 {
		return Report{}, fmt.Errorf("%w: population table is empty", apportion.ErrInvalidInput)
	}

	seats := make(map[string]apportion.SeatRow, len(alloc.Rows))
	for _, r := range alloc.Rows {
		if _, dup := seats[r.State]; dup {
			return Report{}, fmt.Errorf("%w: state %q appears twice in allocation", apportion.ErrInvalidInput, r.State)
		}
		if r.Seats < 0 {
			return Report{}, fmt.Errorf("%w: state %q has negative seats %d", apportion.ErrInvalidInput, r.State, r.Seats)
		}
		if _, ok := table.Lookup(r.State); !ok {
			return Report{}, fmt.Errorf("%w: allocated state %q not in population table", apportion.ErrInvalidInput, r.State)
		}
		seats[r.State] = r
	}

	totalSeats := alloc.Total()
	if totalSeats == 0 {
		return Report{}, fmt.Errorf("%w: allocation has no seats", apportion.ErrInvalidInput)
	}

	totalPop := table.TotalPopulation()
	S := float64(totalSeats)
	P := float64(totalPop)

	report := Report{
		Year:            table.Year(),
		Alpha:           alloc.Params.Alpha,
		HouseSize:       alloc.Params.HouseSize,
		Floor:           alloc.Params.Floor,
		TotalSeats:      totalSeats,
		TotalPopulation: totalPop,
	}

	var lhiSum, miSum float64
	var elasticities []float64
	var ratios, weights []float64

	for _, st := range table.States() {
		row, ok := seats[st.Name]
		if !ok {
			return Report{}, fmt.Errorf("%w: state %q missing from allocation", apportion.ErrInvalidInput, st.Name)
		}

		rep := StateRepresentation{
			State:           st.Name,
			Population:      st.Population,
			Seats:           row.Seats,
			Quota:           row.Quota,
			SeatShare:       float64(row.Seats) / S,
			PopulationShare: float64(st.Population) / P,
		}
		lhiSum += math.Abs(rep.SeatShare - rep.PopulationShare)

		if st.BaselineSeats != nil {
			baseline := *st.BaselineSeats
			change := row.Seats - baseline
			rep.BaselineSeats = &baseline
			rep.SeatChange = &change
		}

		if st.Population == 0 {
			report.ZeroPopulationStates = append(report.ZeroPopulationStates, st.Name)
			report.States = append(report.States, rep)
			continue
		}

		pop := float64(st.Population)
		spm := float64(row.Seats) / pop * perMillion
		elasticity := rep.SeatShare / rep.PopulationShare
		rep.SeatsPerMillion = &spm
		rep.Elasticity = &elasticity

		miSum += math.Abs(float64(row.Seats)/pop - S/P)
		elasticities = append(elasticities, elasticity)
		ratios = append(ratios, spm)
		weights = append(weights, rep.PopulationShare)

		report.States = append(report.States, rep)
	}

	report.LHI = 0.5 * lhiSum
	report.MalapportionmentIndex = 0.5 * miSum * perMillion
	report.Gini = weightedGini(ratios, weights)
	report.UnweightedGini = gini(ratios)
	report.Elasticity = summarize(elasticities)

	return report, nil
}

// weightedGini is Σi Σj wi wj |xi - xj| / 2μ, with weights renormalised to
// sum to 1 and μ the weighted mean of x.
func weightedGini(x, w []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	var wSum float64
	for _, v := range w {
		wSum += v
	}
	if wSum == 0 {
		return 0
	}

	var mu float64
	for i := range x {
		mu += w[i] / wSum * x[i]
	}
	if mu == 0 {
		return 0
	}

	var diff float64
	for i := range x {
		wi := w[i] / wSum
		for j := range x {
			diff += wi * (w[j] / wSum) * math.Abs(x[i]-x[j])
		}
	}

	return diff / (2 * mu)
}

// gini is the unweighted Gini coefficient of non-negative values.
func gini(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	var sum, ranked float64
	for i, v := range sorted {
		sum += v
		ranked += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}

	g := 2*ranked/(float64(n)*sum) - float64(n+1)/float64(n)
	if g < 0 {
		return 0
	}
	return g
}

func summarize(values []float64) ElasticitySummary {
	if len(values) == 0 {
		return ElasticitySummary{}
	}

	data := stats.Float64Data(values)
	var s ElasticitySummary
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.P10, _ = stats.Percentile(data, 10)
	s.P90, _ = stats.Percentile(data, 90)
	return s
}
