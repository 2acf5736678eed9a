// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/fairness"
)

var (
	AllocationHeader     = []string{"state", "population", "alpha", "seats", "quota"}
	IndicatorsHeader     = []string{"year", "alpha", "house_size", "allocation", "lhi", "gini", "unweighted_gini", "mi", "mean_elasticity", "median_elasticity", "mrc"}
	RepresentationHeader = []string{"year", "alpha", "house_size", "state", "population", "seats", "quota",
		"seats_per_million", "seat_share", "population_share", "elasticity", "baseline_seats", "seat_change", "allocation"}
)

// AllocationFileName names an allocation table the way the annexure
// directory expects: alloc_proportional_543.csv, alloc_dp_alpha_0.8_543.csv.
func AllocationFileName(p apportion.AllocationParameters) string {
	if p.Proportional() {
		return fmt.Sprintf("alloc_proportional_%d.csv", p.HouseSize)
	}
	return fmt.Sprintf("alloc_dp_alpha_%s_%d.csv", formatFloat(p.Alpha), p.HouseSize)
}

// WriteAllocationCSV writes one row per state, sorted by name.
func WriteAllocationCSV(w io.Writer, alloc apportion.Allocation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AllocationHeader); err != nil {
		return err
	}
	alpha := formatFloat(alloc.Params.Alpha)
	for _, r := range alloc.Rows {
		if err := cw.Write([]string{
			r.State,
			strconv.FormatInt(r.Population, 10),
			alpha,
			strconv.Itoa(r.Seats),
			formatFloat(r.Quota),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteIndicatorsCSV writes one summary row per report.
func WriteIndicatorsCSV(w io.Writer, reports []fairness.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(IndicatorsHeader); err != nil {
		return err
	}
	for _, r := range reports {
		if err := cw.Write(indicatorRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRepresentationCSV writes the per-state table of every report, one
// block per report in the given order.
func WriteRepresentationCSV(w io.Writer, reports []fairness.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RepresentationHeader); err != nil {
		return err
	}
	for _, r := range reports {
		for _, s := range r.States {
			if err := cw.Write(representationRow(r, s)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func indicatorRow(r fairness.Report) []string {
	return []string{
		r.Year,
		formatFloat(r.Alpha),
		strconv.Itoa(r.HouseSize),
		allocationLabel(r),
		formatFloat(r.LHI),
		formatFloat(r.Gini),
		formatFloat(r.UnweightedGini),
		formatFloat(r.MalapportionmentIndex),
		formatFloat(r.Elasticity.Mean),
		formatFloat(r.Elasticity.Median),
		optionalFloat(r.MRC),
	}
}

// allocationLabel tells existing seats apart from computed allocations.
func allocationLabel(r fairness.Report) string {
	switch {
	case r.Baseline:
		return "baseline"
	case r.Alpha == 1:
		return "proportional"
	default:
		return "degressive"
	}
}

func representationRow(r fairness.Report, s fairness.StateRepresentation) []string {
	return []string{
		r.Year,
		formatFloat(r.Alpha),
		strconv.Itoa(r.HouseSize),
		s.State,
		strconv.FormatInt(s.Population, 10),
		strconv.Itoa(s.Seats),
		formatFloat(s.Quota),
		optionalFloat(s.SeatsPerMillion),
		formatFloat(s.SeatShare),
		formatFloat(s.PopulationShare),
		optionalFloat(s.Elasticity),
		optionalInt(s.BaselineSeats),
		optionalInt(s.SeatChange),
		allocationLabel(r),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
