// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/fair-seats/cycle"
)

const (
	SheetAllocations    = "Allocations"
	SheetIndicators     = "Indicators"
	SheetRepresentation = "Representation"
	SheetFailures       = "Failures"
)

var (
	workbookAllocationHeader = []string{"year", "alpha", "house_size", "floor", "state", "population", "quota", "remainder", "seats", "floor_raised"}
	failureHeader            = []string{"year", "alpha", "house_size", "floor", "kind", "error"}
)

// Workbook builds the annexure workbook for a batch. Successful results
// fill the Allocations, Indicators, and Representation sheets; a Failures
// sheet is added only when some unit failed.
func Workbook(results []cycle.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	sw := sheetWriter{f: f}
	sw.sheet(SheetAllocations, workbookAllocationHeader)
	for _, res := range results {
		if !res.OK() {
			continue
		}
		p := res.Allocation.Params
		for _, r := range res.Allocation.Rows {
			sw.row(res.Scenario.Year(), p.Alpha, p.HouseSize, p.Floor, r.State, r.Population, r.Quota, r.Remainder, r.Seats, r.FloorRaised)
		}
	}

	sw.sheet(SheetIndicators, IndicatorsHeader)
	for _, res := range results {
		if !res.OK() {
			continue
		}
		r := res.Report
		var mrc interface{}
		if r.MRC != nil {
			mrc = *r.MRC
		}
		sw.row(r.Year, r.Alpha, r.HouseSize, allocationLabel(r), r.LHI, r.Gini, r.UnweightedGini,
			r.MalapportionmentIndex, r.Elasticity.Mean, r.Elasticity.Median, mrc)
	}

	sw.sheet(SheetRepresentation, RepresentationHeader)
	for _, res := range results {
		if !res.OK() {
			continue
		}
		r := res.Report
		for _, s := range r.States {
			sw.row(r.Year, r.Alpha, r.HouseSize, s.State, s.Population, s.Seats, s.Quota,
				deref(s.SeatsPerMillion), s.SeatShare, s.PopulationShare, deref(s.Elasticity),
				deref(s.BaselineSeats), deref(s.SeatChange), allocationLabel(r))
		}
	}

	summary := cycle.Summarize(results)
	if summary.Failed > 0 {
		sw.sheet(SheetFailures, failureHeader)
		for _, fl := range summary.Failures {
			sw.row(fl.Year, fl.Alpha, fl.HouseSize, fl.Floor, fl.Kind, fl.Error)
		}
	}

	if sw.err != nil {
		f.Close()
		return nil, sw.err
	}

	// NewFile starts with Sheet1; drop it once the real sheets exist
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetAllocations); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, results []cycle.Result) error {
	f, err := Workbook(results)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter appends rows to the current sheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	name string
	next int
	err  error
}

func (w *sheetWriter) sheet(name string, header []string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("failed to create sheet %s: %w", name, err)
		return
	}
	w.name, w.next = name, 1

	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	w.row(values...)
}

func (w *sheetWriter) row(values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(w.name, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", w.name, w.next, err)
		return
	}
	w.next++
}

// deref turns a nil pointer into an empty cell.
func deref[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
