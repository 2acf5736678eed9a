// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/export"
	"github.com/danielhkuo/fair-seats/fairness"
)

const (
	indicatorsFile     = "fairness_indicators.csv"
	representationFile = "representation.csv"
	workbookFile       = "annexures.xlsx"
)

// writeResults writes every successful allocation plus the combined
// indicator and representation tables. Baseline reports lead both tables.
// With byYear, allocation files go into one subdirectory per year.
func writeResults(outDir string, baselines []fairness.Report, results []cycle.Result, xlsx, byYear bool) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reports := slices.Clone(baselines)
	for _, res := range results {
		if !res.OK() {
			continue
		}
		dir := outDir
		if byYear {
			dir = filepath.Join(outDir, res.Scenario.Year())
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		path := filepath.Join(dir, export.AllocationFileName(res.Allocation.Params))
		if err := writeFile(path, func(w io.Writer) error {
			return export.WriteAllocationCSV(w, res.Allocation)
		}); err != nil {
			return err
		}
		reports = append(reports, res.Report)
	}

	if err := writeFile(filepath.Join(outDir, indicatorsFile), func(w io.Writer) error {
		return export.WriteIndicatorsCSV(w, reports)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, representationFile), func(w io.Writer) error {
		return export.WriteRepresentationCSV(w, reports)
	}); err != nil {
		return err
	}

	if xlsx {
		path := filepath.Join(outDir, workbookFile)
		if err := export.WriteWorkbook(path, results); err != nil {
			return err
		}
		slog.Info("workbook written", "path", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	slog.Debug("file written", "path", path)
	return nil
}

func printResults(out io.Writer, table apportion.PopulationTable, baseline *fairness.Report, results []cycle.Result) {
	fmt.Fprintf(out, "year %s: %d states, population %s\n",
		table.Year(), table.Len(), humanize.Comma(table.TotalPopulation()))

	if baseline != nil {
		fmt.Fprintf(out, "  %-28s LHI %.4f  Gini %.4f  MI %.4f\n",
			fmt.Sprintf("baseline H=%d", baseline.HouseSize), baseline.LHI, baseline.Gini, baseline.MalapportionmentIndex)
	}

	for _, res := range results {
		if !res.OK() {
			fmt.Fprintf(out, "  %-28s FAILED %s\n", res.Scenario.Params, res.Kind())
			continue
		}
		r := res.Report
		line := fmt.Sprintf("  %-28s LHI %.4f  Gini %.4f  MI %.4f", res.Scenario.Params, r.LHI, r.Gini, r.MalapportionmentIndex)
		if r.MRC != nil {
			line += fmt.Sprintf("  MRC %.4f", *r.MRC)
		}
		fmt.Fprintln(out, line)
	}
}

func printSummary(out io.Writer, s cycle.Summary) {
	fmt.Fprintf(out, "%d allocations: %d succeeded, %d failed\n", s.Total, s.Succeeded, s.Failed)
	for _, f := range s.Failures {
		fmt.Fprintf(out, "  year %s alpha=%g H=%d floor=%d: %s\n", f.Year, f.Alpha, f.HouseSize, f.Floor, f.Error)
	}
}
