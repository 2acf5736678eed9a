// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/fairness"
	"github.com/danielhkuo/fair-seats/popdata"
)

type allocateOptions struct {
	inFile     string
	year       string
	seats      int
	alphas     []float64
	floor      int
	outDir     string
	xlsx       bool
	workers    int
	scale      float64
	forceScale bool
	canon      string
}

func newAllocateCmd() *cobra.Command {
	var opts allocateOptions

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate seats for one population file",
		Long: `Allocate seats for every alpha at one house size. The proportional
allocation (alpha = 1) is always included and serves as the reference for
the mean relative change. When the file has a seat column, the existing
seats are scored too and lead the indicator table as a baseline row.

Writes alloc_proportional_<H>.csv, alloc_dp_alpha_<a>_<H>.csv,
fairness_indicators.csv, and representation.csv into --out, plus
annexures.xlsx with --xlsx.

Example: apportion allocate --infile pop_2026.csv --seats 543 --alpha 0.5,0.8 --out out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.inFile, "infile", "", "Population CSV")
	cmd.Flags().StringVar(&opts.year, "year", "", "Year label (default: input file name)")
	cmd.Flags().IntVar(&opts.seats, "seats", 543, "House size")
	cmd.Flags().Float64SliceVar(&opts.alphas, "alpha", apportion.StandardAlphas, "Degressivity exponents in (0, 1]")
	cmd.Flags().IntVar(&opts.floor, "floor", apportion.DefaultFloor, "Minimum seats per state")
	cmd.Flags().StringVar(&opts.outDir, "out", "out", "Output directory")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "Also write annexures.xlsx")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "Parallel allocations")
	cmd.Flags().Float64Var(&opts.scale, "scale", popdata.DefaultScale, "Multiplier for populations given in crores")
	cmd.Flags().BoolVar(&opts.forceScale, "force-scale", false, "Always apply --scale")
	cmd.Flags().StringVar(&opts.canon, "canon", "", "Canonical state name CSV")
	_ = cmd.MarkFlagRequired("infile")

	return cmd
}

func runAllocate(ctx context.Context, out io.Writer, opts allocateOptions) error {
	popOpts := popdata.Options{Scale: opts.scale, ForceScale: opts.forceScale}
	if opts.canon != "" {
		canon, err := loadCanonical(opts.canon)
		if err != nil {
			return err
		}
		popOpts.Canonical = canon
	}

	ds, err := popdata.Load(opts.inFile, popOpts)
	if err != nil {
		return err
	}
	if ds.Scaled {
		slog.Info("populations scaled", "file", opts.inFile, "factor", ds.Scale)
	}

	year := opts.year
	if year == "" {
		year = strings.TrimSuffix(filepath.Base(opts.inFile), filepath.Ext(opts.inFile))
	}
	table, err := ds.Table(year)
	if err != nil {
		return err
	}

	var baselines []fairness.Report
	if ds.HasSeats() {
		rep, err := fairness.EvaluateBaseline(table)
		if err != nil {
			return err
		}
		baselines = append(baselines, rep)
	}

	scenarios := cycle.Expand([]apportion.PopulationTable{table}, []int{opts.seats}, withProportional(opts.alphas), opts.floor)
	results, summary := cycle.Runner{Workers: opts.workers, CompareToProportional: true}.Run(ctx, scenarios)

	if err := writeResults(opts.outDir, baselines, results, opts.xlsx, false); err != nil {
		return err
	}
	var baseline *fairness.Report
	if len(baselines) > 0 {
		baseline = &baselines[0]
	}
	printResults(out, table, baseline, results)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d allocations failed", summary.Failed, summary.Total)
	}
	return nil
}

// withProportional appends alpha = 1 when it is missing
func withProportional(alphas []float64) []float64 {
	if slices.Contains(alphas, 1) {
		return alphas
	}
	return append(slices.Clone(alphas), 1)
}

func loadCanonical(path string) (map[string]string, error) {
	canon, ok, err := popdata.LoadCanonicalMap(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: canonical map %s not found", apportion.ErrInvalidInput, path)
	}
	return canon, nil
}
