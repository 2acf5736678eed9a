// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/scenario"
)

type batchOptions struct {
	scenarioFile string
	outDir       string
	workers      int
	floor        int
	xlsx         bool
}

func newBatchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every year, house size, and alpha in a scenario file",
		Long: `Run the cartesian product of years, house sizes, and alphas described
by a YAML scenario file. A failed unit is reported and the rest of the
batch still runs.

Allocation tables go to --out/<year>/. The indicator and representation
tables at the top of --out cover every successful unit.

Example: apportion batch --scenario batch.yaml --out out --workers 8 --xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.scenarioFile, "scenario", "", "Scenario YAML file")
	cmd.Flags().StringVar(&opts.outDir, "out", "out", "Output directory")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "Parallel allocations")
	cmd.Flags().IntVar(&opts.floor, "floor", apportion.DefaultFloor, "Minimum seats per state when the file sets none")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "Also write annexures.xlsx")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runBatch(ctx context.Context, out io.Writer, opts batchOptions) error {
	f, err := scenario.Load(opts.scenarioFile)
	if err != nil {
		return err
	}
	scenarios, err := f.Scenarios(opts.floor)
	if err != nil {
		return err
	}

	results, summary := cycle.Runner{Workers: opts.workers, CompareToProportional: true}.Run(ctx, scenarios)

	if err := writeResults(opts.outDir, nil, results, opts.xlsx, true); err != nil {
		return err
	}
	printSummary(out, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d allocations failed", summary.Failed, summary.Total)
	}
	return nil
}
