// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/fair-seats/popdata"
)

var errValidation = errors.New("population file failed validation")

type validateOptions struct {
	inFile     string
	canon      string
	scale      float64
	forceScale bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a population file before allocating",
		Long: `Load a population file and report duplicate states, zero populations,
names missing from the canonical list, and a seat column that does not sum
to a standard house size. Exits non-zero when any error is found; warnings
alone pass.

Example: apportion validate --infile pop_2026.csv --canon states_canonical.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.inFile, "infile", "", "Population CSV")
	cmd.Flags().StringVar(&opts.canon, "canon", "", "Canonical state name CSV")
	cmd.Flags().Float64Var(&opts.scale, "scale", popdata.DefaultScale, "Multiplier for populations given in crores")
	cmd.Flags().BoolVar(&opts.forceScale, "force-scale", false, "Always apply --scale")
	_ = cmd.MarkFlagRequired("infile")

	return cmd
}

func runValidate(out io.Writer, opts validateOptions) error {
	var canon map[string]string
	if opts.canon != "" {
		var err error
		if canon, err = loadCanonical(opts.canon); err != nil {
			return err
		}
	}

	ds, err := popdata.Load(opts.inFile, popdata.Options{Scale: opts.scale, ForceScale: opts.forceScale, Canonical: canon})
	if err != nil {
		return err
	}

	var total int64
	for _, s := range ds.States {
		total += s.Population
	}
	fmt.Fprintf(out, "%s: %d states, population %s (column %q)\n",
		opts.inFile, len(ds.States), humanize.Comma(total), ds.PopulationColumn)
	if ds.Scaled {
		fmt.Fprintf(out, "populations scaled by %s\n", humanize.Commaf(ds.Scale))
	}

	issues := popdata.Check(ds, canon)
	if len(issues) == 0 {
		fmt.Fprintln(out, "no issues found")
		return nil
	}
	for _, i := range issues {
		fmt.Fprintf(out, "%-5s %s\n", i.Severity, i.Message)
	}

	if popdata.HasErrors(issues) {
		return errValidation
	}
	return nil
}
