// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/fair-seats/cliparse"
	"github.com/danielhkuo/fair-seats/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "apportion",
		Short: "Degressive seat apportionment and fairness annexures",
		Long: `Allocate Lok Sabha seats among states with population^alpha weights,
score each allocation for fairness, and write the results as CSV and XLSX
annexures.

LOG_LEVEL and LOG_FORMAT may also be set in the environment or in .env.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.LoadEnvFile(envFile); err != nil {
				return err
			}
			if logLevel == "" {
				logLevel = os.Getenv("LOG_LEVEL")
			}
			if logFormat == "" {
				logFormat = os.Getenv("LOG_FORMAT")
			}
			return logging.Setup(logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (tint, text, json)")

	rootCmd.AddCommand(
		newAllocateCmd(),
		newBatchCmd(),
		newValidateCmd(),
	)
	return rootCmd
}
