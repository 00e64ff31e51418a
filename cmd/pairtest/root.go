package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairtest",
		Short: "pairtest - is the new model really better than the benchmark?",
		Long: `pairtest compares the per-observation errors of a candidate model with
those of a benchmark on the same data.

It computes log-loss errors for binary classification or absolute errors for
regression, then runs a paired t-test and a Wilcoxon signed-rank test on the
two error vectors. Low one-sided p-values mean the candidate's errors are
significantly smaller; high ones mean the better point estimate may just be
noise.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newExampleCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
