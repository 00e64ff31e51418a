package main

import (
	"fmt"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/reporting"
	"github.com/spf13/cobra"
)

// workedExample is one of the small illustrative datasets printed by the
// example command.
type workedExample struct {
	description string
	model       []float64
	benchmark   []float64
	labels      []float64
}

var workedExamples = map[comparison.Task]workedExample{
	comparison.TaskClassification: {
		description: "A weak classifier against a coin flip (every probability 0.5).",
		model:       []float64{0.53, 0.18, 0.62, 0.44, 0.73, 0.21, 0.59, 0.34, 0.67, 0.14},
		benchmark:   []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		labels:      []float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
	},
	comparison.TaskRegression: {
		description: "A shrunken linear fit against always predicting zero.",
		model:       []float64{-5.1, -4.2, -3.3, -2.4, -1.5, 1.6, 2.7, 3.8, 4.9, 5.0},
		benchmark:   []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		labels:      []float64{-10, -8, -6, -4, -2, 2, 4, 6, 8, 10},
	},
}

func newExampleCommand() *cobra.Command {
	var unrounded bool

	cmd := &cobra.Command{
		Use:       "example <classification|regression>",
		Short:     "Run a worked example comparison",
		Long:      `Print a small worked example and the p-values it produces with default options.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(comparison.TaskClassification), string(comparison.TaskRegression)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return exampleCommandE(cmd, comparison.Task(args[0]), unrounded)
		},
	}

	cmd.Flags().BoolVar(&unrounded, "unrounded", false, "Report p-values at full precision")

	return cmd
}

func exampleCommandE(cmd *cobra.Command, task comparison.Task, unrounded bool) error {
	ex, ok := workedExamples[task]
	if !ok {
		return fmt.Errorf("no example for task %q", task)
	}

	opts := comparison.DefaultOptions()
	opts.Round = !unrounded
	c, err := comparison.New(opts)
	if err != nil {
		return err
	}
	res, err := c.Compare(comparison.Input{Task: task, Model: ex.model, Benchmark: ex.benchmark, Labels: ex.labels})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, ex.description)                   //nolint:errcheck
	fmt.Fprintf(w, "  model:     %v\n", ex.model)     //nolint:errcheck
	fmt.Fprintf(w, "  benchmark: %v\n", ex.benchmark) //nolint:errcheck
	fmt.Fprintf(w, "  labels:    %v\n\n", ex.labels)  //nolint:errcheck
	fmt.Fprint(w, reporting.FormatLegacy(res))        //nolint:errcheck
	return nil
}
