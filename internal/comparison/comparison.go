// Package comparison decides whether a candidate model's per-observation
// errors are significantly smaller than a benchmark's, using a paired t-test
// and a Wilcoxon signed-rank test on the two error vectors.
package comparison

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/spboyer/pairtest/internal/statistics"
	"gonum.org/v1/gonum/stat"
)

// Task is the kind of prediction problem being compared.
type Task string

const (
	TaskClassification Task = "classification"
	TaskRegression     Task = "regression"
)

// ParseTask validates a task name.
func ParseTask(s string) (Task, error) {
	switch Task(s) {
	case TaskClassification, TaskRegression:
		return Task(s), nil
	}
	return "", &InvalidInputError{Field: "task", Reason: fmt.Sprintf("unknown task %q: must be classification or regression", s)}
}

// Input is one paired comparison. For classification, Labels must be 0 or 1
// and predictions are probabilities of the positive class.
type Input struct {
	Task      Task
	Model     []float64
	Benchmark []float64
	Labels    []float64
}

// Result is the outcome of one comparison. TPValue and WilcoxonPValue are
// one-sided p-values for the alternative "the candidate's errors are smaller".
type Result struct {
	Task Task `json:"task"`
	Loss Loss `json:"loss"`
	N    int  `json:"n"`

	MeanErrorModel     float64 `json:"mean_error_model"`
	MeanErrorBenchmark float64 `json:"mean_error_benchmark"`
	// MeanDifference is MeanErrorModel - MeanErrorBenchmark.
	MeanDifference float64 `json:"mean_difference"`

	TTest     *statistics.TestResult         `json:"t_test,omitempty"`
	Wilcoxon  *statistics.TestResult         `json:"wilcoxon,omitempty"`
	Bootstrap *statistics.ConfidenceInterval `json:"bootstrap,omitempty"`

	TPValue        float64 `json:"t_p_value"`
	WilcoxonPValue float64 `json:"wilcoxon_p_value"`

	// NoDifference is set when both error vectors are identical; neither
	// test runs and both p-values are 1.
	NoDifference bool `json:"no_difference"`
}

// RawTPValue is the unrounded one-sided t-test p-value. TPValue may be
// rounded for display; decisions use this value.
func (r *Result) RawTPValue() float64 {
	if r.TTest != nil {
		return r.TTest.OneSided()
	}
	return r.TPValue
}

// RawWilcoxonPValue is the unrounded one-sided signed-rank p-value.
func (r *Result) RawWilcoxonPValue() float64 {
	if r.Wilcoxon != nil {
		return r.Wilcoxon.OneSided()
	}
	return r.WilcoxonPValue
}

// Significant reports whether both unrounded one-sided p-values fall below
// alpha.
func (r *Result) Significant(alpha float64) bool {
	return r.RawTPValue() < alpha && r.RawWilcoxonPValue() < alpha
}

// Mixed reports whether exactly one of the two tests falls below alpha.
func (r *Result) Mixed(alpha float64) bool {
	return (r.RawTPValue() < alpha) != (r.RawWilcoxonPValue() < alpha)
}

// Comparator runs paired comparisons with fixed options. It holds no mutable
// state and is safe for concurrent use.
type Comparator struct {
	opts   Options
	tester Tester
}

// New returns a Comparator backed by the statistics package.
func New(opts Options) (*Comparator, error) {
	return NewWithTester(opts, statisticsTester{})
}

// NewWithTester returns a Comparator that delegates the paired tests to tester.
func NewWithTester(opts Options, tester Tester) (*Comparator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Comparator{opts: opts, tester: tester}, nil
}

// Options returns the validated options in use.
func (c *Comparator) Options() Options {
	return c.opts
}

// CompareClassification compares probability predictions against 0/1 labels
// using log-loss error vectors and the default options.
func CompareClassification(model, benchmark []float64, labels []int) (*Result, error) {
	c, err := New(DefaultOptions())
	if err != nil {
		return nil, err
	}
	return c.Classification(model, benchmark, labels)
}

// CompareRegression compares numeric predictions against targets using
// absolute error vectors and the default options.
func CompareRegression(model, benchmark, targets []float64) (*Result, error) {
	c, err := New(DefaultOptions())
	if err != nil {
		return nil, err
	}
	return c.Regression(model, benchmark, targets)
}

// Classification compares two probability vectors against 0/1 labels.
func (c *Comparator) Classification(model, benchmark []float64, labels []int) (*Result, error) {
	fl := make([]float64, len(labels))
	for i, l := range labels {
		fl[i] = float64(l)
	}
	return c.Compare(Input{Task: TaskClassification, Model: model, Benchmark: benchmark, Labels: fl})
}

// Regression compares two prediction vectors against real-valued targets.
func (c *Comparator) Regression(model, benchmark, targets []float64) (*Result, error) {
	return c.Compare(Input{Task: TaskRegression, Model: model, Benchmark: benchmark, Labels: targets})
}

// Compare validates in, builds both error vectors, and runs the paired tests.
// No test runs unless every input check passes.
func (c *Comparator) Compare(in Input) (*Result, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	modelErrs, benchErrs, loss, err := c.errorVectors(in)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Task:               in.Task,
		Loss:               loss,
		N:                  len(modelErrs),
		MeanErrorModel:     stat.Mean(modelErrs, nil),
		MeanErrorBenchmark: stat.Mean(benchErrs, nil),
	}
	res.MeanDifference = res.MeanErrorModel - res.MeanErrorBenchmark

	if slices.Equal(modelErrs, benchErrs) {
		slog.Debug("error vectors identical, skipping tests", "task", in.Task, "n", res.N)
		res.NoDifference = true
		res.TPValue = 1
		res.WilcoxonPValue = 1
		return res, nil
	}

	t, err := c.tester.PairedTTest(modelErrs, benchErrs)
	if err != nil {
		return nil, &StatisticalTestError{Test: "paired t-test", Err: err}
	}
	w, err := c.tester.SignedRank(modelErrs, benchErrs, statistics.WilcoxonOptions{
		Method:     c.opts.WilcoxonMethod,
		ZeroMethod: c.opts.ZeroMethod,
		Correction: c.opts.Correction,
	})
	if err != nil {
		return nil, &StatisticalTestError{Test: "wilcoxon signed-rank test", Err: err}
	}
	res.TTest = &t
	res.Wilcoxon = &w
	res.TPValue = c.report(t.OneSided())
	res.WilcoxonPValue = c.report(w.OneSided())

	if c.opts.BootstrapIterations > 0 {
		ci := statistics.BootstrapCI(statistics.Differences(modelErrs, benchErrs),
			c.opts.ConfidenceLevel, c.opts.BootstrapIterations, c.opts.Seed)
		res.Bootstrap = &ci
	}

	slog.Debug("comparison complete",
		"task", in.Task, "loss", loss, "n", res.N,
		"t_p", res.TPValue, "wilcoxon_p", res.WilcoxonPValue, "wilcoxon_method", w.Method)
	return res, nil
}

func (c *Comparator) report(p float64) float64 {
	if !c.opts.Round {
		return p
	}
	return statistics.Round(p, c.opts.Decimals)
}

func (c *Comparator) errorVectors(in Input) (model, benchmark []float64, loss Loss, err error) {
	switch in.Task {
	case TaskClassification:
		loss = LossLog
		if model, err = LogLoss("predictions_model", in.Model, in.Labels); err != nil {
			return nil, nil, "", err
		}
		if benchmark, err = LogLoss("predictions_benchmark", in.Benchmark, in.Labels); err != nil {
			return nil, nil, "", err
		}
	case TaskRegression:
		loss = c.opts.RegressionLoss
		f := AbsoluteError
		if loss == LossSquared {
			f = SquaredError
		}
		if model, err = f("predictions_model", in.Model, in.Labels); err != nil {
			return nil, nil, "", err
		}
		if benchmark, err = f("predictions_benchmark", in.Benchmark, in.Labels); err != nil {
			return nil, nil, "", err
		}
	}
	return model, benchmark, loss, nil
}

func validateInput(in Input) error {
	if _, err := ParseTask(string(in.Task)); err != nil {
		return err
	}
	n := len(in.Model)
	if len(in.Benchmark) != n {
		return &InvalidInputError{Field: "predictions_benchmark", Reason: fmt.Sprintf("length %d does not match predictions_model length %d", len(in.Benchmark), n)}
	}
	if len(in.Labels) != n {
		return &InvalidInputError{Field: "actual_labels", Reason: fmt.Sprintf("length %d does not match predictions_model length %d", len(in.Labels), n)}
	}
	if n < 2 {
		return &InvalidInputError{Field: "predictions_model", Reason: fmt.Sprintf("need at least 2 paired observations, got %d", n)}
	}

	for i, l := range in.Labels {
		switch in.Task {
		case TaskClassification:
			if l != 0 && l != 1 {
				return &InvalidInputError{Field: "actual_labels", Reason: fmt.Sprintf("label at index %d is %v; classification labels must be 0 or 1", i, l)}
			}
		case TaskRegression:
			if math.IsNaN(l) || math.IsInf(l, 0) {
				return &NumericDomainError{Field: "actual_labels", Index: i, Value: l, Reason: "target is not finite"}
			}
		}
	}
	return nil
}
