package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/dataset"
	"github.com/spboyer/pairtest/internal/projectconfig"
	"github.com/spboyer/pairtest/internal/reporting"
	"github.com/spboyer/pairtest/internal/spinner"
	"github.com/spboyer/pairtest/internal/statistics"
	"github.com/spf13/cobra"
)

// compareFlags holds every flag of the compare command. Values only override
// the project config when the flag was set explicitly.
type compareFlags struct {
	request    string
	data       string
	model      string
	benchmarks []string
	label      string
	rows       string
	name       string

	format    string
	output    string
	explain   bool
	unrounded bool
	decimals  int
	alpha     float64

	wilcoxonMethod string
	zeroMethod     string
	correction     bool
	loss           string
	bootstrap      int
	confidence     float64
	seed           int64
	workers        int

	failIfNotSignificant bool
}

// comparisonRun is a fully resolved comparison ready to execute.
type comparisonRun struct {
	name       string
	task       comparison.Task
	model      []float64
	benchmarks []comparison.Benchmark
	labels     []float64
	opts       comparison.Options
	format     string
	alpha      float64
}

func newCompareCommand() *cobra.Command {
	f := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [classification|regression]",
		Short: "Test whether a model's errors are significantly smaller than a benchmark's",
		Long: `Compare a candidate model with one or more benchmarks on the same observations.

Predictions come either from a CSV file (--data with --model, --benchmark and
--label column names; .gz and .zst files are decompressed) or from a YAML/JSON
request document (--request). For classification the predictions are
probabilities of the positive class and labels are 0/1; for regression they
are numeric values compared with the targets.

The default text output prints the one-sided p-values of the paired t-test
and the Wilcoxon signed-rank test. Values below the significance level mean
the candidate is better than the benchmark.

Defaults come from .pairtest.yaml when present; flags override it.`,
		Example: `  pairtest compare classification --data preds.csv --model new --benchmark old --label y
  pairtest compare regression --data preds.csv.gz --model gbm --benchmark mean,last --label target --format table
  pairtest compare --request request.yaml --format json --fail-if-not-significant`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareCommandE(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.request, "request", "r", "", "YAML or JSON request document with predictions and labels")
	fl.StringVarP(&f.data, "data", "d", "", "CSV file with one row per observation")
	fl.StringVar(&f.model, "model", "", "Column with the candidate model's predictions")
	fl.StringSliceVar(&f.benchmarks, "benchmark", nil, "Benchmark prediction column(s), comma-separated")
	fl.StringVar(&f.label, "label", "", "Column with the actual labels or targets")
	fl.StringVar(&f.rows, "rows", "", "Only compare CSV data rows start:end (1-based, inclusive; either side may be omitted)")
	fl.StringVar(&f.name, "name", "", "Name shown in markdown, HTML, JSON and JUnit reports")

	fl.StringVarP(&f.format, "format", "f", projectconfig.DefaultFormat, "Output format: text, table, json, markdown, html or junit")
	fl.StringVarP(&f.output, "output", "o", "", "Write the report to a file instead of stdout")
	fl.BoolVar(&f.explain, "explain", false, "Append a plain-language interpretation to text output")
	fl.BoolVar(&f.unrounded, "unrounded", false, "Report p-values at full precision")
	fl.IntVar(&f.decimals, "decimals", comparison.DefaultDecimals, "Decimal places for rounded p-values")
	fl.Float64Var(&f.alpha, "alpha", projectconfig.DefaultAlpha, "Significance level for verdicts")

	fl.StringVar(&f.wilcoxonMethod, "wilcoxon-method", string(statistics.MethodAuto), "Signed-rank p-value method: auto, exact or approx")
	fl.StringVar(&f.zeroMethod, "zero-method", string(statistics.ZeroWilcox), "Zero-difference handling: wilcox or pratt")
	fl.BoolVar(&f.correction, "continuity-correction", false, "Apply a continuity correction to the normal approximation")
	fl.StringVar(&f.loss, "loss", string(comparison.LossAbsolute), "Regression loss: absolute or squared")
	fl.IntVar(&f.bootstrap, "bootstrap", 0, "Bootstrap iterations for a confidence interval of the mean error difference (0 disables)")
	fl.Float64Var(&f.confidence, "confidence", comparison.DefaultConfidenceLevel, "Bootstrap confidence level")
	fl.Int64Var(&f.seed, "seed", comparison.DefaultSeed, "Bootstrap random seed (negative for a random seed)")
	fl.IntVar(&f.workers, "workers", comparison.DefaultWorkers, "Benchmarks compared concurrently")

	fl.BoolVar(&f.failIfNotSignificant, "fail-if-not-significant", false, "Exit with code 1 unless every comparison is significant")

	cmd.MarkFlagsMutuallyExclusive("request", "data")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string, f *compareFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := projectconfig.Load(cwd)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		slog.Debug("loaded project config", "path", cfg.Path)
	}

	run, err := resolveRun(cmd, args, f, cfg)
	if err != nil {
		return err
	}

	c, err := comparison.New(run.opts)
	if err != nil {
		return err
	}
	stop := func() {}
	if run.opts.BootstrapIterations > 0 {
		stop = spinner.StartOnTerminal(cmd.ErrOrStderr(),
			fmt.Sprintf("Comparing against %d benchmark(s) with %d bootstrap resamples...", len(run.benchmarks), run.opts.BootstrapIterations))
	}
	results, err := c.CompareMany(cmd.Context(), run.task, run.model, run.benchmarks, run.labels)
	stop()
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), f.output, f.explain, run, results); err != nil {
		return err
	}

	if f.failIfNotSignificant {
		return checkSignificance(results, run.alpha)
	}
	return nil
}

// resolveRun loads the inputs and layers options: defaults, project config,
// request options, then explicitly set flags.
func resolveRun(cmd *cobra.Command, args []string, f *compareFlags, cfg *projectconfig.ProjectConfig) (*comparisonRun, error) {
	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", projectconfig.FileName, err)
	}
	run := &comparisonRun{name: f.name, format: cfg.Output.Format, alpha: cfg.Alpha()}

	switch {
	case f.request != "":
		if f.rows != "" {
			return nil, errors.New("--rows only applies to --data")
		}
		req, err := dataset.LoadRequest(f.request)
		if err != nil {
			return nil, err
		}
		task, err := comparison.ParseTask(req.Task)
		if err != nil {
			return nil, err
		}
		if len(args) == 1 && args[0] != string(task) {
			return nil, fmt.Errorf("task argument %q does not match request task %q", args[0], task)
		}
		opts, err = comparison.DecodeOptions(opts, req.Options)
		if err != nil {
			return nil, fmt.Errorf("request options: %w", err)
		}
		run.task = task
		run.model = req.PredictionsModel
		run.benchmarks = req.BenchmarkList()
		run.labels = req.ActualLabels
		if run.name == "" {
			run.name = req.Name
		}

	case f.data != "":
		if len(args) != 1 {
			return nil, errors.New("compare with --data requires a task argument: classification or regression")
		}
		task, err := comparison.ParseTask(args[0])
		if err != nil {
			return nil, err
		}
		run.task = task
		if err := loadColumns(run, f); err != nil {
			return nil, err
		}

	default:
		return nil, errors.New("either --request or --data is required")
	}

	opts, err = applyFlagOverrides(cmd, f, opts)
	if err != nil {
		return nil, err
	}
	run.opts = opts

	flags := cmd.Flags()
	if flags.Changed("format") {
		run.format = f.format
	}
	if flags.Changed("alpha") {
		run.alpha = f.alpha
	}
	if !slices.Contains(reporting.Formats, run.format) {
		return nil, fmt.Errorf("unsupported format %q: must be one of %s", run.format, strings.Join(reporting.Formats, ", "))
	}
	if run.alpha <= 0 || run.alpha >= 1 {
		return nil, &comparison.InvalidInputError{Field: "alpha", Reason: fmt.Sprintf("must lie in (0, 1), got %v", run.alpha)}
	}
	if run.name == "" {
		run.name = string(run.task)
	}
	return run, nil
}

func loadColumns(run *comparisonRun, f *compareFlags) error {
	if f.model == "" || f.label == "" || len(f.benchmarks) == 0 {
		return errors.New("--data requires --model, --benchmark and --label")
	}

	var rows []dataset.Row
	var err error
	if f.rows != "" {
		r, perr := dataset.ParseRowRange(f.rows)
		if perr != nil {
			return perr
		}
		rows, err = dataset.LoadCSVRange(f.data, r)
	} else {
		rows, err = dataset.LoadCSV(f.data)
	}
	if err != nil {
		return err
	}
	slog.Debug("loaded predictions", "path", f.data, "rows", len(rows), "range", f.rows)

	if run.model, err = dataset.FloatColumn(rows, f.model); err != nil {
		return err
	}
	for _, col := range f.benchmarks {
		col = strings.TrimSpace(col)
		preds, err := dataset.FloatColumn(rows, col)
		if err != nil {
			return err
		}
		run.benchmarks = append(run.benchmarks, comparison.Benchmark{Name: col, Predictions: preds})
	}

	if run.task == comparison.TaskClassification {
		run.labels, err = dataset.LabelColumn(rows, f.label)
	} else {
		run.labels, err = dataset.FloatColumn(rows, f.label)
	}
	return err
}

func applyFlagOverrides(cmd *cobra.Command, f *compareFlags, opts comparison.Options) (comparison.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("unrounded") {
		opts.Round = !f.unrounded
	}
	if flags.Changed("decimals") {
		opts.Decimals = f.decimals
	}
	if flags.Changed("wilcoxon-method") {
		opts.WilcoxonMethod = statistics.Method(f.wilcoxonMethod)
	}
	if flags.Changed("zero-method") {
		opts.ZeroMethod = statistics.ZeroMethod(f.zeroMethod)
	}
	if flags.Changed("continuity-correction") {
		opts.Correction = f.correction
	}
	if flags.Changed("loss") {
		opts.RegressionLoss = comparison.Loss(f.loss)
	}
	if flags.Changed("bootstrap") {
		opts.BootstrapIterations = f.bootstrap
	}
	if flags.Changed("confidence") {
		opts.ConfidenceLevel = f.confidence
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// writeReport renders results in the run's format to path, or to w when
// path is empty.
func writeReport(w io.Writer, path string, explain bool, run *comparisonRun, results []comparison.NamedResult) error {
	if path != "" && run.format == "junit" {
		suites := reporting.ConvertToJUnit(run.name, results, run.alpha, time.Now().UTC())
		if err := reporting.WriteJUnitXML(suites, path); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(w, "Report written to %s\n", path) //nolint:errcheck
		return nil
	}

	var buf bytes.Buffer
	if err := render(&buf, run.format, explain, run.name, run.alpha, run.opts, results); err != nil {
		return err
	}

	if path == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(w, "Report written to %s\n", path) //nolint:errcheck
	return nil
}

func render(w io.Writer, format string, explain bool, name string, alpha float64, opts comparison.Options, results []comparison.NamedResult) error {
	switch format {
	case "text":
		for _, nr := range results {
			if len(results) > 1 {
				if _, err := fmt.Fprintf(w, "Benchmark %s:\n", nr.Benchmark); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, reporting.FormatLegacy(nr.Result)); err != nil {
				return err
			}
		}
		if explain {
			_, err := io.WriteString(w, "\n"+reporting.FormatSummaryReport(results, alpha))
			return err
		}
		return nil
	case "table":
		return reporting.WriteTable(w, results, alpha)
	case "json":
		return reporting.WriteJSON(w, reporting.NewReport(name, alpha, opts, results))
	case "markdown":
		_, err := io.WriteString(w, reporting.FormatMarkdown(name, results, alpha))
		return err
	case "html":
		page, err := reporting.RenderHTML(name, reporting.FormatMarkdown(name, results, alpha))
		if err != nil {
			return err
		}
		_, err = w.Write(page)
		return err
	case "junit":
		return reporting.WriteJUnit(w, reporting.ConvertToJUnit(name, results, alpha, time.Now().UTC()))
	}
	return fmt.Errorf("unsupported format %q: must be text, table, json, markdown, html or junit", format)
}

func checkSignificance(results []comparison.NamedResult, alpha float64) error {
	var failed []string
	for _, nr := range results {
		if !nr.Significant(alpha) {
			failed = append(failed, nr.Benchmark)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &NotSignificantError{
		Message: fmt.Sprintf("candidate is not significantly better than %s at alpha = %s",
			strings.Join(failed, ", "), reporting.FormatP(alpha)),
	}
}
