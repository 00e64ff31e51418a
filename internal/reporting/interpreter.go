package reporting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/statistics"
)

// FormatP prints a p-value the way an interactive numeric prompt would: the
// shortest representation that round-trips, always with a decimal point or
// exponent.
func FormatP(p float64) string {
	if math.IsNaN(p) {
		return "nan"
	}
	s := strconv.FormatFloat(p, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// FormatLegacy renders the classic two-line report:
// "T-test p-value = ..." followed by "Wilcoxon test p-value = ...".
func FormatLegacy(r *comparison.Result) string {
	return fmt.Sprintf("T-test p-value = %s\nWilcoxon test p-value = %s\n", FormatP(r.TPValue), FormatP(r.WilcoxonPValue))
}

// InterpretPValue returns a plain-language reading of a one-sided p-value for
// the alternative "the candidate's errors are smaller".
func InterpretPValue(p, alpha float64) string {
	switch {
	case p < alpha/10:
		return fmt.Sprintf("Strong evidence the candidate is better (p < %s)", FormatP(alpha/10))
	case p < alpha:
		return fmt.Sprintf("Candidate is better (p < %s)", FormatP(alpha))
	case p > 1-alpha:
		return "Benchmark looks better; the candidate is not an improvement"
	default:
		return "No significant difference"
	}
}

// Verdict summarizes both tests of a result in one line.
func Verdict(r *comparison.Result, alpha float64) string {
	switch {
	case r.NoDifference:
		return "Identical errors; nothing to test"
	case r.Significant(alpha):
		return "Significant: both tests favor the candidate"
	case r.Mixed(alpha):
		return "Mixed: only one test favors the candidate"
	default:
		return "Not significant"
	}
}

// IntervalReading says which side, if any, a bootstrap interval over
// candidate-minus-benchmark errors favors.
func IntervalReading(ci statistics.ConfidenceInterval) string {
	switch {
	case statistics.FavorsCandidate(ci):
		return "excludes zero, favors the candidate"
	case statistics.ExcludesZero(ci):
		return "excludes zero, favors the benchmark"
	default:
		return "includes zero"
	}
}

// FormatSummaryReport produces a plain-language report for one or more
// comparisons against the same candidate.
func FormatSummaryReport(results []comparison.NamedResult, alpha float64) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n")

	for _, nr := range results {
		r := nr.Result
		fmt.Fprintf(&b, "\nBenchmark: %s (%s, %s, n=%d)\n", nr.Benchmark, r.Task, r.Loss, r.N)
		fmt.Fprintf(&b, "  Mean error:     model %.4f, benchmark %.4f (diff %+.4f)\n",
			r.MeanErrorModel, r.MeanErrorBenchmark, r.MeanDifference)
		if r.NoDifference {
			b.WriteString("  Tests:          skipped, both p-values are 1.0\n")
		} else {
			fmt.Fprintf(&b, "  T-test:         p = %s  %s\n", FormatP(r.TPValue), InterpretPValue(r.RawTPValue(), alpha))
			fmt.Fprintf(&b, "  Wilcoxon test:  p = %s  %s\n", FormatP(r.WilcoxonPValue), InterpretPValue(r.RawWilcoxonPValue(), alpha))
		}
		if r.Wilcoxon != nil && r.Wilcoxon.Method != "" {
			fmt.Fprintf(&b, "                  method %s\n", r.Wilcoxon.Method)
		}
		if ci := r.Bootstrap; ci != nil {
			fmt.Fprintf(&b, "  Bootstrap:      %.0f%% CI of mean diff [%.4f, %.4f], %s\n",
				ci.ConfidenceLevel*100, ci.Lower, ci.Upper, IntervalReading(*ci))
		}
		fmt.Fprintf(&b, "  Verdict:        %s\n", Verdict(r, alpha))
	}

	return b.String()
}
