package statistics

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// PairedTTest runs a two-sided paired t-test on x - y.
//
// When every difference is identical but non-zero the statistic is ±Inf and
// the p-value is 0. Identical samples have no defined statistic and return
// ErrAllZeroDifferences.
func PairedTTest(x, y []float64) (TestResult, error) {
	if len(x) != len(y) {
		return TestResult{}, ErrMismatchedSamples
	}
	if len(x) < 2 {
		return TestResult{}, ErrSampleSize
	}

	diffs := Differences(x, y)
	meanDiff := stat.Mean(diffs, nil)
	res := TestResult{
		Test:   TestPairedT,
		N:      len(x),
		DoF:    float64(len(x) - 1),
		Effect: meanDiff,
	}

	r, err := stats.PairedTTest(x, y, 0, stats.LocationDiffers)
	switch {
	case err == nil:
		res.Statistic = r.T
		res.PValue = r.P
	case errors.Is(err, stats.ErrZeroVariance):
		if meanDiff == 0 {
			return TestResult{}, ErrAllZeroDifferences
		}
		res.Statistic = math.Copysign(math.Inf(1), meanDiff)
		res.PValue = 0
	case errors.Is(err, stats.ErrSampleSize):
		return TestResult{}, ErrSampleSize
	case errors.Is(err, stats.ErrMismatchedSamples):
		return TestResult{}, ErrMismatchedSamples
	default:
		return TestResult{}, fmt.Errorf("paired t-test: %w", err)
	}

	if math.IsNaN(res.PValue) {
		return TestResult{}, fmt.Errorf("paired t-test: p-value is NaN for t=%v", res.Statistic)
	}
	return res, nil
}

// Differences returns x[i] - y[i]. The slices must have equal length.
func Differences(x, y []float64) []float64 {
	d := make([]float64, len(x))
	for i := range x {
		d[i] = x[i] - y[i]
	}
	return d
}
