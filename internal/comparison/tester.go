package comparison

//go:generate go tool mockgen -source tester.go -destination mock_tester_test.go -package comparison

import "github.com/spboyer/pairtest/internal/statistics"

// Tester runs the two paired tests on candidate and benchmark error vectors.
// Both methods return two-sided p-values.
type Tester interface {
	PairedTTest(x, y []float64) (statistics.TestResult, error)
	SignedRank(x, y []float64, opts statistics.WilcoxonOptions) (statistics.TestResult, error)
}

// statisticsTester is the Tester backed by the statistics package.
type statisticsTester struct{}

func (statisticsTester) PairedTTest(x, y []float64) (statistics.TestResult, error) {
	return statistics.PairedTTest(x, y)
}

func (statisticsTester) SignedRank(x, y []float64, opts statistics.WilcoxonOptions) (statistics.TestResult, error) {
	return statistics.WilcoxonSignedRank(x, y, opts)
}
