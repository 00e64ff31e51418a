package statistics

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// BootstrapCI computes a percentile bootstrap confidence interval for the mean
// of values. confidenceLevel should be in (0, 1), e.g. 0.95. A non-positive
// iterations count uses DefaultBootstrapIterations. A negative seed uses a
// non-deterministic source.
//
// Returns a degenerate interval at the mean when fewer than 2 values exist.
func BootstrapCI(values []float64, confidenceLevel float64, iterations int, seed int64) ConfidenceInterval {
	n := len(values)
	if n < 2 {
		m := mean(values)
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
			NumBootstraps:   0,
		}
	}
	if iterations <= 0 {
		iterations = DefaultBootstrapIterations
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	bootMeans := make([]float64, iterations)
	sample := make([]float64, n)
	for i := 0; i < iterations; i++ {
		for j := 0; j < n; j++ {
			sample[j] = values[rng.Intn(n)]
		}
		bootMeans[i] = mean(sample)
	}

	sort.Float64s(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iterations)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iterations)))
	if hiIdx >= iterations {
		hiIdx = iterations - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            mean(values),
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iterations,
	}
}

// ExcludesZero reports whether zero lies strictly outside the interval, in
// either direction.
func ExcludesZero(ci ConfidenceInterval) bool {
	return ci.Lower > 0 || ci.Upper < 0
}

// FavorsCandidate reports whether the interval over candidate-minus-benchmark
// errors lies entirely below zero.
func FavorsCandidate(ci ConfidenceInterval) bool {
	return ci.Upper < 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}
