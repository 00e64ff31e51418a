package statistics

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Method selects how the signed-rank p-value is computed.
type Method string

const (
	// MethodAuto uses the exact distribution for small samples without ties
	// or zeros and the normal approximation otherwise.
	MethodAuto   Method = "auto"
	MethodExact  Method = "exact"
	MethodApprox Method = "approx"
)

// ZeroMethod selects how zero differences are treated by the signed-rank test.
type ZeroMethod string

const (
	// ZeroWilcox discards zero differences before ranking.
	ZeroWilcox ZeroMethod = "wilcox"
	// ZeroPratt ranks zero differences with the rest, then drops their ranks.
	ZeroPratt ZeroMethod = "pratt"
)

// ExactThreshold is the largest number of non-zero differences for which
// MethodAuto uses the exact null distribution.
const ExactThreshold = 50

// WilcoxonOptions configures WilcoxonSignedRank.
type WilcoxonOptions struct {
	Method     Method
	ZeroMethod ZeroMethod
	// Correction applies a continuity correction to the normal approximation.
	Correction bool
}

// ParseMethod validates a method name. The empty string maps to MethodAuto.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodAuto:
		return MethodAuto, nil
	case MethodExact, MethodApprox:
		return Method(s), nil
	}
	return "", fmt.Errorf("%w %q: must be auto, exact or approx", ErrUnknownMethod, s)
}

// ParseZeroMethod validates a zero-handling name. The empty string maps to ZeroWilcox.
func ParseZeroMethod(s string) (ZeroMethod, error) {
	switch ZeroMethod(s) {
	case "", ZeroWilcox:
		return ZeroWilcox, nil
	case ZeroPratt:
		return ZeroPratt, nil
	}
	return "", fmt.Errorf("%w %q: zero method must be wilcox or pratt", ErrUnknownMethod, s)
}

// WilcoxonSignedRank runs a two-sided Wilcoxon signed-rank test on x - y.
// The statistic is R+, the sum of ranks of positive differences.
func WilcoxonSignedRank(x, y []float64, opts WilcoxonOptions) (TestResult, error) {
	if len(x) != len(y) {
		return TestResult{}, ErrMismatchedSamples
	}
	if len(x) < 2 {
		return TestResult{}, ErrSampleSize
	}
	method, err := ParseMethod(string(opts.Method))
	if err != nil {
		return TestResult{}, err
	}
	zeroMethod, err := ParseZeroMethod(string(opts.ZeroMethod))
	if err != nil {
		return TestResult{}, err
	}

	d := Differences(x, y)
	zeros := 0
	for _, v := range d {
		if v == 0 {
			zeros++
		}
	}
	if zeros == len(d) {
		return TestResult{}, ErrAllZeroDifferences
	}

	if zeroMethod == ZeroWilcox && zeros > 0 {
		nonZero := make([]float64, 0, len(d)-zeros)
		for _, v := range d {
			if v != 0 {
				nonZero = append(nonZero, v)
			}
		}
		d = nonZero
		zeros = 0
	}

	ranks, tieSizes := absRanks(d)
	var rPlus, rMinus float64
	for i, v := range d {
		switch {
		case v > 0:
			rPlus += ranks[i]
		case v < 0:
			rMinus += ranks[i]
		}
	}

	hasTies := len(tieSizes) > 0
	if method == MethodExact && (hasTies || zeros > 0) {
		return TestResult{}, ErrExactWithTies
	}
	if method == MethodAuto {
		method = MethodApprox
		if len(d) <= ExactThreshold && !hasTies && zeros == 0 {
			method = MethodExact
		}
	}

	res := TestResult{
		Test:      TestWilcoxon,
		N:         len(d) - zeros,
		Statistic: rPlus,
		Effect:    rPlus - rMinus,
		Method:    method,
	}

	if method == MethodExact {
		res.PValue = exactSignedRankP(len(d), rPlus, rMinus)
	} else {
		res.PValue = approxSignedRankP(len(d), zeros, rPlus, tieSizes, opts.Correction)
	}

	slog.Debug("wilcoxon signed-rank",
		"n", res.N, "zeros", zeros, "method", method, "r_plus", rPlus, "r_minus", rMinus, "p", res.PValue)

	if math.IsNaN(res.PValue) {
		return TestResult{}, fmt.Errorf("wilcoxon signed-rank: p-value is NaN")
	}
	return res, nil
}

// absRanks returns the average ranks of |d| (1-based) and the sizes of every
// tie group with more than one member. Zero differences take part in the
// ranking but are never grouped as ties.
func absRanks(d []float64) ([]float64, []int) {
	n := len(d)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return math.Abs(d[idx[a]]) < math.Abs(d[idx[b]])
	})

	ranks := make([]float64, n)
	var ties []int
	for i := 0; i < n; {
		j := i + 1
		for j < n && math.Abs(d[idx[j]]) == math.Abs(d[idx[i]]) {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if size := j - i; size > 1 && d[idx[i]] != 0 {
			ties = append(ties, size)
		}
		i = j
	}
	return ranks, ties
}

// exactSignedRankP is the two-sided p-value from the exact null distribution
// of R+ with n untied, non-zero differences.
func exactSignedRankP(n int, rPlus, rMinus float64) float64 {
	counts := signedRankCounts(n)
	total := math.Ldexp(1, n)

	r := int(math.Round(math.Min(rPlus, rMinus)))
	tail := 0.0
	for s := 0; s <= r && s < len(counts); s++ {
		tail += counts[s]
	}
	return math.Min(1, 2*tail/total)
}

// signedRankCounts returns, for every achievable sum s, the number of subsets
// of {1..n} whose elements sum to s.
func signedRankCounts(n int) []float64 {
	maxSum := n * (n + 1) / 2
	counts := make([]float64, maxSum+1)
	counts[0] = 1
	for k := 1; k <= n; k++ {
		for s := k * (k + 1) / 2; s >= k; s-- {
			counts[s] += counts[s-k]
		}
	}
	return counts
}

// approxSignedRankP is the two-sided p-value from the normal approximation.
// n counts every ranked difference, including the zeros ranked under pratt.
func approxSignedRankP(n, zeros int, rPlus float64, tieSizes []int, correction bool) float64 {
	nf := float64(n)
	z0 := float64(zeros)

	mn := nf * (nf + 1) / 4
	v := nf * (nf + 1) * (2*nf + 1)
	if zeros > 0 {
		mn -= z0 * (z0 + 1) / 4
		v -= z0 * (z0 + 1) * (2*z0 + 1)
	}
	for _, t := range tieSizes {
		tf := float64(t)
		v -= 0.5 * (tf*tf*tf - tf)
	}
	se := math.Sqrt(v / 24)
	if se == 0 {
		return 1
	}

	diff := rPlus - mn
	if correction && diff != 0 {
		diff -= math.Copysign(0.5, diff)
	}
	z := diff / se

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	return math.Min(1, 2*normal.Survival(math.Abs(z)))
}
