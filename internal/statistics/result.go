package statistics

import (
	"encoding/json"
	"math"
)

// TestName identifies a paired hypothesis test.
type TestName string

const (
	TestPairedT  TestName = "paired_t"
	TestWilcoxon TestName = "wilcoxon_signed_rank"
)

// TestResult is the outcome of one paired test on x - y.
type TestResult struct {
	Test TestName `json:"test"`
	// N is the number of pairs that contributed to the statistic. For the
	// signed-rank test under the wilcox zero method this excludes zero
	// differences.
	N         int     `json:"n"`
	Statistic float64 `json:"statistic"`
	// DoF is only set for the t-test.
	DoF float64 `json:"dof,omitempty"`
	// PValue is two-sided.
	PValue float64 `json:"p_value"`
	// Effect is signed so that a negative value means x tends to be smaller
	// than y: the mean difference for the t-test, R+ - R- for the signed-rank test.
	Effect float64 `json:"effect"`
	Method Method  `json:"method,omitempty"`
}

// MarshalJSON encodes a non-finite statistic as the string "+Inf" or "-Inf",
// which encoding/json cannot represent as a number.
func (r TestResult) MarshalJSON() ([]byte, error) {
	type plain TestResult
	out := struct {
		plain
		Statistic any `json:"statistic"`
	}{plain: plain(r), Statistic: r.Statistic}
	switch {
	case math.IsInf(r.Statistic, 1):
		out.Statistic = "+Inf"
	case math.IsInf(r.Statistic, -1):
		out.Statistic = "-Inf"
	}
	return json.Marshal(out)
}

// OneSided converts the two-sided p-value into a one-sided p-value for the
// alternative "x is smaller than y".
func (r TestResult) OneSided() float64 {
	return OneSided(r.PValue, r.Effect)
}

// OneSided halves a two-sided p-value for the alternative that the effect is
// negative. When the observed effect points the other way the result is
// 1 - p/2, so swapping the samples maps p to 1 - p.
func OneSided(twoSided, effect float64) float64 {
	half := twoSided / 2
	if effect > 0 {
		return clampProbability(1 - half)
	}
	return clampProbability(half)
}

// Round rounds p to the given number of decimal places. Negative decimals
// leave p unchanged.
func Round(p float64, decimals int) float64 {
	if decimals < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return p
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(p*scale) / scale
}

func clampProbability(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
