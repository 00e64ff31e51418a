package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairedTTest_KnownValues(t *testing.T) {
	x := []float64{2, 1, 3, 4}
	y := []float64{6, 5, 7, 9}

	res, err := PairedTTest(x, y)
	require.NoError(t, err)

	assert.Equal(t, TestPairedT, res.Test)
	assert.Equal(t, 4, res.N)
	assert.InDelta(t, -17.0, res.Statistic, 1e-9)
	assert.InDelta(t, 3.0, res.DoF, 1e-12)
	assert.InDelta(t, 0.00044334353831207749, res.PValue, 1e-12)
	assert.InDelta(t, -4.25, res.Effect, 1e-12)
	assert.InDelta(t, 0.0002216717691559955, res.OneSided(), 1e-12)
}

func TestPairedTTest_SwappedSamples(t *testing.T) {
	x := []float64{2, 1, 3, 4}
	y := []float64{6, 5, 7, 9}

	fwd, err := PairedTTest(x, y)
	require.NoError(t, err)
	rev, err := PairedTTest(y, x)
	require.NoError(t, err)

	assert.InDelta(t, fwd.PValue, rev.PValue, 1e-12)
	assert.InDelta(t, 1.0, fwd.OneSided()+rev.OneSided(), 1e-12)
	assert.InDelta(t, 0.999778328230844, rev.OneSided(), 1e-12)
}

func TestPairedTTest_ConstantNonZeroDifference(t *testing.T) {
	x := []float64{0, 0, 0, 0}
	y := []float64{1, 1, 1, 1}

	res, err := PairedTTest(x, y)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Statistic, -1), "expected -Inf statistic, got %v", res.Statistic)
	assert.Equal(t, 0.0, res.PValue)
	assert.Equal(t, 0.0, res.OneSided())

	res, err = PairedTTest(y, x)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Statistic, 1))
	assert.Equal(t, 1.0, res.OneSided())
}

func TestPairedTTest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		wantErr error
	}{
		{"mismatched", []float64{1, 2, 3}, []float64{1, 2}, ErrMismatchedSamples},
		{"too small", []float64{1}, []float64{2}, ErrSampleSize},
		{"empty", nil, nil, ErrSampleSize},
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, ErrAllZeroDifferences},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PairedTTest(tt.x, tt.y)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOneSided(t *testing.T) {
	tests := []struct {
		name     string
		twoSided float64
		effect   float64
		want     float64
	}{
		{"candidate better", 0.08, -1.2, 0.04},
		{"candidate worse", 0.08, 1.2, 0.96},
		{"no effect", 1.0, 0, 0.5},
		{"zero p in direction", 0, -3, 0},
		{"zero p against direction", 0, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OneSided(tt.twoSided, tt.effect), 1e-12)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.0228, Round(0.02275013194817922, 4))
	assert.Equal(t, 0.0625, Round(0.0625, 4))
	assert.Equal(t, 0.001, Round(0.0009765625, 3))
	assert.Equal(t, 0.0009765625, Round(0.0009765625, -1))
	assert.True(t, math.IsNaN(Round(math.NaN(), 4)))
}
