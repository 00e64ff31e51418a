package statistics

import "errors"

var (
	// ErrSampleSize is returned when a paired test receives fewer than two pairs.
	ErrSampleSize = errors.New("sample is too small")

	// ErrMismatchedSamples is returned when the paired samples differ in length.
	ErrMismatchedSamples = errors.New("samples have different lengths")

	// ErrAllZeroDifferences is returned by the signed-rank test when every
	// paired difference is zero and no rank statistic exists.
	ErrAllZeroDifferences = errors.New("all paired differences are zero")

	// ErrExactWithTies is returned when the exact signed-rank distribution is
	// requested for differences containing ties or zeros.
	ErrExactWithTies = errors.New("exact signed-rank distribution requires untied, non-zero differences")

	// ErrUnknownMethod is returned for an unrecognized method or zero-handling name.
	ErrUnknownMethod = errors.New("unknown method")
)
