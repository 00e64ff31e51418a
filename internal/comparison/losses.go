package comparison

import (
	"fmt"
	"math"
)

// Loss names the per-observation error used to build error vectors.
type Loss string

const (
	LossLog      Loss = "log_loss"
	LossAbsolute Loss = "absolute"
	LossSquared  Loss = "squared"
)

// ParseRegressionLoss validates a regression loss name. The empty string
// maps to LossAbsolute.
func ParseRegressionLoss(s string) (Loss, error) {
	switch Loss(s) {
	case "", LossAbsolute:
		return LossAbsolute, nil
	case LossSquared:
		return LossSquared, nil
	}
	return "", &InvalidInputError{Field: "loss", Reason: fmt.Sprintf("unknown regression loss %q: must be absolute or squared", s)}
}

// LogLoss returns the binary cross-entropy term of every prediction:
// -ln(p) for label 1 and -ln(1-p) for label 0.
func LogLoss(field string, predictions, labels []float64) ([]float64, error) {
	errs := make([]float64, len(predictions))
	for i, p := range predictions {
		if math.IsNaN(p) || p <= 0 || p >= 1 {
			return nil, &NumericDomainError{Field: field, Index: i, Value: p, Reason: "probability must lie in the open interval (0, 1)"}
		}
		if labels[i] == 1 {
			errs[i] = -math.Log(p)
		} else {
			errs[i] = -math.Log(1 - p)
		}
		if !isFinite(errs[i]) {
			return nil, &NumericDomainError{Field: field, Index: i, Value: p, Reason: "log-loss is not finite"}
		}
	}
	return errs, nil
}

// AbsoluteError returns |prediction - target| for every observation.
func AbsoluteError(field string, predictions, targets []float64) ([]float64, error) {
	return pointwise(field, predictions, targets, func(d float64) float64 { return math.Abs(d) })
}

// SquaredError returns (prediction - target)^2 for every observation.
func SquaredError(field string, predictions, targets []float64) ([]float64, error) {
	return pointwise(field, predictions, targets, func(d float64) float64 { return d * d })
}

func pointwise(field string, predictions, targets []float64, f func(float64) float64) ([]float64, error) {
	errs := make([]float64, len(predictions))
	for i, p := range predictions {
		if !isFinite(p) {
			return nil, &NumericDomainError{Field: field, Index: i, Value: p, Reason: "prediction is not finite"}
		}
		errs[i] = f(p - targets[i])
		if !isFinite(errs[i]) {
			return nil, &NumericDomainError{Field: field, Index: i, Value: p, Reason: "error term is not finite"}
		}
	}
	return errs, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
