package comparison

import (
	"fmt"
	"strconv"
)

// InvalidInputError reports inputs that cannot form a paired comparison:
// mismatched lengths, too few observations, or non-binary labels.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// NumericDomainError reports a value outside the domain of the loss, such as
// a probability of exactly 0 or 1, or a non-finite error term.
type NumericDomainError struct {
	Field string
	Index int
	Value float64
	// Reason is optional detail.
	Reason string
}

func (e *NumericDomainError) Error() string {
	msg := fmt.Sprintf("numeric domain error in %s[%d] = %s", e.Field, e.Index, strconv.FormatFloat(e.Value, 'g', -1, 64))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// StatisticalTestError wraps a failure signalled by one of the paired tests.
type StatisticalTestError struct {
	Test string
	Err  error
}

func (e *StatisticalTestError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Test, e.Err)
}

func (e *StatisticalTestError) Unwrap() error {
	return e.Err
}
