package validated

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates a jet-transport context whose number of
	// variables differs from the dimension of the initial condition.
	ErrDimensionMismatch = errors.New("validated: context dimension does not match the initial condition")

	// ErrInvalidConfig indicates integration parameters that cannot start a run.
	ErrInvalidConfig = errors.New("validated: invalid integration parameters")

	// ErrOutOfRange indicates a time outside the integrated interval.
	ErrOutOfRange = errors.New("validated: time outside the integrated range")
)

// StepError wraps a failure with the step it happened in. The result
// returned alongside it holds the samples accepted before the failure.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
