package nbody

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a non-positive mass, timestep,
	// gravitational constant, or softening length.
	ErrInvalidParameter = errors.New("nbody: invalid parameter")

	// ErrInstability indicates a body state became non-finite (NaN or Inf),
	// usually a sign the timestep or softening length is inadequate for the
	// configuration.
	ErrInstability = errors.New("nbody: numerical instability")
)

// StepError wraps an error with the step index and simulated time at which
// it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
