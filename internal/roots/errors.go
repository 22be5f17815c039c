package roots

import (
	"errors"
	"fmt"
)

// Domain errors for root finding. Solver failures arrive wrapped in a
// *SolverError; match them with errors.Is.
var (
	// ErrInvalidBracket indicates f(a) and f(b) share a strict sign.
	ErrInvalidBracket = errors.New("roots: invalid bracket (no sign change)")

	// ErrMissingParameter indicates a method was selected without the inputs it needs.
	ErrMissingParameter = errors.New("roots: missing required parameter")

	// ErrInvalidMethod indicates an unrecognized method identifier.
	ErrInvalidMethod = errors.New("roots: invalid method")

	// ErrDerivativeZero indicates the Newton derivative fell below the near-zero threshold.
	ErrDerivativeZero = errors.New("roots: derivative too close to zero")

	// ErrUndefinedSlope indicates the secant through two equal function values.
	ErrUndefinedSlope = errors.New("roots: undefined secant slope (division by zero)")

	// ErrNoConvergence indicates the iteration budget ran out.
	ErrNoConvergence = errors.New("roots: did not converge within max iterations")

	// ErrInvalidParameter indicates a tolerance, step or iteration bound out of range.
	ErrInvalidParameter = errors.New("roots: parameter out of valid range")
)

// SolverError wraps a solver failure with the point where it was detected.
// History holds the iterates produced before the failure when history
// capture was requested, and is nil otherwise.
type SolverError struct {
	Method    Method
	Iteration int
	X         float64
	History   []float64
	Wrapped   error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s: iteration %d (x=%g): %v", e.Method, e.Iteration, e.X, e.Wrapped)
}

func (e *SolverError) Unwrap() error {
	return e.Wrapped
}

func fail(m Method, k int, x float64, h *history, err error) error {
	return &SolverError{
		Method:    m,
		Iteration: k,
		X:         x,
		History:   h.values(),
		Wrapped:   err,
	}
}
