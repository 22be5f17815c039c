package roots

import (
	"fmt"
	"math"
)

const (
	DefaultTolerance = 1e-6
	DefaultMaxIter   = 100
	DefaultStep      = 1e-8

	// minDerivative is the magnitude below which a Newton step is refused.
	minDerivative = 1e-12
)

// Func is a real function of one real variable.
type Func func(x float64) float64

// Options controls a single solver call. Zero fields take the package defaults.
type Options struct {
	// Tolerance bounds the residual |f(x)| or the step size, depending on the solver.
	Tolerance float64
	// MaxIter bounds the number of iterations; running out is ErrNoConvergence.
	MaxIter int
	// Step is the central-difference spacing used when Newton has no derivative.
	Step float64
	// History requests the ordered iterates in Result.History.
	History bool
}

// DefaultOptions returns the options a zero Options resolves to.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
		Step:      DefaultStep,
	}
}

func (o Options) resolve() (Options, error) {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIter == 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}

	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 1) {
		return o, fmt.Errorf("%w: tolerance %g", ErrInvalidParameter, o.Tolerance)
	}
	if o.MaxIter < 0 {
		return o, fmt.Errorf("%w: max iterations %d", ErrInvalidParameter, o.MaxIter)
	}
	if !(o.Step > 0) || math.IsInf(o.Step, 1) {
		return o, fmt.Errorf("%w: derivative step %g", ErrInvalidParameter, o.Step)
	}
	return o, nil
}

// Result is the outcome of a successful solve.
type Result struct {
	Root float64
	// History is nil unless Options.History was set. Its last element is Root.
	History []float64
	// Iterations counts loop iterations; 0 when the starting point already satisfied the test.
	Iterations int
}

// Bracket is an interval [A, B] expected to contain a root.
type Bracket struct {
	A, B float64
}

func (b Bracket) Midpoint() float64 {
	return (b.A + b.B) / 2
}

func (b Bracket) Width() float64 {
	return math.Abs(b.B - b.A)
}

// CentralDifference approximates f' with (f(x+h) - f(x-h)) / 2h.
func CentralDifference(f Func, h float64) Func {
	return func(x float64) float64 {
		return (f(x+h) - f(x-h)) / (2 * h)
	}
}

// Derivative returns df when supplied and the central difference of f otherwise.
func Derivative(f, df Func, h float64) Func {
	if df != nil {
		return df
	}
	return CentralDifference(f, h)
}

type history struct {
	on bool
	xs []float64
}

func newHistory(on bool, capacity int) *history {
	h := &history{on: on}
	if on {
		h.xs = make([]float64, 0, min(capacity, 128))
	}
	return h
}

func (h *history) add(x float64) {
	if h.on {
		h.xs = append(h.xs, x)
	}
}

func (h *history) values() []float64 {
	if !h.on {
		return nil
	}
	return h.xs
}
