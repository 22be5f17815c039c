package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rootfind/internal/roots"
)

// Scan splits [lo, hi] into n equal cells and returns those whose ends
// change sign. A grid point where f is exactly zero yields a degenerate
// bracket [x, x]. Cells touching a NaN are skipped.
func Scan(f roots.Func, lo, hi float64, n int) ([]roots.Bracket, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: scan needs at least one cell, got %d", roots.ErrInvalidParameter, n)
	}
	if !(lo < hi) {
		return nil, fmt.Errorf("%w: scan interval [%g, %g] is empty", roots.ErrInvalidParameter, lo, hi)
	}

	xs := Linspace(lo, hi, n+1)
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = f(x)
	}

	var out []roots.Bracket
	for i, x := range xs {
		if fs[i] == 0 {
			out = append(out, roots.Bracket{A: x, B: x})
			continue
		}
		if i == len(xs)-1 || fs[i+1] == 0 || math.IsNaN(fs[i]) || math.IsNaN(fs[i+1]) {
			continue
		}
		if math.Signbit(fs[i]) != math.Signbit(fs[i+1]) {
			out = append(out, roots.Bracket{A: x, B: xs[i+1]})
		}
	}
	return out, nil
}

// FindAll bisects every bracket Scan finds. Brackets that fail to converge
// are reported in the joined error; the roots found are still returned.
func FindAll(f roots.Func, lo, hi float64, n int, opts roots.Options) ([]float64, error) {
	brackets, err := Scan(f, lo, hi, n)
	if err != nil {
		return nil, err
	}

	var found []float64
	var errs []error
	for _, br := range brackets {
		res, err := roots.Bisection(f, br.A, br.B, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("bracket [%g, %g]: %w", br.A, br.B, err))
			continue
		}
		found = append(found, res.Root)
	}
	return found, errors.Join(errs...)
}
