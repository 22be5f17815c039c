package roots

import "math"

// Bisection halves [a, b] until the midpoint residual or the half-width drops
// below the tolerance. f(a) and f(b) must not share a strict sign.
func Bisection(f Func, a, b float64, opts Options) (Result, error) {
	opts, err := opts.resolve()
	if err != nil {
		return Result{}, err
	}
	tol := opts.Tolerance
	hist := newHistory(opts.History, opts.MaxIter)

	fa := f(a)
	fb := f(b)
	if fa*fb > 0 {
		return Result{}, fail(MethodBisection, 0, a, hist, ErrInvalidBracket)
	}

	if math.Abs(fa) < tol {
		hist.add(a)
		return Result{Root: a, History: hist.values()}, nil
	}
	if math.Abs(fb) < tol {
		hist.add(b)
		return Result{Root: b, History: hist.values()}, nil
	}

	c := a
	for k := 1; k <= opts.MaxIter; k++ {
		c = (a + b) / 2
		fc := f(c)
		hist.add(c)

		if math.Abs(fc) < tol || math.Abs(b-a)/2 < tol {
			return Result{Root: c, History: hist.values(), Iterations: k}, nil
		}

		if math.Signbit(fc) == math.Signbit(fa) {
			a, fa = c, fc
		} else {
			b = c
		}
	}

	return Result{}, fail(MethodBisection, opts.MaxIter, c, hist, ErrNoConvergence)
}
