package roots

import "math"

// Secant iterates on the line through the two most recent points, starting
// from (a, b). The points need not bracket a root.
func Secant(f Func, a, b float64, opts Options) (Result, error) {
	opts, err := opts.resolve()
	if err != nil {
		return Result{}, err
	}
	tol := opts.Tolerance
	hist := newHistory(opts.History, opts.MaxIter)

	x0, x1 := a, b
	f0, f1 := f(x0), f(x1)
	for k := 1; k <= opts.MaxIter; k++ {
		if f1 == f0 {
			return Result{}, fail(MethodSecant, k, x1, hist, ErrUndefinedSlope)
		}

		x2 := x1 - f1*(x1-x0)/(f1-f0)
		f2 := f(x2)
		hist.add(x2)

		if math.Abs(f2) < tol || math.Abs(x2-x1) < tol {
			return Result{Root: x2, History: hist.values(), Iterations: k}, nil
		}

		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}

	return Result{}, fail(MethodSecant, opts.MaxIter, x1, hist, ErrNoConvergence)
}
