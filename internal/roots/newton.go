package roots

import "math"

// Newton runs Newton-Raphson from x0. When df is nil the derivative is
// approximated by a central difference with spacing opts.Step.
//
// Each iteration stops on |f(x)| < tol (returning x) or on a step
// |x_new - x| < tol (returning x_new). A derivative with magnitude below
// 1e-12 fails with ErrDerivativeZero instead of taking an unbounded step.
func Newton(f Func, x0 float64, df Func, opts Options) (Result, error) {
	opts, err := opts.resolve()
	if err != nil {
		return Result{}, err
	}
	tol := opts.Tolerance
	deriv := Derivative(f, df, opts.Step)

	hist := newHistory(opts.History, opts.MaxIter+1)
	hist.add(x0)

	x := x0
	for k := 0; k < opts.MaxIter; k++ {
		fx := f(x)
		d := deriv(x)
		// Checked before the residual: a stationary start such as x^3 at 0
		// fails even though it is already a root.
		if math.Abs(d) < minDerivative {
			return Result{}, fail(MethodNewton, k, x, hist, ErrDerivativeZero)
		}
		if math.Abs(fx) < tol {
			return Result{Root: x, History: hist.values(), Iterations: k}, nil
		}

		next := x - fx/d
		hist.add(next)
		if math.Abs(next-x) < tol {
			return Result{Root: next, History: hist.values(), Iterations: k + 1}, nil
		}
		x = next
	}

	return Result{}, fail(MethodNewton, opts.MaxIter, x, hist, ErrNoConvergence)
}
