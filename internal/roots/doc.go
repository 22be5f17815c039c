// Package roots locates zeros of continuous real functions of one variable.
//
// Three classical iterative solvers are provided:
//
//   - [Bisection]: bracket halving, requires a sign change over [a, b]
//   - [Newton]: tangent-line iteration from a single guess
//   - [Secant]: two-point finite-difference iteration, no derivative
//
// [Find] selects a solver by name (aliases such as "b", "bissecao" or "nr"
// are accepted), fills in defaults and forwards the call.
//
// # Example
//
//	f := func(x float64) float64 { return x*x - 2 }
//	res, err := roots.Find("bisection", f, roots.WithBracket(1, 2), roots.WithHistory())
//	if errors.Is(err, roots.ErrInvalidBracket) {
//		// no sign change over [1, 2]
//	}
//
// # Thread Safety
//
// Solvers keep no state between calls. Concurrent calls are safe as long as
// the supplied functions are safe to evaluate concurrently.
package roots
