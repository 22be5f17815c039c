package metrics

import "github.com/san-kum/rootfind/internal/roots"

// Metric accumulates a diagnostic over the iterates of one solve.
type Metric interface {
	Name() string
	Observe(k int, x, fx float64)
	Value() float64
	Reset()
}

// ObserveHistory evaluates f at every iterate and feeds the metrics.
func ObserveHistory(f roots.Func, history []float64, ms ...Metric) map[string]float64 {
	values := make([]float64, len(history))
	for k, x := range history {
		values[k] = f(x)
	}
	return ObservePoints(history, values, ms...)
}

// ObservePoints resets every metric, feeds it the iterates xs with their
// function values fxs in order, and returns the values by metric name.
func ObservePoints(xs, fxs []float64, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for k := range xs {
		for _, m := range ms {
			m.Observe(k, xs[k], fxs[k])
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return values
}
