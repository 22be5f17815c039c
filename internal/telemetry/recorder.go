// Package telemetry counts solver outcomes with Prometheus collectors.
//
// Each Recorder owns its registry, so recorders never collide and tests
// can create as many as they like.
package telemetry

import (
	"context"
	"errors"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/rootfind/internal/roots"
)

const namespace = "rootfind"

// Outcome labels.
const (
	OutcomeConverged    = "converged"
	OutcomeNoConverge   = "no_convergence"
	OutcomeBadBracket   = "invalid_bracket"
	OutcomeZeroSlope    = "derivative_zero"
	OutcomeUndefined    = "undefined_slope"
	OutcomeBadParameter = "invalid_parameter"
	OutcomeCanceled     = "canceled"
	OutcomeOther        = "error"
)

type Recorder struct {
	registry    *prometheus.Registry
	solves      *prometheus.CounterVec
	iterations  *prometheus.HistogramVec
	evaluations *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solver calls by method and outcome.",
		}, []string{"method", "outcome"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iterations",
			Help:      "Iterations consumed per successful solve.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"method"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Function evaluations by method.",
		}, []string{"method"}),
	}
	r.registry.MustRegister(r.solves, r.iterations, r.evaluations)
	return r
}

// Registry exposes the collectors, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one solve. err is the solver error, nil on success.
func (r *Recorder) Observe(method string, iterations int, evaluations int64, err error) {
	outcome := Outcome(err)
	r.solves.WithLabelValues(method, outcome).Inc()
	r.evaluations.WithLabelValues(method).Add(float64(evaluations))
	if outcome == OutcomeConverged {
		r.iterations.WithLabelValues(method).Observe(float64(iterations))
	}
}

// Outcome maps a solver error to its label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConverged
	case errors.Is(err, roots.ErrNoConvergence):
		return OutcomeNoConverge
	case errors.Is(err, roots.ErrInvalidBracket):
		return OutcomeBadBracket
	case errors.Is(err, roots.ErrDerivativeZero):
		return OutcomeZeroSlope
	case errors.Is(err, roots.ErrUndefinedSlope):
		return OutcomeUndefined
	case errors.Is(err, roots.ErrInvalidParameter), errors.Is(err, roots.ErrMissingParameter):
		return OutcomeBadParameter
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeOther
	}
}

// Row summarizes one method.
type Row struct {
	Method      string
	Outcomes    map[string]float64
	Solves      float64
	Evaluations float64
	MeanIter    float64
}

// Summary gathers the registry into one row per method, sorted by name.
func (r *Recorder) Summary() ([]Row, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*Row)
	row := func(method string) *Row {
		if rows[method] == nil {
			rows[method] = &Row{Method: method, Outcomes: make(map[string]float64)}
		}
		return rows[method]
	}

	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			method := labels["method"]

			switch fam.GetName() {
			case namespace + "_solves_total":
				v := m.GetCounter().GetValue()
				row(method).Outcomes[labels["outcome"]] += v
				row(method).Solves += v
			case namespace + "_evaluations_total":
				row(method).Evaluations += m.GetCounter().GetValue()
			case namespace + "_iterations":
				h := m.GetHistogram()
				if h.GetSampleCount() > 0 {
					row(method).MeanIter = h.GetSampleSum() / float64(h.GetSampleCount())
				}
			}
		}
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}
