package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rootfind/internal/metrics"
	"github.com/san-kum/rootfind/internal/roots"
)

// Registry names metric factories. Metrics are stateful, so every call
// builds fresh instances.
type Registry struct {
	metrics map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() metrics.Metric),
	}

	r.metrics["residual"] = func() metrics.Metric { return metrics.NewResidual() }
	r.metrics["contraction"] = func() metrics.Metric { return metrics.NewContraction() }
	r.metrics["order"] = func() metrics.Metric { return metrics.NewOrder() }

	return r
}

func (r *Registry) Register(name string, fn func() metrics.Metric) {
	r.metrics[name] = fn
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// GetMetrics resolves a list of names, failing on the first unknown one.
func (r *Registry) GetMetrics(names []string) ([]metrics.Metric, error) {
	ms := make([]metrics.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	var names []string
	for _, m := range roots.Methods() {
		names = append(names, m.String())
	}
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	ms, _ := r.GetMetrics(r.ListMetrics())
	return ms
}
