package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/experiment"
)

var ErrNoCandidate = errors.New("optim: no parameter combination converged")

// Candidate is one evaluated point of the grid.
type Candidate struct {
	Params map[string]float64
	Value  float64
	Run    *experiment.Run
}

// GridSearch tries every combination of parameter values and keeps the
// converged run with the lowest objective.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	opts       []experiment.Option
}

func NewGridSearch(params []string, ranges [][]float64, opts ...experiment.Option) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, opts: opts}
}

// Objective reads the value to minimize from a run: "iterations",
// "evaluations", "elapsed" (seconds) or any metric name.
func Objective(run *experiment.Run, name string) (float64, bool) {
	switch name {
	case "iterations":
		return float64(run.Result.Iterations), true
	case "evaluations":
		return float64(run.Evaluations), true
	case "elapsed":
		return run.Elapsed.Seconds(), true
	}
	v, ok := run.Metrics[name]
	return v, ok && !math.IsNaN(v)
}

func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective string, reg *experiment.Registry) (Candidate, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Candidate{}, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if err := base.Clone().Set(name, 0); err != nil {
			return Candidate{}, err
		}
	}
	if reg == nil {
		reg = experiment.NewRegistry()
	}

	best := Candidate{Value: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, map[string]float64{}, base, objective, reg, &best)
	if err != nil {
		return Candidate{}, err
	}
	if best.Run == nil {
		return Candidate{}, ErrNoCandidate
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective string,
	reg *experiment.Registry,
	best *Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.Set(k, v); err != nil {
				return err
			}
		}

		exp := experiment.New(cfg, g.opts...)
		if err := exp.Setup(reg.DefaultMetrics()); err != nil {
			return err
		}
		run, err := exp.Run(ctx)
		if err != nil {
			return nil
		}

		val, ok := Objective(run, objective)
		if ok && val < best.Value {
			params := make(map[string]float64, len(current))
			for k, v := range current {
				params[k] = v
			}
			*best = Candidate{Params: params, Value: val, Run: run}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		if err := g.searchRecursive(ctx, depth+1, next, base, objective, reg, best); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// ParseRange parses "name=lo:hi:n" or "name=v".
func ParseRange(s string) (string, []float64, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("optim: range %q: want name=lo:hi:n", s)
	}

	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
		}
		return name, []float64{v}, nil
	case 3:
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
		}
		hi, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return "", nil, fmt.Errorf("optim: range %q: bad point count", s)
		}
		return name, Linspace(lo, hi, n), nil
	}
	return "", nil, fmt.Errorf("optim: range %q: want name=lo:hi:n", s)
}
