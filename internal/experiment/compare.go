package experiment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/roots"
)

// Compare solves the problem in cfg once per method, concurrently. Runs come
// back in the order of methods. A solver failure stays in its Run.Err; only
// set-up errors (a bad expression or an unknown method) abort the comparison.
func Compare(ctx context.Context, cfg *config.Config, methods []string, reg *Registry, opts ...Option) ([]*Run, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	if len(methods) == 0 {
		for _, m := range roots.Methods() {
			methods = append(methods, m.String())
		}
	}
	for _, name := range methods {
		if _, err := roots.ParseMethod(name); err != nil {
			return nil, err
		}
	}

	runs := make([]*Run, len(methods))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range methods {
		i, name := i, name
		g.Go(func() error {
			c := cfg.Clone()
			c.Method = name

			exp := New(c, opts...)
			if err := exp.Setup(reg.DefaultMetrics()); err != nil {
				return err
			}
			run, _ := exp.Run(ctx)
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
