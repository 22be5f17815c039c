package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/rootfind/internal/accuracy"
	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/expr"
	"github.com/san-kum/rootfind/internal/metrics"
	"github.com/san-kum/rootfind/internal/roots"
	"github.com/san-kum/rootfind/internal/storage"
	"github.com/san-kum/rootfind/internal/telemetry"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Run is the outcome of one solve, successful or not.
type Run struct {
	Config *config.Config
	Method roots.Method
	Result roots.Result
	// History holds the iterates, including the partial path of a failed
	// solve. Values holds f at each of them.
	History     []float64
	Values      []float64
	Evaluations int64
	Elapsed     time.Duration
	Metrics     map[string]float64
	Err         error
}

func (r *Run) Converged() bool {
	return r.Err == nil
}

func (r *Run) methodName() string {
	if r.Method == 0 {
		return r.Config.Method
	}
	return r.Method.String()
}

// Points pairs each iterate with its function value. Iterates without a
// value, as after a canceled run, get NaN.
func (r *Run) Points() []storage.Point {
	points := make([]storage.Point, len(r.History))
	for k, x := range r.History {
		fx := math.NaN()
		if k < len(r.Values) {
			fx = r.Values[k]
		}
		points[k] = storage.Point{K: k, X: x, FX: fx}
	}
	return points
}

// Metadata describes the run for the store.
func (r *Run) Metadata() storage.RunMetadata {
	meta := storage.RunMetadata{
		Method:      r.methodName(),
		Function:    r.Config.Function,
		Derivative:  r.Config.Derivative,
		A:           r.Config.A,
		B:           r.Config.B,
		X0:          r.Config.X0,
		Tolerance:   r.Config.Tolerance,
		MaxIter:     r.Config.MaxIter,
		Converged:   r.Converged(),
		Root:        r.Result.Root,
		Iterations:  r.Result.Iterations,
		Evaluations: r.Evaluations,
		ElapsedNs:   r.Elapsed.Nanoseconds(),
		Metrics:     r.Metrics,
	}
	if r.Err != nil {
		meta.Error = r.Err.Error()
	}
	return meta
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithRecorder(r *telemetry.Recorder) Option {
	return func(e *Experiment) { e.recorder = r }
}

type Experiment struct {
	cfg      *config.Config
	f, df    *expr.Expr
	metrics  []metrics.Metric
	logger   *slog.Logger
	recorder *telemetry.Recorder
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup compiles the configured expressions and attaches metrics. Metrics
// need the iteration history, so attaching any turns history capture on.
func (e *Experiment) Setup(ms []metrics.Metric) error {
	f, err := expr.Compile(e.cfg.Function)
	if err != nil {
		return fmt.Errorf("function: %w", err)
	}
	e.f = f

	if e.cfg.Derivative != "" {
		df, err := expr.Compile(e.cfg.Derivative)
		if err != nil {
			return fmt.Errorf("derivative: %w", err)
		}
		e.df = df
	}

	e.metrics = ms
	return nil
}

// Run solves the problem. The function is evaluated through a guard that
// counts calls and stops producing values once ctx is done; the solver then
// runs out its iteration bound and the run reports the context error.
// A non-nil Run is returned whenever Setup succeeded.
func (e *Experiment) Run(ctx context.Context) (*Run, error) {
	if e.f == nil {
		return nil, ErrNotSetup
	}

	g := &guard{ctx: ctx}
	f := g.wrap(e.f.Func(g.fail))
	var df roots.Func
	if e.df != nil {
		df = g.wrap(e.df.Func(g.fail))
	}

	cfg := e.cfg.Clone()
	cfg.History = cfg.History || len(e.metrics) > 0

	run := &Run{Config: cfg}

	plan, err := roots.Resolve(cfg.Method, f, cfg.RootOptions(df)...)
	if err != nil {
		run.Err = err
		e.observe(run)
		return run, err
	}
	run.Method = plan.Method

	start := time.Now()
	res, err := plan.Run()
	run.Elapsed = time.Since(start)
	run.Evaluations = g.evals.Load()

	run.Err = err
	if err == nil {
		run.Result = res
		run.History = res.History
	} else {
		var serr *roots.SolverError
		if errors.As(err, &serr) {
			run.History = serr.History
			run.Result.Iterations = serr.Iteration
			run.Result.Root = serr.X
		}
	}

	// A guard error outranks whatever the solver made of the NaNs it saw.
	gerr := g.error()
	if gerr != nil {
		run.Err = gerr
	} else {
		e.evaluate(run)
	}
	e.observe(run)
	return run, run.Err
}

func (e *Experiment) evaluate(run *Run) {
	fn := e.f.Func(nil)
	run.Values = make([]float64, len(run.History))
	for k, x := range run.History {
		run.Values[k] = fn(x)
	}

	run.Metrics = metrics.ObservePoints(run.History, run.Values, e.metrics...)
	if run.Converged() && e.cfg.Exact != nil {
		exact := *e.cfg.Exact
		run.Metrics["abs_error"] = accuracy.Absolute(exact, run.Result.Root, accuracy.MaxDigits)
		if rel, err := accuracy.Relative(exact, run.Result.Root, accuracy.MaxDigits); err == nil {
			run.Metrics["rel_error"] = rel
		}
	}
}

func (e *Experiment) observe(run *Run) {
	method := run.methodName()

	if run.Err != nil {
		e.logger.Warn("solve failed",
			"method", method,
			"function", e.cfg.Function,
			"iterations", run.Result.Iterations,
			"evaluations", run.Evaluations,
			"err", run.Err,
		)
	} else {
		e.logger.Debug("solve converged",
			"method", method,
			"root", run.Result.Root,
			"iterations", run.Result.Iterations,
			"evaluations", run.Evaluations,
			"elapsed", run.Elapsed,
		)
	}

	if e.recorder != nil {
		e.recorder.Observe(method, run.Result.Iterations, run.Evaluations, run.Err)
	}
}

type guard struct {
	ctx   context.Context
	evals atomic.Int64

	mu  sync.Mutex
	err error
}

func (g *guard) wrap(f roots.Func) roots.Func {
	return func(x float64) float64 {
		g.evals.Add(1)
		if err := g.ctx.Err(); err != nil {
			g.fail(err)
			return math.NaN()
		}
		return f(x)
	}
}

// fail keeps the first error seen.
func (g *guard) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
	}
}

func (g *guard) error() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
