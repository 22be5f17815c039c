package roots

import "fmt"

// Option configures a dispatched solve.
type Option func(*request)

type request struct {
	lower, upper *float64
	guess        *float64
	df           Func
	opts         Options
}

// WithBracket sets both bracket bounds.
func WithBracket(a, b float64) Option {
	return func(r *request) {
		r.lower = &a
		r.upper = &b
	}
}

// WithLower sets the left bound alone; a bracket needs WithUpper as well.
func WithLower(a float64) Option {
	return func(r *request) { r.lower = &a }
}

// WithUpper sets the right bound alone.
func WithUpper(b float64) Option {
	return func(r *request) { r.upper = &b }
}

// WithGuess sets Newton's starting point.
func WithGuess(x0 float64) Option {
	return func(r *request) { r.guess = &x0 }
}

// WithDerivative supplies f' for Newton. Other methods ignore it.
func WithDerivative(df Func) Option {
	return func(r *request) { r.df = df }
}

func WithTolerance(tol float64) Option {
	return func(r *request) { r.opts.Tolerance = tol }
}

func WithMaxIter(n int) Option {
	return func(r *request) { r.opts.MaxIter = n }
}

// WithStep sets the central-difference spacing used by Newton without a derivative.
func WithStep(h float64) Option {
	return func(r *request) { r.opts.Step = h }
}

func WithHistory() Option {
	return func(r *request) { r.opts.History = true }
}

// WithOptions replaces tolerance, iteration bound, step and history flag at once.
func WithOptions(opts Options) Option {
	return func(r *request) { r.opts = opts }
}

// Plan is a fully resolved solver call. Every field the selected method
// reads is populated; Guess is the bracket midpoint when Newton was given
// no explicit starting point.
type Plan struct {
	Method  Method
	F       Func
	Bracket Bracket
	Guess   float64
	DF      Func
	Options Options
}

// Resolve validates a method name and its parameters and fills in defaults.
func Resolve(method string, f Func, opts ...Option) (Plan, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return Plan{}, err
	}
	if f == nil {
		return Plan{}, fmt.Errorf("%w: function", ErrMissingParameter)
	}

	var r request
	for _, opt := range opts {
		opt(&r)
	}
	hasBracket := r.lower != nil && r.upper != nil

	plan := Plan{Method: m, F: f, DF: r.df, Options: r.opts}
	if hasBracket {
		plan.Bracket = Bracket{A: *r.lower, B: *r.upper}
	}

	switch m {
	case MethodBisection, MethodSecant:
		if !hasBracket {
			return Plan{}, fmt.Errorf("%w: %s requires both a and b", ErrMissingParameter, m)
		}
	case MethodNewton:
		switch {
		case r.guess != nil:
			plan.Guess = *r.guess
		case hasBracket:
			plan.Guess = plan.Bracket.Midpoint()
		default:
			return Plan{}, fmt.Errorf("%w: newton requires x0 or both a and b", ErrMissingParameter)
		}
	}

	return plan, nil
}

// Run forwards the plan to its solver.
func (p Plan) Run() (Result, error) {
	switch p.Method {
	case MethodBisection:
		return Bisection(p.F, p.Bracket.A, p.Bracket.B, p.Options)
	case MethodNewton:
		return Newton(p.F, p.Guess, p.DF, p.Options)
	case MethodSecant:
		return Secant(p.F, p.Bracket.A, p.Bracket.B, p.Options)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidMethod, p.Method)
	}
}

// Find resolves the method and parameters and runs the selected solver.
func Find(method string, f Func, opts ...Option) (Result, error) {
	plan, err := Resolve(method, f, opts...)
	if err != nil {
		return Result{}, err
	}
	return plan.Run()
}
