// Package expr compiles textual functions of x, such as "x^3 - 9*x + 5",
// into callables for the root finders.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/san-kum/rootfind/internal/roots"
)

var (
	ErrEmpty           = errors.New("expr: empty expression")
	ErrUnknownVariable = errors.New("expr: unknown variable")
	ErrNotNumeric      = errors.New("expr: expression did not yield a number")
)

// Variable is the name of the free variable.
const Variable = "x"

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

// Expr is a compiled expression. It is safe for concurrent evaluation.
type Expr struct {
	src  string
	eval *govaluate.EvaluableExpression
}

// Compile parses src. pi and e are predefined. "^" is exponentiation with
// the usual precedence: it binds tighter than a leading minus and groups
// right to left, so "-x^2" is -(x^2) and "2^3^2" is 512.
func Compile(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmpty
	}

	rewritten, err := rewritePowers(src)
	if err != nil {
		return nil, fmt.Errorf("expr: parse %q: %w", src, err)
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(rewritten, functions)
	if err != nil {
		return nil, fmt.Errorf("expr: parse %q: %w", src, err)
	}

	for _, v := range parsed.Vars() {
		if _, err := point(0).Get(v); err != nil {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownVariable, v, src)
		}
	}

	return &Expr{src: src, eval: parsed}, nil
}

// MustCompile is Compile for expressions known to be valid.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expr) String() string {
	return e.src
}

// Eval evaluates the expression at x.
func (e *Expr) Eval(x float64) (float64, error) {
	v, err := e.eval.Eval(point(x))
	if err != nil {
		return math.NaN(), fmt.Errorf("expr: eval %q at %g: %w", e.src, x, err)
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return math.NaN(), fmt.Errorf("%w: %q gave %T", ErrNotNumeric, e.src, v)
	}
}

// Func adapts the expression to a roots.Func. Evaluation errors are passed
// to onErr, when non-nil, and evaluate to NaN.
func (e *Expr) Func(onErr func(error)) roots.Func {
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil && onErr != nil {
			onErr(err)
		}
		return v
	}
}

// point binds x and the predefined constants without a per-call map.
type point float64

func (p point) Get(name string) (interface{}, error) {
	switch name {
	case Variable:
		return float64(p), nil
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return math.NaN()
	}
}
