package roots

import (
	"errors"
	"math"
	"testing"
)

func TestBisection_Sqrt2(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	res, err := Bisection(f, 1, 2, Options{Tolerance: 1e-9})
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-9 {
		t.Errorf("expected %.12f, got %.12f", math.Sqrt2, res.Root)
	}
	if res.History != nil {
		t.Error("history should be nil when not requested")
	}
}

func TestBisection_InvalidBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }

	_, err := Bisection(f, 0, 1, Options{})
	if !errors.Is(err, ErrInvalidBracket) {
		t.Fatalf("expected ErrInvalidBracket, got %v", err)
	}

	var serr *SolverError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SolverError, got %T", err)
	}
	if serr.Method != MethodBisection {
		t.Errorf("expected method bisection, got %s", serr.Method)
	}
}

func TestBisection_EndpointRoot(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{"left endpoint", func(x float64) float64 { return x - 3 }, 3, 6, 3},
		{"right endpoint", func(x float64) float64 { return x + 2 }, -4, -2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Bisection(tt.f, tt.a, tt.b, Options{History: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Root != tt.want {
				t.Errorf("expected %v, got %v", tt.want, res.Root)
			}
			if res.Iterations != 0 {
				t.Errorf("expected 0 iterations, got %d", res.Iterations)
			}
			if len(res.History) != 1 || res.History[0] != tt.want {
				t.Errorf("expected history [%v], got %v", tt.want, res.History)
			}
		})
	}
}

func TestBisection_WidthHalves(t *testing.T) {
	f := func(x float64) float64 { return x - 0.3 }
	a, b, tol := 0.0, 1.0, 1e-10

	res, err := Bisection(f, a, b, Options{Tolerance: tol, History: true})
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}

	limit := int(math.Ceil(math.Log2((b - a) / tol)))
	if len(res.History) > limit {
		t.Errorf("expected at most %d iterations, got %d", limit, len(res.History))
	}

	// consecutive midpoints sit half of the previous bracket width apart
	width := b - a
	for k := 1; k < len(res.History); k++ {
		width /= 2
		step := math.Abs(res.History[k] - res.History[k-1])
		if math.Abs(step-width/2) > 1e-15 {
			t.Fatalf("iteration %d: expected step %g, got %g", k, width/2, step)
		}
	}
}

func TestBisection_NoConvergence(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	_, err := Bisection(f, 1, 2, Options{Tolerance: 1e-12, MaxIter: 3, History: true})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence, got %v", err)
	}

	var serr *SolverError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SolverError, got %T", err)
	}
	if len(serr.History) != 3 {
		t.Errorf("expected partial history of 3, got %v", serr.History)
	}
	if serr.Iteration != 3 {
		t.Errorf("expected failure at iteration 3, got %d", serr.Iteration)
	}
}

func TestBisection_ReversedBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	res, err := Bisection(f, 2, 1, Options{Tolerance: 1e-9})
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-9 {
		t.Errorf("expected %.12f, got %.12f", math.Sqrt2, res.Root)
	}
}

func TestBisection_InvalidOptions(t *testing.T) {
	f := func(x float64) float64 { return x }

	tests := []struct {
		name string
		opts Options
	}{
		{"negative tolerance", Options{Tolerance: -1}},
		{"nan tolerance", Options{Tolerance: math.NaN()}},
		{"negative max iter", Options{MaxIter: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bisection(f, -1, 1, tt.opts)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
