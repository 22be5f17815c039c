package roots

import (
	"errors"
	"math"
	"testing"
)

func TestSecant_Constant(t *testing.T) {
	f := func(x float64) float64 { return 5 }

	for _, pair := range [][2]float64{{0, 1}, {-3, 7}, {100, 1e-3}} {
		_, err := Secant(f, pair[0], pair[1], Options{})
		if !errors.Is(err, ErrUndefinedSlope) {
			t.Errorf("start %v: expected ErrUndefinedSlope, got %v", pair, err)
		}
	}
}

func TestSecant_Converges(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{"linear", func(x float64) float64 { return x - 2 }, 0, 3, 2},
		{"quadratic", func(x float64) float64 { return x*x - 4 }, 0, 3, 2},
		{"cubic", func(x float64) float64 { return x*x*x - 8 }, 0, 3, 2},
		{"sine", math.Sin, 2, 4, math.Pi},
		{"exponential", func(x float64) float64 { return math.Exp(x) - 1 }, -1, 1, 0},
		{"negative root", func(x float64) float64 { return 2*x + 1 }, -1, 0, -0.5},
		{"narrow start", func(x float64) float64 { return x - 0.5 }, 0.499, 0.501, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Secant(tt.f, tt.a, tt.b, Options{})
			if err != nil {
				t.Fatalf("secant failed: %v", err)
			}
			if math.Abs(res.Root-tt.want) > 1e-6 {
				t.Errorf("expected %v, got %v", tt.want, res.Root)
			}
		})
	}
}

func TestSecant_HistoryEndsAtRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 8 }

	res, err := Secant(f, 0, 3, Options{History: true})
	if err != nil {
		t.Fatalf("secant failed: %v", err)
	}
	if math.Abs(res.Root-2) > 1e-6 {
		t.Errorf("expected 2, got %v", res.Root)
	}
	if got := res.History[len(res.History)-1]; got != res.Root {
		t.Errorf("last history entry %v differs from root %v", got, res.Root)
	}
	if len(res.History) != res.Iterations {
		t.Errorf("expected one iterate per iteration, got %d for %d", len(res.History), res.Iterations)
	}
}

func TestSecant_Precision(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 2*x - 5 }

	coarse, err := Secant(f, 2, 3, Options{Tolerance: 1e-4})
	if err != nil {
		t.Fatalf("secant failed: %v", err)
	}
	fine, err := Secant(f, 2, 3, Options{Tolerance: 1e-8})
	if err != nil {
		t.Fatalf("secant failed: %v", err)
	}

	if math.Abs(coarse.Root-2.094551) > 1e-3 {
		t.Errorf("coarse root %v too far from 2.094551", coarse.Root)
	}
	if math.Abs(fine.Root-2.094551) > 1e-6 {
		t.Errorf("fine root %v too far from 2.094551", fine.Root)
	}
}

func TestSecant_OscillatingDiverges(t *testing.T) {
	f := func(x float64) float64 {
		if x == 0 {
			return 0
		}
		return math.Sin(1 / x)
	}

	_, err := Secant(f, 0.1, 0.2, Options{MaxIter: 5, History: true})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence, got %v", err)
	}

	var serr *SolverError
	if errors.As(err, &serr) && len(serr.History) != 5 {
		t.Errorf("expected 5 partial iterates, got %d", len(serr.History))
	}
}
