package expr

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootfind/internal/roots"
)

func TestCompile_Eval(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x**3 - 9*x + 5", 2, -5},
		{"x^3 - 9*x + 5", 2, -5},
		{"cos(x) - x", 0, 1},
		{"sin(pi / 2) * x", 3, 3},
		{"exp(x) - e", 1, 0},
		{"pow(x, 2) - 4", 2, 0},
		{"sqrt(abs(x))", -9, 3},
		{"ln(x) + log10(100)", 1, 2},
		{"-x^2 + 4", 3, -5},
		{"-x^2", 3, -9},
		{"2^3^2", 0, 512},
		{"x^-1", 4, 0.25},
		{"2^-x^2", 1, 0.5},
		{"(x + 1)^2", 2, 9},
		{"-sin(x)^2 + 1", 0, 1},
		{"pow(x, 2)^2", 2, 16},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Compile(tt.src)
			require.NoError(t, err)

			got, err := e.Eval(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Compile("x + y")
	assert.ErrorIs(t, err, ErrUnknownVariable)

	for _, src := range []string{"x + (", "x)", "^2", "x^", "x^*2", "x + 'a'"} {
		_, err = Compile(src)
		assert.Error(t, err, src)
	}
}

func TestRewritePowers(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x^2", "(x ** 2)"},
		{"-x^2 + 4", "- (x ** 2) + 4"},
		{"2^3^2", "(2 ** (3 ** 2))"},
		{"2^-x", "(2 ** (-x))"},
		{"sin(x)^2", "(sin(x) ** 2)"},
		{"x**3 - 9*x", "x ** 3 - 9 * x"},
		{"pow(x, 2) <= 1", "pow(x , 2) <= 1"},
	}

	for _, tt := range tests {
		got, err := rewritePowers(tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, got)
	}
}

func TestBisection_NegatedSquare(t *testing.T) {
	f := MustCompile("-x^2 + 4").Func(nil)

	res, err := roots.Bisection(f, 0, 3, roots.Options{Tolerance: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, 2, res.Root, 1e-8)
}

func TestEval_NotNumeric(t *testing.T) {
	e, err := Compile("x > 1")
	require.NoError(t, err)

	v, err := e.Eval(2)
	assert.ErrorIs(t, err, ErrNotNumeric)
	assert.True(t, math.IsNaN(v))
}

func TestFunc_FeedsSolver(t *testing.T) {
	e := MustCompile("x^2 - 2")

	var errs []error
	f := e.Func(func(err error) { errs = append(errs, err) })

	res, err := roots.Bisection(f, 1, 2, roots.Options{Tolerance: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-9)
	assert.Empty(t, errs)
}

func TestFunc_ReportsErrors(t *testing.T) {
	e := MustCompile("x > 0")

	var got error
	f := e.Func(func(err error) { got = err })

	assert.True(t, math.IsNaN(f(1)))
	assert.ErrorIs(t, got, ErrNotNumeric)
}

func TestExpr_ConcurrentEval(t *testing.T) {
	e := MustCompile("x*x + 1")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(x float64) {
			defer wg.Done()
			v, err := e.Eval(x)
			assert.NoError(t, err)
			assert.Equal(t, x*x+1, v)
		}(float64(i))
	}
	wg.Wait()
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("") })
	assert.Equal(t, "x + 1", MustCompile(" x + 1 ").String())
}
