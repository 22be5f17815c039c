package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootfind/internal/roots"
)

// residualFloor bounds log10|f| from below so exact roots stay plottable.
const residualFloor = -16

// LogResiduals returns log10|f(x_k)| for each value, dropping non-finite
// entries.
func LogResiduals(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		l := float64(residualFloor)
		if v != 0 {
			l = math.Max(math.Log10(math.Abs(v)), residualFloor)
		}
		out = append(out, l)
	}
	return out
}

// ConvergencePlot charts log10|f(x_k)| against the iteration number.
func ConvergencePlot(values []float64, width, height int) string {
	data := LogResiduals(values)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10 |f(x_k)|"),
	)
}

// IteratePlot charts x_k against the iteration number.
func IteratePlot(history []float64, width, height int) string {
	data := finite(history)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("x_k"),
	)
}

// Span returns a horizontal window covering the iterates, or [lo, hi] when
// the history is empty, widened by a fifth on each side.
func Span(history []float64, lo, hi float64) (float64, float64) {
	xs := finite(history)
	if len(xs) > 0 {
		lo, hi = xs[0], xs[0]
		for _, x := range xs {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if lo == hi {
		lo--
		hi++
	}
	pad := (hi - lo) / 5
	return lo - pad, hi + pad
}

// DrawFunction draws f over [lo, hi] with the x axis and the iterates
// marked at (x_k, f(x_k)). Only the first upto iterates are marked; pass
// len(history) for all of them.
func DrawFunction(c *Canvas, f roots.Func, lo, hi float64, history []float64, upto int) Window {
	cw, _ := c.Dots()
	xs := make([]float64, cw)
	ys := make([]float64, cw)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(cw-1)
		ys[i] = f(xs[i])
	}

	w := Fit(lo, hi, append(ys, 0))

	if w.YMin < 0 && w.YMax > 0 {
		for i := 0; i < cw; i += 2 {
			if px, py, ok := w.Project(c, xs[i], 0); ok {
				c.Set(px, py)
			}
		}
	}

	var prev [2]int
	havePrev := false
	for i := range xs {
		px, py, ok := w.Project(c, xs[i], ys[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(prev[0], prev[1], px, py)
		} else {
			c.Set(px, py)
		}
		prev, havePrev = [2]int{px, py}, true
	}

	for k := 0; k < upto && k < len(history); k++ {
		if px, py, ok := w.Project(c, history[k], f(history[k])); ok {
			c.Mark(px, py)
		}
	}
	return w
}

// FunctionPlot renders f over [lo, hi] with every iterate marked.
func FunctionPlot(f roots.Func, lo, hi float64, history []float64, width, height int) string {
	c := NewCanvas(width, height)
	DrawFunction(c, f, lo, hi, history, len(history))
	return c.String()
}

func finite(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
