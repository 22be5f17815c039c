package metrics

import "math"

// Order estimates the order of convergence q from the last three steps d:
//
//	q ≈ ln(|d_k| / |d_{k-1}|) / ln(|d_{k-1}| / |d_{k-2}|)
//
// Newton near a simple root gives about 2, secant about 1.6, bisection 1.
type Order struct {
	xs []float64
}

func NewOrder() *Order {
	return &Order{xs: make([]float64, 0, 4)}
}

func (o *Order) Name() string {
	return "order"
}

func (o *Order) Observe(k int, x, fx float64) {
	if len(o.xs) == 4 {
		copy(o.xs, o.xs[1:])
		o.xs = o.xs[:3]
	}
	o.xs = append(o.xs, x)
}

func (o *Order) Value() float64 {
	if len(o.xs) < 4 {
		return math.NaN()
	}

	d0 := math.Abs(o.xs[1] - o.xs[0])
	d1 := math.Abs(o.xs[2] - o.xs[1])
	d2 := math.Abs(o.xs[3] - o.xs[2])
	if d0 == 0 || d1 == 0 || d2 == 0 || d1 == d0 {
		return math.NaN()
	}
	return math.Log(d2/d1) / math.Log(d1/d0)
}

func (o *Order) Reset() {
	o.xs = o.xs[:0]
}
