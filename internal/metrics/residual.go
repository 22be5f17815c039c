package metrics

import "math"

// Residual reports |f| at the most recent iterate.
type Residual struct {
	last    float64
	samples int
}

func NewResidual() *Residual {
	return &Residual{}
}

func (r *Residual) Name() string {
	return "residual"
}

func (r *Residual) Observe(k int, x, fx float64) {
	r.last = math.Abs(fx)
	r.samples++
}

func (r *Residual) Value() float64 {
	if r.samples == 0 {
		return math.NaN()
	}
	return r.last
}

func (r *Residual) Reset() {
	r.last = 0
	r.samples = 0
}
