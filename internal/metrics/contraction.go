package metrics

import "math"

// Contraction is the mean ratio between successive step sizes
// |x_{k+1} - x_k| / |x_k - x_{k-1}|. Bisection sits at 0.5; values at or
// above 1 mean the iterates are not settling.
type Contraction struct {
	prev     float64
	lastStep float64
	sum      float64
	ratios   int
	samples  int
}

func NewContraction() *Contraction {
	return &Contraction{}
}

func (c *Contraction) Name() string {
	return "contraction"
}

func (c *Contraction) Observe(k int, x, fx float64) {
	c.samples++
	if c.samples == 1 {
		c.prev = x
		return
	}

	step := math.Abs(x - c.prev)
	if c.samples > 2 && c.lastStep > 0 {
		c.sum += step / c.lastStep
		c.ratios++
	}
	c.lastStep = step
	c.prev = x
}

func (c *Contraction) Value() float64 {
	if c.ratios == 0 {
		return math.NaN()
	}
	return c.sum / float64(c.ratios)
}

func (c *Contraction) Reset() {
	*c = Contraction{}
}
