package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots. dotBits[row][col] is the bit of each dot
// relative to the empty cell U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const blankCell rune = 0x2800

// Canvas is a grid of braille cells addressed in dots: Width*2 by Height*4.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set lights the dot at (x, y); y grows downwards. Out of range is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blankCell
		}
	}
}

// DrawLine draws a Bresenham line between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// Mark draws a small cross centred on (x, y).
func (c *Canvas) Mark(x, y int) {
	for d := -1; d <= 1; d++ {
		c.Set(x+d, y)
		c.Set(x, y+d)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Window maps a rectangle of the plane onto a canvas.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Fit returns a window spanning [lo, hi] horizontally and the finite range
// of ys vertically, padded by a tenth on each side.
func Fit(lo, hi float64, ys []float64) Window {
	w := Window{XMin: lo, XMax: hi, YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		w.YMin = math.Min(w.YMin, y)
		w.YMax = math.Max(w.YMax, y)
	}
	if w.YMin > w.YMax {
		w.YMin, w.YMax = -1, 1
	}
	if w.YMin == w.YMax {
		w.YMin--
		w.YMax++
	}
	pad := (w.YMax - w.YMin) / 10
	w.YMin -= pad
	w.YMax += pad
	return w
}

// Project converts a point to dot coordinates on c. ok is false for
// non-finite input.
func (w Window) Project(c *Canvas, x, y float64) (px, py int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	cw, ch := c.Dots()
	fx := (x - w.XMin) / (w.XMax - w.XMin)
	fy := (w.YMax - y) / (w.YMax - w.YMin)
	// Far off-window points still draw partial lines toward the edge.
	fx = math.Max(-1, math.Min(2, fx))
	fy = math.Max(-1, math.Min(2, fy))
	return int(math.Round(fx * float64(cw-1))), int(math.Round(fy * float64(ch-1))), true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
