package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/rootfind/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(3, 2)
	c.Set(0, 0)
	c.Set(5, 7)
	out := CanvasToSVG(c, 4)

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if !strings.Contains(out, `width="24" height="32"`) {
		t.Errorf("unexpected size:\n%s", out)
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(out, `cx="2.0" cy="2.0"`) || !strings.Contains(out, `cx="22.0" cy="30.0"`) {
		t.Errorf("dots at wrong positions:\n%s", out)
	}
}

func TestLineSVG(t *testing.T) {
	if LineSVG([]Point{{0, 0}}, 100, 50, "#fff") != "" {
		t.Error("a single point should give empty output")
	}

	out := LineSVG([]Point{{0, 0}, {1, 1}, {math.NaN(), 2}, {2, 0}}, 100, 50, "#fff")
	if !strings.Contains(out, `d="M`) {
		t.Fatalf("missing path:\n%s", out)
	}
	if n := strings.Count(out, " L"); n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
	if n := strings.Count(out, "<circle"); n != 3 {
		t.Errorf("expected 3 vertices, got %d", n)
	}
}

func TestConvergenceSVG(t *testing.T) {
	out := ConvergenceSVG([]float64{1, 1e-2, 1e-5, 0}, 200, 100)
	if n := strings.Count(out, "<circle"); n != 4 {
		t.Errorf("expected 4 vertices, got %d", n)
	}
	if ConvergenceSVG([]float64{1}, 200, 100) != "" {
		t.Error("a single value has no curve")
	}
}
