package config

import (
	"math"
	"sort"
)

// Presets are named problems, mostly the worked examples the solvers were
// validated against.
var Presets = map[string]*Config{
	"cubic": {
		Method: "bisection", Function: "x^3 - 9*x + 5",
		A: Float(0), B: Float(2), Tolerance: 1e-6, MaxIter: 100,
	},
	"cubic-newton": {
		Method: "newton", Function: "x^3 - 9*x + 5", Derivative: "3*x^2 - 9",
		X0: Float(3), Tolerance: 1e-6, MaxIter: 100,
	},
	"sqrt2": {
		Method: "bisection", Function: "x^2 - 2",
		A: Float(1), B: Float(2), Tolerance: 1e-10, MaxIter: 100, Exact: Float(math.Sqrt2),
	},
	"dottie": {
		Method: "newton", Function: "cos(x) - x",
		A: Float(0), B: Float(1), Tolerance: 1e-10, MaxIter: 100, Exact: Float(0.7390851332151607),
	},
	"cube-root": {
		Method: "secant", Function: "x^3 - 8",
		A: Float(0), B: Float(3), Tolerance: 1e-6, MaxIter: 100, Exact: Float(2),
	},
	"wallis": {
		Method: "secant", Function: "x^3 - 2*x - 5",
		A: Float(2), B: Float(3), Tolerance: 1e-8, MaxIter: 100, Exact: Float(2.0945514815423265),
	},
	"pi": {
		Method: "secant", Function: "sin(x)",
		A: Float(2), B: Float(4), Tolerance: 1e-10, MaxIter: 100, Exact: Float(math.Pi),
	},
	"oscillating": {
		Method: "secant", Function: "sin(1/x)",
		A: Float(0.1), B: Float(0.2), Tolerance: 1e-6, MaxIter: 5,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
