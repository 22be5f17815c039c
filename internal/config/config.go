package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootfind/internal/roots"
)

const (
	DefaultMethod    = "bisection"
	DefaultTolerance = roots.DefaultTolerance
	DefaultMaxIter   = roots.DefaultMaxIter
	DefaultStep      = roots.DefaultStep
)

// Config describes one root-finding problem. A, B and X0 are optional;
// which of them are needed depends on the method.
type Config struct {
	Method     string   `yaml:"method"`
	Function   string   `yaml:"function"`
	Derivative string   `yaml:"derivative,omitempty"`
	A          *float64 `yaml:"a,omitempty"`
	B          *float64 `yaml:"b,omitempty"`
	X0         *float64 `yaml:"x0,omitempty"`
	Tolerance  float64  `yaml:"tolerance"`
	MaxIter    int      `yaml:"max_iter"`
	Step       float64  `yaml:"step"`
	History    bool     `yaml:"history"`
	// Exact is a known root used to report the approximation error.
	Exact *float64 `yaml:"exact,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:    DefaultMethod,
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
		Step:      DefaultStep,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options returns the solver options carried by the config.
func (c *Config) Options() roots.Options {
	return roots.Options{
		Tolerance: c.Tolerance,
		MaxIter:   c.MaxIter,
		Step:      c.Step,
		History:   c.History,
	}
}

// RootOptions translates the config into dispatcher options. The derivative
// is passed separately since it needs compiling.
func (c *Config) RootOptions(df roots.Func) []roots.Option {
	opts := []roots.Option{roots.WithOptions(c.Options())}
	if c.A != nil {
		opts = append(opts, roots.WithLower(*c.A))
	}
	if c.B != nil {
		opts = append(opts, roots.WithUpper(*c.B))
	}
	if c.X0 != nil {
		opts = append(opts, roots.WithGuess(*c.X0))
	}
	if df != nil {
		opts = append(opts, roots.WithDerivative(df))
	}
	return opts
}

// Clone returns a deep copy so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	out.A = clonePtr(c.A)
	out.B = clonePtr(c.B)
	out.X0 = clonePtr(c.X0)
	out.Exact = clonePtr(c.Exact)
	return &out
}

// Params lists the numeric fields Set accepts.
var Params = []string{"a", "b", "x0", "tolerance", "max_iter", "step", "exact"}

// Set assigns a numeric field by its yaml name.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "a":
		c.A = Float(v)
	case "b":
		c.B = Float(v)
	case "x0":
		c.X0 = Float(v)
	case "tolerance", "tol":
		c.Tolerance = v
	case "max_iter", "max-iter":
		c.MaxIter = int(v)
	case "step":
		c.Step = v
	case "exact":
		c.Exact = Float(v)
	default:
		return fmt.Errorf("unknown parameter: %s (use one of %v)", name, Params)
	}
	return nil
}

// Float returns a pointer to v, for the optional fields.
func Float(v float64) *float64 {
	return &v
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
