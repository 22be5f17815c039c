package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/experiment"
)

// Scenario is a batch of problems solved in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one problem of a scenario. A step may start from a preset
// and override any field of it.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	Preset        string `yaml:"preset"`
	config.Config `yaml:",inline"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Problem resolves the step into a full config: defaults, then the preset,
// then the fields set on the step.
func (s ScenarioStep) Problem() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	if s.Method != "" {
		cfg.Method = s.Method
	}
	if s.Function != "" {
		cfg.Function = s.Function
	}
	if s.Derivative != "" {
		cfg.Derivative = s.Derivative
	}
	for _, p := range []struct {
		dst **float64
		src *float64
	}{{&cfg.A, s.A}, {&cfg.B, s.B}, {&cfg.X0, s.X0}, {&cfg.Exact, s.Exact}} {
		if p.src != nil {
			*p.dst = config.Float(*p.src)
		}
	}
	if s.Tolerance != 0 {
		cfg.Tolerance = s.Tolerance
	}
	if s.MaxIter != 0 {
		cfg.MaxIter = s.MaxIter
	}
	if s.Step != 0 {
		cfg.Step = s.Step
	}
	cfg.History = cfg.History || s.History
	return cfg, nil
}

// StepResult pairs a step with its run.
type StepResult struct {
	Name string
	Run  *experiment.Run
}

// RunScenario solves every step. A step whose problem cannot be set up
// aborts the scenario; solver failures are kept in the runs.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, opts ...experiment.Option) ([]StepResult, error) {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg, err := step.Problem()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, opts...)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		run, _ := exp.Run(ctx)
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, StepResult{Name: name, Run: run})
	}

	return results, nil
}

// ParameterSweep solves one problem across a range of values of a single
// parameter.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepResult holds one point of a sweep.
type SweepResult struct {
	Value float64
	Run   *experiment.Run
}

// RunSweep executes a parameter sweep. Steps below 2 sweep only Min.
func RunSweep(ctx context.Context, base *config.Config, sweep ParameterSweep, registry *experiment.Registry, opts ...experiment.Option) ([]SweepResult, error) {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	n := max(1, sweep.Steps)
	results := make([]SweepResult, 0, n)

	for i := 0; i < n; i++ {
		v := sweep.Min
		if n > 1 {
			v = sweep.Min + (sweep.Max-sweep.Min)*float64(i)/float64(n-1)
		}

		cfg := base.Clone()
		if err := cfg.Set(sweep.Param, v); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg, opts...)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return nil, err
		}

		run, _ := exp.Run(ctx)
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: v, Run: run})
	}

	return results, nil
}
