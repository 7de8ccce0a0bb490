// Package automation runs scripted sequences of validated problems from a
// single YAML scenario file.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/experiment"
)

// Scenario is a named list of problems run in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one problem of a scenario. Problem holds the fields of a
// problem file; Preset, when set, supplies the values Problem leaves out.
type ScenarioStep struct {
	Name    string    `yaml:"name"`
	Model   string    `yaml:"model"`
	Preset  string    `yaml:"preset"`
	Problem yaml.Node `yaml:"problem"`
}

// StepOutcome pairs a step with the problem it ran, the coefficient routine
// it started with and its outcome.
type StepOutcome struct {
	Name    string
	Config  *config.Config
	Jet     string
	Outcome *experiment.Outcome
}

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
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config decodes the step's problem over its preset, or over the defaults
// when it has none.
func (s *ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Model, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s for model %s", s.Preset, s.Model)
		}
	}
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if !s.Problem.IsZero() {
		if err := s.Problem.Decode(cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
		}
	}
	return cfg, nil
}

// RunScenario runs every step in order and stops at the first step that
// cannot be set up or run, returning the outcomes of the steps before it.
// A step whose integration stops early is not a failure; its outcome
// carries the step error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]StepOutcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepOutcome, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		step := &scenario.Steps[i]
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		logger.Info("running step", slog.String("scenario", scenario.Name),
			slog.String("step", name), slog.Int("index", i+1), slog.Int("of", len(scenario.Steps)))

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %s: %w", name, err)
		}

		exp := experiment.New(cfg, registry, logger.With(slog.String("step", name)))
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %s setup: %w", name, err)
		}

		out, err := exp.Run()
		if err != nil {
			return results, fmt.Errorf("step %s run: %w", name, err)
		}

		results = append(results, StepOutcome{Name: name, Config: cfg, Jet: exp.JetName(), Outcome: out})
	}

	return results, nil
}
