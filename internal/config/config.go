// Package config reads and writes problem files: the model, its initial box
// and the integration settings of a validated run.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/remainder"
	"github.com/san-kum/tmflow/internal/validated"
)

const (
	DefaultTMax   = 1.0
	DefaultOrderQ = 5
	DefaultOrderT = 15
	DefaultAbsTol = 1e-20
	DefaultRadius = 1e-3
)

var ErrInvalid = errors.New("config: invalid problem")

type Config struct {
	Model    string             `yaml:"model"`
	Params   map[string]float64 `yaml:"params,omitempty"`
	Q0       []float64          `yaml:"q0"`
	DQ0      []float64          `yaml:"dq0"`
	T0       float64            `yaml:"t0"`
	TMax     float64            `yaml:"tmax"`
	OrderQ   int                `yaml:"order_q"`
	OrderT   int                `yaml:"order_t"`
	AbsTol   float64            `yaml:"abstol"`
	MaxSteps int                `yaml:"max_steps"`
	ParseEqs bool               `yaml:"parse_eqs"`
	SymNorm  bool               `yaml:"sym_norm"`
	MaxIter  int                `yaml:"max_remainder_iter"`
	Check    CheckConfig        `yaml:"check"`
}

// CheckConfig drives the reference-trajectory spot check.
type CheckConfig struct {
	Samples  int     `yaml:"samples"`
	Substeps int     `yaml:"substeps"`
	Workers  int     `yaml:"workers"`
	Seed     int64   `yaml:"seed"`
	Slack    float64 `yaml:"slack"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    "exponential",
		TMax:     DefaultTMax,
		OrderQ:   DefaultOrderQ,
		OrderT:   DefaultOrderT,
		AbsTol:   DefaultAbsTol,
		MaxSteps: validated.DefaultMaxSteps,
		ParseEqs: true,
		SymNorm:  true,
		MaxIter:  remainder.DefaultMaxIter,
		Check: CheckConfig{
			Samples:  32,
			Substeps: 200,
			Workers:  4,
			Seed:     1,
			Slack:    1e-9,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a problem over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
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

// Validate checks the fields that do not depend on the model. Dimension
// checks against the model happen in the integrator.
func (c *Config) Validate() error {
	switch {
	case c.Model == "":
		return fmt.Errorf("%w: no model", ErrInvalid)
	case len(c.DQ0) != 0 && len(c.DQ0) != 1 && len(c.DQ0) != len(c.Q0):
		return fmt.Errorf("%w: %d radii for %d states", ErrInvalid, len(c.DQ0), len(c.Q0))
	case !(c.T0 < c.TMax):
		return fmt.Errorf("%w: t0=%g must precede tmax=%g", ErrInvalid, c.T0, c.TMax)
	case c.OrderQ < 1 || c.OrderT < 1:
		return fmt.Errorf("%w: orders must be positive", ErrInvalid)
	case !(c.AbsTol > 0):
		return fmt.Errorf("%w: abstol must be positive", ErrInvalid)
	case c.MaxSteps < 1:
		return fmt.Errorf("%w: max_steps must be positive", ErrInvalid)
	}
	for i, r := range c.DQ0 {
		if r < 0 {
			return fmt.Errorf("%w: negative radius dq0[%d] = %g", ErrInvalid, i, r)
		}
	}
	return nil
}

// InitialBox returns the perturbation box [-r_i, r_i]. A single radius
// applies to every component and no radii mean DefaultRadius.
func (c *Config) InitialBox() interval.Box {
	box := make(interval.Box, len(c.Q0))
	for i := range box {
		r := DefaultRadius
		switch len(c.DQ0) {
		case 0:
		case 1:
			r = c.DQ0[0]
		default:
			r = c.DQ0[i]
		}
		box[i] = interval.New(-r, r)
	}
	return box
}

// Options turns the run settings into integrator options.
func (c *Config) Options() []validated.Option {
	return []validated.Option{
		validated.WithMaxSteps(c.MaxSteps),
		validated.WithParseEqs(c.ParseEqs),
		validated.WithSymNorm(c.SymNorm),
		validated.WithMaxRemainderIter(c.MaxIter),
	}
}
