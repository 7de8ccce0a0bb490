// Package experiment runs a problem file end to end: it builds the model,
// integrates with the configured options and collects metrics.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/integrators"
	"github.com/san-kum/tmflow/internal/metrics"
	"github.com/san-kum/tmflow/internal/models"
	"github.com/san-kum/tmflow/internal/validated"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    *slog.Logger
	model     models.Model
	metrics   []metrics.Metric
	observers []validated.Observer
}

// Outcome is a finished run. Err is the step error of a run that stopped
// early; Result then holds the orbit accepted before it.
type Outcome struct {
	Result  *validated.Result
	Err     error
	Metrics map[string]float64
}

func New(cfg *config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup builds the model and fills a missing initial state from its default
// before validating, so per-component radii line up with the model.
func (e *Experiment) Setup() error {
	m, err := e.registry.GetModel(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	if len(e.cfg.Q0) == 0 {
		e.cfg.Q0 = m.DefaultState()
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.model = m
	e.metrics = e.registry.DefaultMetrics(m)
	return nil
}

// AddObserver registers an observer next to the metrics.
func (e *Experiment) AddObserver(o validated.Observer) { e.observers = append(e.observers, o) }

func (e *Experiment) Model() models.Model { return e.model }

// JetName names the coefficient routine a run of the model starts with:
// the specialized one when registered, else "generic".
func (e *Experiment) JetName() string {
	if e.model == nil {
		return ""
	}
	if _, ok := e.registry.Jets().Lookup(e.model.Name()); ok {
		return e.model.Name()
	}
	return "generic"
}

func (e *Experiment) Run() (*Outcome, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	opts := append(e.cfg.Options(),
		validated.WithLogger(e.logger),
		validated.WithRegistry(e.registry.Jets()),
	)
	for _, m := range e.metrics {
		opts = append(opts, validated.WithObserver(m))
	}
	for _, o := range e.observers {
		opts = append(opts, validated.WithObserver(o))
	}

	res, err := validated.Integrate(e.model, e.cfg.Q0, e.cfg.InitialBox(),
		e.cfg.T0, e.cfg.TMax, e.cfg.OrderQ, e.cfg.OrderT, e.cfg.AbsTol, opts...)
	var stepErr *validated.StepError
	if err != nil && !errors.As(err, &stepErr) {
		return nil, err
	}
	return &Outcome{Result: res, Err: err, Metrics: metrics.Collect(e.metrics)}, nil
}

// Check runs the reference-trajectory spot check of the configured number of
// samples against the endpoint enclosures of res.
func (e *Experiment) Check(ctx context.Context, res *validated.Result) (integrators.Report, error) {
	if e.model == nil {
		return integrators.Report{}, fmt.Errorf("experiment not setup")
	}
	c := e.cfg.Check
	pts := integrators.NewSampler(c.Seed).Points(res.Endpoints[0], c.Samples)
	return integrators.Check(ctx, e.model, res.Times, res.Endpoints, pts, c.Substeps, c.Workers, c.Slack)
}
