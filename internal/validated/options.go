package validated

import (
	"log/slog"

	"github.com/san-kum/tmflow/internal/jet"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/remainder"
)

// DefaultMaxSteps caps the accepted steps of a run.
const DefaultMaxSteps = 500

type options struct {
	maxSteps   int
	parseEqs   bool
	symNorm    bool
	maxRemIter int
	logger     *slog.Logger
	registry   *jet.Registry
	ctx        *poly.Context
	observers  []Observer
}

func defaultOptions() options {
	return options{
		maxSteps:   DefaultMaxSteps,
		parseEqs:   true,
		symNorm:    true,
		maxRemIter: remainder.DefaultMaxIter,
		logger:     slog.Default(),
	}
}

// Option configures a run of Integrate.
type Option func(*options)

// WithMaxSteps caps the number of accepted steps. A run that reaches the cap
// before tmax stops with StatusStepBudgetExceeded.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

// WithParseEqs enables the lookup of a specialized coefficient routine in
// the registry.
func WithParseEqs(enabled bool) Option {
	return func(o *options) {
		o.parseEqs = enabled
	}
}

// WithSymNorm selects the normalization of the initial box: symmetric
// variables in [-1, 1] when true, one-sided variables in [0, 1] otherwise.
func WithSymNorm(symmetric bool) Option {
	return func(o *options) {
		o.symNorm = symmetric
	}
}

// WithMaxRemainderIter bounds the remainder fixed-point iteration.
func WithMaxRemainderIter(n int) Option {
	return func(o *options) {
		o.maxRemIter = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegistry supplies specialized coefficient routines.
func WithRegistry(r *jet.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithContext runs in an existing jet-transport context. Its number of
// variables must match the dimension of the problem; a different order is
// replaced by a reconfigured context, and values built in the old one must
// not be mixed with the result.
func WithContext(ctx *poly.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithObserver registers an observer notified after every accepted step.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}
