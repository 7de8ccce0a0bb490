// Package metrics summarizes validated runs step by step. Every metric is a
// [validated.Observer] and can be attached with [validated.WithObserver].
package metrics

import "github.com/san-kum/tmflow/internal/validated"

type Metric interface {
	validated.Observer
	Name() string
	Value() float64
	Reset()
}

// Collect returns the current value of every metric by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default is the set attached to every experiment.
func Default() []Metric {
	return []Metric{
		NewMaxWidth(),
		NewRemainderPeak(),
		NewMeanIterations(),
		NewStepSize(),
		NewStability(1e6),
	}
}
