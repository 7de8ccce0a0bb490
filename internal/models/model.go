package models

import (
	"errors"
	"fmt"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/jet"
)

var ErrUnknownParam = errors.New("models: unknown parameter")

type Model interface {
	jet.Field

	// Derive evaluates the field at a point.
	Derive(x []float64, t float64) []float64
	DefaultState() []float64
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Hamiltonian encloses a conserved quantity over a box of states.
type Hamiltonian interface {
	Energy(x interval.Box) interval.Interval
}

func unknownParam(model, name string) error {
	return fmt.Errorf("%w: %s has no %q", ErrUnknownParam, model, name)
}
