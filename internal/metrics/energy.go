package metrics

import (
	"math"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

// Energy tracks the widest energy enclosure over the step boxes of a run.
// For a conservative model with a thin initial box the width measures how
// much the enclosure has overestimated the flow.
type Energy struct {
	name    string
	energy  func(interval.Box) interval.Interval
	maxSpan float64
}

func NewEnergy(energy func(interval.Box) interval.Interval) *Energy {
	return &Energy{name: "energy_width", energy: energy}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) OnStep(s validated.Sample) {
	e.maxSpan = math.Max(e.maxSpan, e.energy(s.Endpoint).Width())
}

func (e *Energy) Value() float64 { return e.maxSpan }

func (e *Energy) Reset() { e.maxSpan = 0 }

// EnergyDrift is the largest distance between the midpoint energy at a step
// and at the first observed step, relative to the latter.
type EnergyDrift struct {
	name     string
	energy   func(interval.Box) interval.Interval
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(energy func(interval.Box) interval.Interval) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", energy: energy}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(s validated.Sample) {
	mid := e.energy(s.Endpoint).Mid()
	if e.samples == 0 {
		e.initial = mid
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(mid-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
