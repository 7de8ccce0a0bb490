package validated

import (
	"fmt"
	"sort"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/taylor"
)

type Status int

const (
	// StatusDone means the run reached tmax.
	StatusDone Status = iota
	// StatusStepBudgetExceeded means the run stopped at the step cap with a
	// partial orbit.
	StatusStepBudgetExceeded
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusStepBudgetExceeded:
		return "step budget exceeded"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Sample is what observers see of an accepted step.
type Sample struct {
	Step       int
	Time       float64
	Dt         float64
	Box        interval.Box
	Endpoint   interval.Box
	Remainder  interval.Box
	Iterations int
	Converged  bool
}

type Observer interface {
	OnStep(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) OnStep(s Sample) { f(s) }

// Result is the orbit of a run. Index 0 of Times, Boxes, Endpoints and Models
// describes the initial condition; index j >= 1 the step ending at Times[j].
// Boxes[j] encloses the flow over the whole step, Endpoints[j] at Times[j]
// alone. StepModels[j-1] are the time models of step j.
type Result struct {
	Times      []float64
	Boxes      []interval.Box
	Endpoints  []interval.Box
	Models     [][]taylor.ModelN
	StepModels [][]taylor.Model1

	Steps             int
	Status            Status
	RemainderFailures int

	// Context is the jet-transport context of every model in the result and
	// Domain the box of the normalized initial-condition variables.
	Context *poly.Context
	Domain  interval.Box
}

func newResult(maxSteps int, ctx *poly.Context, domain interval.Box) *Result {
	return &Result{
		Times:      make([]float64, maxSteps+1),
		Boxes:      make([]interval.Box, maxSteps+1),
		Endpoints:  make([]interval.Box, maxSteps+1),
		Models:     make([][]taylor.ModelN, maxSteps+1),
		StepModels: make([][]taylor.Model1, maxSteps),
		Context:    ctx,
		Domain:     domain,
	}
}

func (r *Result) record(j int, t float64, box, end interval.Box, models []taylor.ModelN) {
	r.Times[j] = t
	r.Boxes[j] = box
	r.Endpoints[j] = end
	r.Models[j] = models
}

// trim cuts the output slices down to the filled prefix.
func (r *Result) trim() *Result {
	n := r.Steps + 1
	r.Times = r.Times[:n]
	r.Boxes = r.Boxes[:n]
	r.Endpoints = r.Endpoints[:n]
	r.Models = r.Models[:n]
	r.StepModels = r.StepModels[:r.Steps]
	return r
}

// Final returns the enclosure at the last accepted time.
func (r *Result) Final() interval.Box {
	return r.Endpoints[len(r.Endpoints)-1]
}

// At encloses the flow at time t, which must lie between the first and the
// last accepted times, by evaluating the model of the step containing t.
func (r *Result) At(t float64) (interval.Box, error) {
	last := len(r.Times) - 1
	if t < r.Times[0] || t > r.Times[last] {
		return nil, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, t, r.Times[0], r.Times[last])
	}
	if t == r.Times[0] {
		return r.Endpoints[0].Clone(), nil
	}
	j := sort.SearchFloat64s(r.Times, t)
	start := r.Times[j-1]
	tau := interval.Point(t).Sub(interval.Point(start))

	box := make(interval.Box, len(r.StepModels[j-1]))
	for i, m := range r.StepModels[j-1] {
		p, rem, err := m.Evaluate(tau)
		if err != nil {
			return nil, err
		}
		box[i] = p.Evaluate(r.Domain).Add(rem)
	}
	return box, nil
}
