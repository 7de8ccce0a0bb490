package metrics

import (
	"math"

	"github.com/san-kum/tmflow/internal/validated"
)

// MaxWidth is the widest component of any endpoint enclosure.
type MaxWidth struct {
	max float64
}

func NewMaxWidth() *MaxWidth { return &MaxWidth{} }

func (m *MaxWidth) Name() string { return "max_width" }

func (m *MaxWidth) OnStep(s validated.Sample) {
	for _, iv := range s.Endpoint {
		m.max = math.Max(m.max, iv.Width())
	}
}

func (m *MaxWidth) Value() float64 { return m.max }
func (m *MaxWidth) Reset()         { m.max = 0 }

// RemainderPeak is the largest magnitude of the per-step remainder bound.
type RemainderPeak struct {
	peak float64
}

func NewRemainderPeak() *RemainderPeak { return &RemainderPeak{} }

func (r *RemainderPeak) Name() string { return "remainder_peak" }

func (r *RemainderPeak) OnStep(s validated.Sample) {
	for _, iv := range s.Remainder {
		r.peak = math.Max(r.peak, iv.Mag())
	}
}

func (r *RemainderPeak) Value() float64 { return r.peak }
func (r *RemainderPeak) Reset()         { r.peak = 0 }

// MeanIterations averages the fixed-point iterations per step.
type MeanIterations struct {
	sum     int
	samples int
}

func NewMeanIterations() *MeanIterations { return &MeanIterations{} }

func (m *MeanIterations) Name() string { return "mean_iterations" }

func (m *MeanIterations) OnStep(s validated.Sample) {
	m.sum += s.Iterations
	m.samples++
}

func (m *MeanIterations) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.samples)
}

func (m *MeanIterations) Reset() {
	m.sum = 0
	m.samples = 0
}

// StepSize averages the accepted step length.
type StepSize struct {
	sum     float64
	samples int
}

func NewStepSize() *StepSize { return &StepSize{} }

func (m *StepSize) Name() string { return "mean_step" }

func (m *StepSize) OnStep(s validated.Sample) {
	m.sum += s.Dt
	m.samples++
}

func (m *StepSize) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *StepSize) Reset() {
	m.sum = 0
	m.samples = 0
}
