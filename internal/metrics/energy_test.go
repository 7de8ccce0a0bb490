package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

// oscillator is (x² + v²)/2.
func oscillator(b interval.Box) interval.Interval {
	return b[0].Sqr().Add(b[1].Sqr()).Scale(0.5)
}

func sample(lo, hi []float64) validated.Sample {
	box := make(interval.Box, len(lo))
	for i := range lo {
		box[i] = interval.New(lo[i], hi[i])
	}
	return validated.Sample{Box: box, Endpoint: box}
}

func TestEnergyWidth(t *testing.T) {
	m := NewEnergy(oscillator)

	m.OnStep(sample([]float64{1, 0}, []float64{1, 0}))
	if m.Value() > 1e-15 {
		t.Errorf("expected zero width for a point, got %g", m.Value())
	}

	m.OnStep(sample([]float64{0, 0}, []float64{1, 0}))
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected width 0.5, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero width after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(oscillator)

	m.OnStep(sample([]float64{1, 0}, []float64{1, 0}))
	m.OnStep(sample([]float64{0, 1}, []float64{0, 1}))
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift on the circle, got %g", m.Value())
	}

	m.OnStep(sample([]float64{0, 2}, []float64{0, 2}))
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected drift 3, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
