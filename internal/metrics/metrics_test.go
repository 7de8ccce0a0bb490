package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

func TestStepMetrics(t *testing.T) {
	steps := []validated.Sample{
		{
			Dt: 0.1, Iterations: 2,
			Endpoint:  interval.Box{interval.New(0, 0.5)},
			Remainder: interval.Box{interval.New(-1e-12, 1e-12)},
			Box:       interval.Box{interval.New(0, 1)},
		},
		{
			Dt: 0.3, Iterations: 4,
			Endpoint:  interval.Box{interval.New(0, 0.25)},
			Remainder: interval.Box{interval.New(-3e-12, 1e-12)},
			Box:       interval.Box{interval.New(-20, 1)},
			Time:      0.4,
		},
	}

	ms := []Metric{NewMaxWidth(), NewRemainderPeak(), NewMeanIterations(), NewStepSize(), NewStability(10)}
	for _, s := range steps {
		for _, m := range ms {
			m.OnStep(s)
		}
	}

	want := map[string]float64{
		"max_width":       0.5,
		"remainder_peak":  3e-12,
		"mean_iterations": 3,
		"mean_step":       0.2,
		"stability":       0.5,
	}
	got := Collect(ms)
	for name, w := range want {
		if g, ok := got[name]; !ok || g < w*(1-1e-12) || g > w*(1+1e-12) {
			t.Errorf("%s = %g, want %g", name, g, w)
		}
	}

	for _, m := range ms {
		m.Reset()
	}
	for name, v := range Collect(ms) {
		if name == "stability" {
			if v != 1 {
				t.Errorf("stability after reset = %g, want 1", v)
			}
			continue
		}
		if v != 0 {
			t.Errorf("%s after reset = %g, want 0", name, v)
		}
	}
}

func TestStabilityUnbounded(t *testing.T) {
	s := NewStability(1e6)
	s.OnStep(validated.Sample{Time: 0.1, Box: interval.Box{interval.New(0, 1)}})
	if !math.IsNaN(s.FirstEscape()) {
		t.Errorf("first escape %g before any escape", s.FirstEscape())
	}
	s.OnStep(validated.Sample{Time: 0.2, Box: interval.Box{interval.New(0, 1), interval.Entire()}})
	s.OnStep(validated.Sample{Time: 0.3, Box: interval.Box{interval.New(0, 1)}})
	if got := s.Value(); math.Abs(got-2.0/3) > 1e-15 {
		t.Errorf("stability = %g, want 2/3", got)
	}
	if got := s.FirstEscape(); got != 0.2 {
		t.Errorf("first escape = %g, want 0.2", got)
	}
}

func TestDefaultNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
