package metrics

import (
	"math"

	"github.com/san-kum/tmflow/internal/validated"
)

// Stability is the fraction of steps whose whole-step box is finite and
// stays within threshold in every component. Unbounded boxes come from
// interval division through zero and always count as escaped.
type Stability struct {
	threshold float64
	steps     int
	escaped   int
	first     float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold, first: math.NaN()}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) OnStep(sample validated.Sample) {
	s.steps++
	for _, iv := range sample.Box {
		if m := iv.Mag(); math.IsNaN(m) || m > s.threshold {
			if s.escaped == 0 {
				s.first = sample.Time
			}
			s.escaped++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.steps == 0 {
		return 1
	}
	return 1 - float64(s.escaped)/float64(s.steps)
}

// FirstEscape is the end time of the first step that left the threshold,
// NaN if none did.
func (s *Stability) FirstEscape() float64 { return s.first }

func (s *Stability) Reset() {
	s.steps, s.escaped = 0, 0
	s.first = math.NaN()
}
