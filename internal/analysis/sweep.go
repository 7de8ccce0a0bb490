package analysis

import (
	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/models"
	"github.com/san-kum/tmflow/internal/validated"
)

// SweepPoint is the outcome of one run of a parameter sweep.
type SweepPoint struct {
	Param  float64
	Final  interval.Box
	Tend   float64
	Status validated.Status
	Err    error
}

// Sweep sets paramName to steps values evenly spaced in [lo, hi] and calls
// run for each. The parameter is restored to its original value afterwards.
// A failed run is recorded in its point and does not stop the sweep.
func Sweep(
	m models.Model,
	paramName string,
	lo, hi float64,
	steps int,
	run func(models.Model) (*validated.Result, error),
) ([]SweepPoint, error) {
	orig, ok := m.GetParams()[paramName]
	if !ok {
		return nil, m.SetParam(paramName, lo)
	}
	defer m.SetParam(paramName, orig)

	if steps <= 1 {
		steps = 2
	}
	step := (hi - lo) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		p := lo + float64(i)*step
		if err := m.SetParam(paramName, p); err != nil {
			return points, err
		}
		sp := SweepPoint{Param: p}
		res, err := run(m)
		if err != nil {
			sp.Err = err
		} else {
			sp.Final = res.Final()
			sp.Tend = res.Times[len(res.Times)-1]
			sp.Status = res.Status
		}
		points = append(points, sp)
	}
	return points, nil
}
