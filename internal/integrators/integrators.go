// Package integrators produces non-validated reference trajectories, used
// to spot-check that validated enclosures contain sampled solutions.
package integrators

// System is a vector field evaluated at points.
type System interface {
	Derive(x []float64, t float64) []float64
}

type Integrator interface {
	Step(sys System, x []float64, t, dt float64) []float64
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, x []float64, t, dt float64) []float64 {
	dx := sys.Derive(x, t)
	result := make([]float64, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// Trajectory integrates x0 from times[0] through every following time with
// substeps equal steps per interval and returns the state at each time.
func Trajectory(sys System, integ Integrator, x0 []float64, times []float64, substeps int) [][]float64 {
	if len(times) == 0 {
		return nil
	}
	substeps = max(substeps, 1)
	out := make([][]float64, len(times))
	x := append([]float64(nil), x0...)
	out[0] = append([]float64(nil), x...)
	for j := 1; j < len(times); j++ {
		t := times[j-1]
		dt := (times[j] - t) / float64(substeps)
		for s := 0; s < substeps; s++ {
			x = integ.Step(sys, x, t, dt)
			t += dt
		}
		out[j] = append([]float64(nil), x...)
	}
	return out
}
