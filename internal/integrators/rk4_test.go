package integrators

import (
	"math"
	"testing"
)

type oscillator struct{}

func (oscillator) Derive(x []float64, t float64) []float64 {
	return []float64{x[1], -x[0]}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := []float64{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestTrajectory(t *testing.T) {
	times := []float64{0, 0.5, 1, 3}
	for _, tc := range []struct {
		name  string
		integ Integrator
		tol   float64
	}{
		{"euler", NewEuler(), 1e-2},
		{"rk4", NewRK4(), 1e-9},
	} {
		t.Run(tc.name, func(t *testing.T) {
			traj := Trajectory(oscillator{}, tc.integ, []float64{1, 0}, times, 1000)
			if len(traj) != len(times) {
				t.Fatalf("expected %d states, got %d", len(times), len(traj))
			}
			for j, x := range traj {
				if d := math.Abs(x[0] - math.Cos(times[j])); d > tc.tol {
					t.Errorf("t=%g: x=%g, want %g", times[j], x[0], math.Cos(times[j]))
				}
			}
		})
	}
}
