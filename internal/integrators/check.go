package integrators

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/tmflow/internal/interval"
)

// Violation is a sampled solution found outside its enclosure.
type Violation struct {
	Sample    int
	Step      int
	Time      float64
	Component int
	Value     float64
	Bound     interval.Interval
}

func (v Violation) String() string {
	return fmt.Sprintf("sample %d step %d t=%g: x[%d]=%.17g outside %v",
		v.Sample, v.Step, v.Time, v.Component, v.Value, v.Bound)
}

type Report struct {
	Samples    int
	Checked    int
	Violations []Violation
}

func (r Report) OK() bool { return len(r.Violations) == 0 }

// Check integrates every point with RK4 through times and reports each
// state that falls outside the matching enclosure, widened by slack in
// every component to absorb the reference method's own error. Points are
// split among workers goroutines.
func Check(
	ctx context.Context,
	sys System,
	times []float64,
	enclosures []interval.Box,
	points [][]float64,
	substeps, workers int,
	slack float64,
) (Report, error) {
	if len(times) != len(enclosures) {
		return Report{}, fmt.Errorf("integrators: %d times for %d enclosures", len(times), len(enclosures))
	}

	found := make([][]Violation, len(points))
	ParallelFor(len(points), workers, func(start, end int) {
		rk := NewRK4()
		for p := start; p < end; p++ {
			if ctx.Err() != nil {
				return
			}
			traj := Trajectory(sys, rk, points[p], times, substeps)
			for j, x := range traj {
				for i, v := range x {
					b := enclosures[j][i]
					if v < b.Lo-slack || v > b.Hi+slack {
						found[p] = append(found[p], Violation{
							Sample: p, Step: j, Time: times[j],
							Component: i, Value: v, Bound: b,
						})
					}
				}
			}
		}
	})
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := Report{Samples: len(points), Checked: len(points) * len(times)}
	for _, v := range found {
		rep.Violations = append(rep.Violations, v...)
	}
	return rep, nil
}

// ParallelFor runs fn over [0, n) split into at most workers contiguous
// chunks, each on its own goroutine.
func ParallelFor(n, workers int, fn func(start, end int)) {
	if workers < 1 {
		workers = 1
	}
	if n <= 1 || workers == 1 {
		fn(0, n)
		return
	}
	workers = min(workers, n)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
