// Package remainder bounds the truncation error of a Taylor step. The
// Picard operator restricted to remainders is the affine map
// Δ ↦ δt·(Δ + L), with L the leading Lagrange term of the expansion; an
// interval box mapped into itself encloses the true remainder.
package remainder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/series"
)

// DefaultMaxIter bounds the fixed-point iteration of a Solver whose MaxIter
// is unset.
const DefaultMaxIter = 100

var ErrOrderMismatch = errors.New("remainder: jet components differ in order")

// Solver runs the remainder fixed-point iteration.
type Solver struct {
	MaxIter int
	Logger  *slog.Logger

	// Trace, if set, sees the trial enclosure after every iteration.
	Trace func(iter int, delta interval.Box)
}

type Result struct {
	Delta      interval.Box
	Iterations int
	// Converged is false when MaxIter ran out; Delta is then the last trial
	// enclosure, not a proven bound.
	Converged bool
}

func (s Solver) maxIter() int {
	if s.MaxIter > 0 {
		return s.MaxIter
	}
	return DefaultMaxIter
}

func (s Solver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Solve encloses the remainder of the step whose derivative jet is dx, for
// initial conditions in dI and times in dt = [0, δt]. The order dx[i] is
// truncated at must be the same for every i.
func (s Solver) Solve(dx []series.Series, dI interval.Box, dt interval.Interval) (Result, error) {
	if len(dx) == 0 {
		return Result{Delta: interval.Box{}, Converged: true}, nil
	}
	orderT := dx[0].Order()
	for i, d := range dx {
		if d.Order() != orderT {
			return Result{}, fmt.Errorf("%w: component %d has order %d, want %d", ErrOrderMismatch, i, d.Order(), orderT)
		}
	}

	scale := dt.Pow(orderT).Quo(float64(orderT + 1))
	last := make(interval.Box, len(dx))
	for i, d := range dx {
		last[i] = d.Coeff(orderT).Evaluate(dI).Mul(scale)
	}

	res := FixedPoint(last, dt, s.maxIter(), s.Trace)
	if !res.Converged {
		s.logger().Warn("remainder fixed point not reached",
			"iterations", res.Iterations,
			"dt", dt.Hi,
			"delta", res.Delta.String(),
		)
	}
	return res, nil
}

// FixedPoint iterates Δ ← δt·(Δ + last) from Δ = 0, taking the hull with the
// previous trial in every component the new one leaves. When an iteration
// reproduces its input exactly, the result is widened by one ulp each side
// and returned as converged.
func FixedPoint(last interval.Box, dt interval.Interval, maxIter int, trace func(int, interval.Box)) Result {
	delta := interval.ZeroBox(len(last))
	next := make(interval.Box, len(last))
	for it := 1; it <= maxIter; it++ {
		for i := range last {
			next[i] = dt.Mul(delta[i].Add(last[i]))
		}
		if next.Equal(delta) {
			return Result{Delta: delta.Widen(), Iterations: it, Converged: true}
		}
		for i := range delta {
			if !next[i].Subset(delta[i]) {
				delta[i] = next[i].Hull(delta[i])
			}
		}
		if trace != nil {
			trace(it, delta.Clone())
		}
	}
	return Result{Delta: delta, Iterations: maxIter}
}
