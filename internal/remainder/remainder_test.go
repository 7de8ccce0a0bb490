package remainder

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/series"
)

func image(delta, last interval.Box, dt interval.Interval) interval.Box {
	r := make(interval.Box, len(delta))
	for i := range delta {
		r[i] = dt.Mul(delta[i].Add(last[i]))
	}
	return r
}

func TestFixedPointLawExactCases(t *testing.T) {
	tests := []struct {
		name  string
		last  interval.Box
		dt    interval.Interval
		limit interval.Interval
	}{
		{"one-sided", interval.Box{interval.New(0, 1)}, interval.New(0, 0.5), interval.New(0, 1)},
		{"symmetric", interval.Box{interval.New(-1, 1)}, interval.New(0, 0.5), interval.New(-1, 1)},
		{"two components", interval.Box{interval.New(0, 1), interval.New(-1, 1)}, interval.New(0, 0.5), interval.New(-1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FixedPoint(tt.last, tt.dt, DefaultMaxIter, nil)
			if !res.Converged {
				t.Fatalf("not converged after %d iterations: %v", res.Iterations, res.Delta)
			}
			if !image(res.Delta, tt.last, tt.dt).Subset(res.Delta) {
				t.Errorf("Δ = %v does not contain its image %v", res.Delta, image(res.Delta, tt.last, tt.dt))
			}
			for _, d := range res.Delta {
				if !tt.limit.Subset(d) && !d.Subset(tt.limit.Widen()) {
					t.Errorf("Δ component %v far from limit %v", d, tt.limit)
				}
			}
		})
	}
}

func TestFixedPointContainsImage(t *testing.T) {
	tests := []struct {
		last interval.Box
		dt   interval.Interval
	}{
		{interval.Box{interval.New(-3e-8, 5e-9)}, interval.New(0, 0.01)},
		{interval.Box{interval.New(1e-12, 2e-12), interval.New(-7, -6)}, interval.New(0, 0.125)},
		{interval.Box{interval.New(-0.1, 0.3)}, interval.New(0, 0.3)},
		{interval.Box{interval.Zero()}, interval.New(0, 0.2)},
	}
	for _, tt := range tests {
		res := FixedPoint(tt.last, tt.dt, DefaultMaxIter, nil)
		if !res.Converged {
			t.Errorf("last %v dt %v: not converged", tt.last, tt.dt)
			continue
		}
		// The image of Δ may poke out of Δ by rounding of the final
		// widening; one further ulp must absorb it.
		if img := image(res.Delta, tt.last, tt.dt); !img.Subset(res.Delta.Widen()) {
			t.Errorf("image %v escapes Δ = %v", img, res.Delta)
		}
		for i := range tt.last {
			if !res.Delta[i].ContainsZero() {
				t.Errorf("Δ[%d] = %v does not contain 0", i, res.Delta[i])
			}
		}
	}
}

func TestFixedPointMonotone(t *testing.T) {
	last := interval.Box{interval.New(-2, 1), interval.New(0.5, 3)}
	var trail []interval.Box
	res := FixedPoint(last, interval.New(0, 0.4), DefaultMaxIter, func(_ int, d interval.Box) {
		trail = append(trail, d)
	})
	if !res.Converged {
		t.Fatal("not converged")
	}
	if len(trail) == 0 {
		t.Fatal("trace never called")
	}
	for k := 1; k < len(trail); k++ {
		if !trail[k-1].Subset(trail[k]) {
			t.Fatalf("trial %d = %v shrank from %v", k, trail[k], trail[k-1])
		}
	}
	if !trail[len(trail)-1].Subset(res.Delta) {
		t.Errorf("result %v does not contain last trial %v", res.Delta, trail[len(trail)-1])
	}
}

func TestFixedPointExhausted(t *testing.T) {
	last := interval.Box{interval.New(0, 1)}
	res := FixedPoint(last, interval.New(0, 0.999), DefaultMaxIter, nil)
	if res.Converged {
		t.Fatal("contraction 0.999 should not settle within 100 iterations")
	}
	if res.Iterations != DefaultMaxIter {
		t.Errorf("iterations = %d", res.Iterations)
	}
	if res.Delta[0].Hi <= 1 {
		t.Errorf("best-effort Δ = %v should have grown", res.Delta)
	}
}

func jetWithTop(ctx *poly.Context, orderT int, top ...poly.Poly) []series.Series {
	dx := make([]series.Series, len(top))
	for i, p := range top {
		dx[i] = series.Zero(ctx, orderT).SetCoeff(orderT, p)
	}
	return dx
}

func TestSolve(t *testing.T) {
	ctx := poly.NewContext(1, 2)
	dx := jetWithTop(ctx, 2, poly.Const(ctx, interval.Point(3)), poly.Variable(ctx, 0))
	dt := interval.New(0, 0.1)

	res, err := Solver{}.Solve(dx, interval.Symmetric(1), dt)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged || res.Iterations > DefaultMaxIter {
		t.Fatalf("result %+v", res)
	}
	// last = [0, 0.01] and [-0.01/3, 0.01/3]; the fixed point is δt/(1-δt)·last.
	if !res.Delta[0].Contains(0.1 * 0.01 / 0.9 * 0.999) {
		t.Errorf("Δ[0] = %v", res.Delta[0])
	}
	if !res.Delta[1].Contains(-0.1*0.01/3/0.9*0.999) || !res.Delta[1].Contains(0.1*0.01/3/0.9*0.999) {
		t.Errorf("Δ[1] = %v", res.Delta[1])
	}
}

func TestSolveOrderMismatch(t *testing.T) {
	ctx := poly.NewContext(1, 1)
	dx := []series.Series{series.Zero(ctx, 2), series.Zero(ctx, 3)}
	if _, err := (Solver{}).Solve(dx, interval.Symmetric(1), interval.New(0, 0.1)); !errors.Is(err, ErrOrderMismatch) {
		t.Errorf("err = %v, want ErrOrderMismatch", err)
	}
}

func TestSolveWarnsOnExhaustion(t *testing.T) {
	var buf bytes.Buffer
	s := Solver{
		MaxIter: 3,
		Logger:  slog.New(slog.NewTextHandler(&buf, nil)),
	}
	ctx := poly.NewContext(1, 1)
	dx := jetWithTop(ctx, 1, poly.Const(ctx, interval.Point(1)))

	res, err := s.Solve(dx, interval.Symmetric(1), interval.New(0, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if res.Converged || res.Iterations != 3 {
		t.Errorf("result %+v", res)
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "iterations=3") {
		t.Errorf("log output %q", out)
	}
}
