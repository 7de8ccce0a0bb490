package stepsize

import (
	"math"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/series"
)

func TestSelectReal(t *testing.T) {
	tests := []struct {
		name  string
		norms [][]interval.Real
		ord   int
		tol   float64
		want  float64
	}{
		{"order ord binds", [][]interval.Real{{1}, {4}}, 2, 1, 0.5},
		{"order ord-1 binds", [][]interval.Real{{1}, {1e-6}}, 2, 0.01, 0.01},
		{"min over dimensions", [][]interval.Real{{1, 1}, {4, 16}}, 2, 1, 0.25},
		{"zero norms skipped", [][]interval.Real{{0}, {4}}, 2, 1, 0.5},
		{"all zero", [][]interval.Real{{0, 0}, {0, 0}}, 5, 1e-10, math.Inf(1)},
		{"order one ignores k=0", [][]interval.Real{{100}, {2}}, 1, 1, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.norms, tt.ord, tt.tol)
			if got != tt.want && math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("Select = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSelectIntervalIsConservative(t *testing.T) {
	norms := [][]interval.Interval{{interval.Point(1)}, {interval.Point(4)}}
	h := Select(norms, 2, 1)
	if h > 0.5 || h < 0.5-1e-12 {
		t.Errorf("Select = %.17g, want just below 0.5", h)
	}

	// A norm enclosing zero carries no information.
	norms = [][]interval.Interval{{interval.New(0, 1)}, {interval.New(0, 3)}}
	if h := Select(norms, 2, 1); !math.IsInf(h, 1) {
		t.Errorf("Select = %g, want +Inf", h)
	}
}

func TestSelectBoundedByEachCandidate(t *testing.T) {
	norms := [][]interval.Real{{3, 0.2}, {7, 0.9}}
	ord, tol := 4, 1e-6
	h := Select(norms, ord, tol)
	for j, k := range []int{ord - 1, ord} {
		for _, n := range norms[j] {
			hk := math.Pow(tol/float64(n), 1/float64(k))
			if h > hk {
				t.Errorf("h = %g exceeds candidate %g (k=%d)", h, hk, k)
			}
		}
	}
}

func TestForJet(t *testing.T) {
	ctx := poly.NewContext(1, 2)
	tol := 1e-3

	// t0 + τ: c1 = 1, c2 = 0, so only order 1 constrains the step.
	x := []series.Series{series.Time(ctx, 0, 2)}
	h := ForJet(x, tol)
	if h > tol || h < tol*(1-1e-12) {
		t.Errorf("ForJet = %.17g, want just below %g", h, tol)
	}

	zero := []series.Series{series.Zero(ctx, 3)}
	if h := ForJet(zero, tol); !math.IsInf(h, 1) {
		t.Errorf("ForJet(0) = %g, want +Inf", h)
	}
	if h := ForJet(nil, tol); !math.IsInf(h, 1) {
		t.Errorf("ForJet(nil) = %g, want +Inf", h)
	}
}
