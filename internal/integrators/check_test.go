package integrators

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
)

func TestSamplerPoints(t *testing.T) {
	box := interval.Box{interval.New(0, 1), interval.New(-2, 2)}
	pts := NewSampler(42).Points(box, 20)
	if len(pts) != 20 {
		t.Fatalf("expected 20 points, got %d", len(pts))
	}
	if pts[0][0] != 0.5 || pts[0][1] != 0 {
		t.Errorf("first point %v, want the center", pts[0])
	}
	corners := map[[2]float64]bool{}
	for _, p := range pts[1:5] {
		corners[[2]float64{p[0], p[1]}] = true
	}
	if len(corners) != 4 {
		t.Errorf("expected 4 distinct corners, got %v", pts[1:5])
	}
	for _, p := range pts {
		if !box.Contains(p) {
			t.Errorf("point %v outside %v", p, box)
		}
	}

	again := NewSampler(42).Points(box, 20)
	if again[19][0] != pts[19][0] {
		t.Error("sampler not deterministic for a fixed seed")
	}
}

func TestSamplerFewPoints(t *testing.T) {
	box := interval.Box{interval.New(0, 1), interval.New(0, 1), interval.New(0, 1)}
	if n := len(NewSampler(1).Points(box, 3)); n != 3 {
		t.Errorf("expected 3 points, got %d", n)
	}
	if n := len(NewSampler(1).Points(box, 0)); n != 0 {
		t.Errorf("expected no points, got %d", n)
	}
}

func TestCheck(t *testing.T) {
	times := []float64{0, math.Pi / 2}
	// Rotation by a quarter turn maps [0.9, 1.1]x[0, 0] to [0, 0]x[-1.1, -0.9].
	good := []interval.Box{
		{interval.New(0.9, 1.1), interval.New(0, 0)},
		{interval.New(-1e-6, 1e-6), interval.New(-1.1-1e-6, -0.9+1e-6)},
	}
	bad := []interval.Box{
		good[0],
		{interval.New(-1e-6, 1e-6), interval.New(-0.95, -0.8)},
	}
	pts := NewSampler(7).Points(good[0], 10)

	rep, err := Check(context.Background(), oscillator{}, times, good, pts, 200, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() {
		t.Errorf("unexpected violations: %v", rep.Violations)
	}
	if rep.Checked != 20 {
		t.Errorf("checked %d states, want 20", rep.Checked)
	}

	rep, err = Check(context.Background(), oscillator{}, times, bad, pts, 200, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rep.OK() {
		t.Fatal("expected violations for a too narrow enclosure")
	}
	for _, v := range rep.Violations {
		if v.Step != 1 || v.Component != 1 || v.Value > -0.95 {
			t.Errorf("unexpected violation %v", v)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	_, err := Check(context.Background(), oscillator{}, []float64{0}, nil, nil, 1, 1, 0)
	if err == nil {
		t.Error("expected an error for mismatched lengths")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	box := interval.Box{interval.New(0, 1)}
	_, err = Check(ctx, oscillator{}, []float64{0}, []interval.Box{box}, [][]float64{{0.5}}, 1, 1, 0)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 100} {
		var hits [37]int32
		ParallelFor(len(hits), workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}
