package models

import (
	"fmt"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/series"
)

// Exponential is x' = r·x.
type Exponential struct {
	Rate float64
}

func NewExponential() *Exponential { return &Exponential{Rate: 1} }

func (e *Exponential) Name() string            { return "exponential" }
func (e *Exponential) Dim() int                { return 1 }
func (e *Exponential) DefaultState() []float64 { return []float64{1} }

func (e *Exponential) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[0].Scale(e.Rate)}
}

func (e *Exponential) Derive(x []float64, _ float64) []float64 {
	return []float64{e.Rate * x[0]}
}

func (e *Exponential) Matrix() [][]interval.Interval {
	return [][]interval.Interval{{interval.Point(e.Rate)}}
}

func (e *Exponential) GetParams() map[string]float64 {
	return map[string]float64{"rate": e.Rate}
}

func (e *Exponential) SetParam(name string, value float64) error {
	if name != "rate" {
		return unknownParam(e.Name(), name)
	}
	e.Rate = value
	return nil
}

// Harmonic is the undamped oscillator x' = v, v' = -ω²x.
type Harmonic struct {
	Omega float64
}

func NewHarmonic() *Harmonic { return &Harmonic{Omega: 1} }

func (h *Harmonic) Name() string            { return "harmonic" }
func (h *Harmonic) Dim() int                { return 2 }
func (h *Harmonic) DefaultState() []float64 { return []float64{1, 0} }

func (h *Harmonic) omega2() interval.Interval { return interval.Point(h.Omega).Sqr() }

func (h *Harmonic) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[1], x[0].ScaleInterval(h.omega2().Neg())}
}

func (h *Harmonic) Derive(x []float64, _ float64) []float64 {
	return []float64{x[1], -h.Omega * h.Omega * x[0]}
}

func (h *Harmonic) Matrix() [][]interval.Interval {
	return [][]interval.Interval{
		{interval.Zero(), interval.Point(1)},
		{h.omega2().Neg(), interval.Zero()},
	}
}

// Energy is (v² + ω²x²)/2.
func (h *Harmonic) Energy(x interval.Box) interval.Interval {
	return x[1].Sqr().Add(h.omega2().Mul(x[0].Sqr())).Scale(0.5)
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"omega": h.Omega}
}

func (h *Harmonic) SetParam(name string, value float64) error {
	if name != "omega" {
		return unknownParam(h.Name(), name)
	}
	h.Omega = value
	return nil
}

// Linear is x' = A·x. Parameters are named a<row><col>.
type Linear struct {
	A [][]float64
}

// NewLinear returns a damped rotation in the plane.
func NewLinear() *Linear {
	return &Linear{A: [][]float64{{-0.1, 1}, {-1, -0.1}}}
}

func (l *Linear) Name() string { return "linear" }
func (l *Linear) Dim() int     { return len(l.A) }

func (l *Linear) DefaultState() []float64 {
	x := make([]float64, len(l.A))
	x[0] = 1
	return x
}

func (l *Linear) Eval(_ series.Series, x []series.Series) []series.Series {
	dx := make([]series.Series, len(l.A))
	for i, row := range l.A {
		acc := series.Zero(x[0].Context(), x[0].Order())
		for j, a := range row {
			if a != 0 {
				acc = acc.Add(x[j].Scale(a))
			}
		}
		dx[i] = acc
	}
	return dx
}

func (l *Linear) Derive(x []float64, _ float64) []float64 {
	dx := make([]float64, len(l.A))
	for i, row := range l.A {
		for j, a := range row {
			dx[i] += a * x[j]
		}
	}
	return dx
}

func (l *Linear) Matrix() [][]interval.Interval {
	m := make([][]interval.Interval, len(l.A))
	for i, row := range l.A {
		m[i] = make([]interval.Interval, len(row))
		for j, a := range row {
			m[i][j] = interval.Point(a)
		}
	}
	return m
}

func (l *Linear) GetParams() map[string]float64 {
	p := make(map[string]float64, len(l.A)*len(l.A))
	for i, row := range l.A {
		for j, a := range row {
			p[fmt.Sprintf("a%d%d", i, j)] = a
		}
	}
	return p
}

func (l *Linear) SetParam(name string, value float64) error {
	var i, j int
	if n, err := fmt.Sscanf(name, "a%1d%1d", &i, &j); err != nil || n != 2 || i >= len(l.A) || j >= len(l.A[i]) {
		return unknownParam(l.Name(), name)
	}
	l.A[i][j] = value
	return nil
}
