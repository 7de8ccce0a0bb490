package models

import (
	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/series"
)

// VanDerPol: x' = v, v' = μ(1-x²)v - x.
type VanDerPol struct{ Mu float64 }

func NewVanDerPol() *VanDerPol               { return &VanDerPol{Mu: 1.0} }
func (v *VanDerPol) Name() string            { return "vanderpol" }
func (v *VanDerPol) Dim() int                { return 2 }
func (v *VanDerPol) DefaultState() []float64 { return []float64{2.0, 0.0} }

func (v *VanDerPol) Eval(_ series.Series, s []series.Series) []series.Series {
	x, y := s[0], s[1]
	damp := x.Pow(2).Neg().AddConst(1).Scale(v.Mu)
	return []series.Series{y, damp.Mul(y).Sub(x)}
}

func (v *VanDerPol) Derive(s []float64, _ float64) []float64 {
	return []float64{s[1], v.Mu*(1-s[0]*s[0])*s[1] - s[0]}
}

func (v *VanDerPol) GetParams() map[string]float64 { return map[string]float64{"mu": v.Mu} }

func (v *VanDerPol) SetParam(n string, val float64) error {
	if n != "mu" {
		return unknownParam(v.Name(), n)
	}
	v.Mu = val
	return nil
}

// Duffing without forcing: x'' + δx' + αx + βx³ = 0.
type Duffing struct{ Alpha, Beta, Delta float64 }

func NewDuffing() *Duffing                 { return &Duffing{Alpha: -1.0, Beta: 1.0, Delta: 0.2} }
func (d *Duffing) Name() string            { return "duffing" }
func (d *Duffing) Dim() int                { return 2 }
func (d *Duffing) DefaultState() []float64 { return []float64{1.0, 0.0} }

func (d *Duffing) Eval(_ series.Series, s []series.Series) []series.Series {
	x, v := s[0], s[1]
	acc := v.Scale(-d.Delta).Sub(x.Scale(d.Alpha)).Sub(x.Pow(3).Scale(d.Beta))
	return []series.Series{v, acc}
}

func (d *Duffing) Derive(s []float64, _ float64) []float64 {
	x, v := s[0], s[1]
	return []float64{v, -d.Delta*v - d.Alpha*x - d.Beta*x*x*x}
}

// Energy is v²/2 + αx²/2 + βx⁴/4, conserved when δ = 0.
func (d *Duffing) Energy(b interval.Box) interval.Interval {
	x, v := b[0], b[1]
	kin := v.Sqr().Scale(0.5)
	pot := x.Sqr().Scale(d.Alpha / 2).Add(x.Pow(4).Scale(d.Beta / 4))
	return kin.Add(pot)
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	default:
		return unknownParam(d.Name(), n)
	}
	return nil
}

// DoubleWell is a damped particle in V(x) = a·x⁴ - b·x².
type DoubleWell struct {
	A, B    float64
	Damping float64
	Mass    float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 0.25, B: 0.5, Damping: 0.1, Mass: 1.0}
}

func (d *DoubleWell) Name() string            { return "doublewell" }
func (d *DoubleWell) Dim() int                { return 2 }
func (d *DoubleWell) DefaultState() []float64 { return []float64{0.5, 0.0} }

func (d *DoubleWell) invMass() interval.Interval {
	return interval.Point(1).Quo(d.Mass)
}

func (d *DoubleWell) Eval(_ series.Series, s []series.Series) []series.Series {
	x, v := s[0], s[1]
	// F = -dV/dx - γv = -4a·x³ + 2b·x - γv
	force := x.Pow(3).Scale(-4 * d.A).Add(x.Scale(2 * d.B)).Sub(v.Scale(d.Damping))
	return []series.Series{v, force.ScaleInterval(d.invMass())}
}

func (d *DoubleWell) Derive(s []float64, _ float64) []float64 {
	x, v := s[0], s[1]
	force := -4*d.A*x*x*x + 2*d.B*x - d.Damping*v
	return []float64{v, force / d.Mass}
}

// Energy is m·v²/2 + V(x). It decays when damped.
func (d *DoubleWell) Energy(b interval.Box) interval.Interval {
	x, v := b[0], b[1]
	kin := v.Sqr().Scale(d.Mass / 2)
	pot := x.Pow(4).Scale(d.A).Sub(x.Sqr().Scale(d.B))
	return kin.Add(pot)
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"a": d.A, "b": d.B, "damping": d.Damping, "mass": d.Mass}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "a":
		d.A = v
	case "b":
		d.B = v
	case "damping":
		d.Damping = v
	case "mass":
		d.Mass = v
	default:
		return unknownParam(d.Name(), n)
	}
	return nil
}

// LotkaVolterra: x' = αx - βxy, y' = δxy - γy.
type LotkaVolterra struct{ Alpha, Beta, Gamma, Delta float64 }

func NewLotkaVolterra() *LotkaVolterra {
	return &LotkaVolterra{Alpha: 1.1, Beta: 0.4, Gamma: 0.4, Delta: 0.1}
}

func (l *LotkaVolterra) Name() string            { return "lotka" }
func (l *LotkaVolterra) Dim() int                { return 2 }
func (l *LotkaVolterra) DefaultState() []float64 { return []float64{10, 10} }

func (l *LotkaVolterra) Eval(_ series.Series, s []series.Series) []series.Series {
	x, y := s[0], s[1]
	xy := x.Mul(y)
	return []series.Series{
		x.Scale(l.Alpha).Sub(xy.Scale(l.Beta)),
		xy.Scale(l.Delta).Sub(y.Scale(l.Gamma)),
	}
}

func (l *LotkaVolterra) Derive(s []float64, _ float64) []float64 {
	x, y := s[0], s[1]
	return []float64{l.Alpha*x - l.Beta*x*y, l.Delta*x*y - l.Gamma*y}
}

func (l *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{"alpha": l.Alpha, "beta": l.Beta, "gamma": l.Gamma, "delta": l.Delta}
}

func (l *LotkaVolterra) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		l.Alpha = v
	case "beta":
		l.Beta = v
	case "gamma":
		l.Gamma = v
	case "delta":
		l.Delta = v
	default:
		return unknownParam(l.Name(), n)
	}
	return nil
}
