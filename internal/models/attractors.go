package models

import "github.com/san-kum/tmflow/internal/series"

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz                  { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) Name() string            { return "lorenz" }
func (l *Lorenz) Dim() int                { return 3 }
func (l *Lorenz) DefaultState() []float64 { return []float64{1.0, 1.0, 1.0} }

func (l *Lorenz) Eval(_ series.Series, s []series.Series) []series.Series {
	x, y, z := s[0], s[1], s[2]
	return []series.Series{
		y.Sub(x).Scale(l.Sigma),
		x.Mul(z.Neg().AddConst(l.Rho)).Sub(y),
		x.Mul(y).Sub(z.Scale(l.Beta)),
	}
}

func (l *Lorenz) Derive(s []float64, _ float64) []float64 {
	return []float64{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return unknownParam(l.Name(), n)
	}
	return nil
}

type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler                 { return &Rossler{0.2, 0.2, 5.7} }
func (r *Rossler) Name() string            { return "rossler" }
func (r *Rossler) Dim() int                { return 3 }
func (r *Rossler) DefaultState() []float64 { return []float64{1.0, 1.0, 1.0} }

func (r *Rossler) Eval(_ series.Series, s []series.Series) []series.Series {
	x, y, z := s[0], s[1], s[2]
	return []series.Series{
		y.Add(z).Neg(),
		x.Add(y.Scale(r.A)),
		z.Mul(x.AddConst(-r.C)).AddConst(r.B),
	}
}

func (r *Rossler) Derive(s []float64, _ float64) []float64 {
	return []float64{-s[1] - s[2], s[0] + r.A*s[1], r.B + s[2]*(s[0]-r.C)}
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.A, "b": r.B, "c": r.C}
}

func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.A = v
	case "b":
		r.B = v
	case "c":
		r.C = v
	default:
		return unknownParam(r.Name(), n)
	}
	return nil
}
