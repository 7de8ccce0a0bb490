package models

import (
	"fmt"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/jet"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/series"
)

// RegisterSpecialized adds the hand-written jet routines of this package to r.
func RegisterSpecialized(r *jet.Registry) {
	r.Register("exponential", linearFactory)
	r.Register("harmonic", linearFactory)
	r.Register("linear", linearFactory)
	r.Register("lorenz", lorenzFactory)
}

// matrixField is a field x' = A·x with a constant interval matrix.
type matrixField interface {
	jet.Field
	Matrix() [][]interval.Interval
}

func linearFactory(f jet.Field) (jet.Coefficients, error) {
	m, ok := f.(matrixField)
	if !ok {
		return nil, fmt.Errorf("%s is not linear", f.Name())
	}
	a := m.Matrix()
	if len(a) != f.Dim() {
		return nil, fmt.Errorf("%s: %d matrix rows for dimension %d", f.Name(), len(a), f.Dim())
	}
	return linearJet{a: a}, nil
}

// linearJet uses x_{k+1} = A·x_k/(k+1).
type linearJet struct {
	a [][]interval.Interval
}

func (linearJet) Name() string { return "linear" }

func (l linearJet) Jet(_ series.Series, x []series.Series) error {
	if len(x) != len(l.a) {
		return fmt.Errorf("%w: matrix has %d rows, jet has %d", jet.ErrDimension, len(l.a), len(x))
	}
	if len(x) == 0 {
		return nil
	}
	ctx, n := x[0].Context(), x[0].Order()
	next := make([]poly.Poly, len(x))
	for k := 0; k < n; k++ {
		for i, row := range l.a {
			acc := poly.Zero(ctx)
			for j, aij := range row {
				if aij.IsZero() {
					continue
				}
				acc = acc.Add(x[j].Coeff(k).ScaleInterval(aij))
			}
			next[i] = acc.Quo(float64(k + 1))
		}
		for i := range x {
			x[i] = x[i].SetCoeff(k+1, next[i])
		}
	}
	return nil
}

func lorenzFactory(f jet.Field) (jet.Coefficients, error) {
	l, ok := f.(*Lorenz)
	if !ok {
		return nil, fmt.Errorf("%s is not a lorenz system", f.Name())
	}
	return lorenzJet{sigma: l.Sigma, rho: l.Rho, beta: l.Beta}, nil
}

// lorenzJet forms only the k-th coefficients of the products x·y and x·z
// instead of evaluating the field on truncated series.
type lorenzJet struct {
	sigma, rho, beta float64
}

func (lorenzJet) Name() string { return "lorenz" }

func (l lorenzJet) Jet(_ series.Series, s []series.Series) error {
	if len(s) != 3 {
		return fmt.Errorf("%w: lorenz has dimension 3, jet has %d", jet.ErrDimension, len(s))
	}
	n := s[0].Order()
	for k := 0; k < n; k++ {
		x, y, z := s[0].Coeff(k), s[1].Coeff(k), s[2].Coeff(k)
		xy, xz := s[0].MulCoeff(s[1], k), s[0].MulCoeff(s[2], k)
		d := float64(k + 1)

		dx := y.Sub(x).Scale(l.sigma).Quo(d)
		dy := x.Scale(l.rho).Sub(xz).Sub(y).Quo(d)
		dz := xy.Sub(z.Scale(l.beta)).Quo(d)
		s[0] = s[0].SetCoeff(k+1, dx)
		s[1] = s[1].SetCoeff(k+1, dy)
		s[2] = s[2].SetCoeff(k+1, dz)
	}
	return nil
}
