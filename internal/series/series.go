// Package series implements truncated Taylor series in time whose
// coefficients are jet-transport polynomials. A Series of order n holds the
// coefficients c_0..c_n of Σ c_k τ^k.
package series

import (
	"fmt"
	"strings"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
)

// Series is immutable; operations return new values.
type Series struct {
	ctx    *poly.Context
	coeffs []poly.Poly
}

// New builds a series from its coefficients. At least one is required.
func New(ctx *poly.Context, coeffs ...poly.Poly) Series {
	if len(coeffs) == 0 {
		panic("series: no coefficients")
	}
	s := Series{ctx: ctx, coeffs: make([]poly.Poly, len(coeffs))}
	for i, c := range coeffs {
		s.coeffs[i] = bind(ctx, c)
	}
	return s
}

// Constant returns the series of the given order whose only non-zero
// coefficient is c_0 = p.
func Constant(p poly.Poly, order int) Series {
	ctx := p.Context()
	s := Zero(ctx, order)
	s.coeffs[0] = p
	return s
}

// Zero returns the zero series of the given order.
func Zero(ctx *poly.Context, order int) Series {
	if order < 0 {
		panic(fmt.Sprintf("series: negative order %d", order))
	}
	s := Series{ctx: ctx, coeffs: make([]poly.Poly, order+1)}
	for i := range s.coeffs {
		s.coeffs[i] = poly.Zero(ctx)
	}
	return s
}

// Time returns t0 + τ as a series of the given order.
func Time(ctx *poly.Context, t0 float64, order int) Series {
	s := Zero(ctx, order)
	s.coeffs[0] = poly.Const(ctx, interval.Point(t0))
	if order >= 1 {
		s.coeffs[1] = poly.Const(ctx, interval.Point(1))
	}
	return s
}

func bind(ctx *poly.Context, p poly.Poly) poly.Poly {
	switch {
	case p.Context() == nil:
		return poly.Zero(ctx)
	case p.Context() != ctx:
		panic(fmt.Sprintf("series: coefficient of %s in a series of %s", p.Context(), ctx))
	}
	return p
}

func (s Series) Context() *poly.Context { return s.ctx }

func (s Series) Order() int { return len(s.coeffs) - 1 }

// Coeff returns c_k, zero beyond the order.
func (s Series) Coeff(k int) poly.Poly {
	if k < 0 || k >= len(s.coeffs) {
		return poly.Zero(s.ctx)
	}
	return s.coeffs[k]
}

// Coeffs returns a copy of the coefficient slice.
func (s Series) Coeffs() []poly.Poly { return append([]poly.Poly(nil), s.coeffs...) }

// SetCoeff returns a copy of s with c_k replaced by p.
func (s Series) SetCoeff(k int, p poly.Poly) Series {
	if k < 0 || k > s.Order() {
		panic(fmt.Sprintf("series: coefficient %d outside order %d", k, s.Order()))
	}
	r := Series{ctx: s.ctx, coeffs: s.Coeffs()}
	r.coeffs[k] = bind(s.ctx, p)
	return r
}

// Truncate keeps c_0..c_k.
func (s Series) Truncate(k int) Series { return s.WithOrder(k) }

// WithOrder truncates or zero-pads s to the given order.
func (s Series) WithOrder(order int) Series {
	r := Zero(s.ctx, order)
	copy(r.coeffs, s.coeffs)
	return r
}

func (s Series) mustMatch(o Series) int {
	if s.ctx != o.ctx {
		panic(fmt.Sprintf("series: mixing %s and %s", s.ctx, o.ctx))
	}
	return max(s.Order(), o.Order())
}

func (s Series) Add(o Series) Series {
	n := s.mustMatch(o)
	r := Zero(s.ctx, n)
	for k := range r.coeffs {
		r.coeffs[k] = s.Coeff(k).Add(o.Coeff(k))
	}
	return r
}

func (s Series) Sub(o Series) Series {
	n := s.mustMatch(o)
	r := Zero(s.ctx, n)
	for k := range r.coeffs {
		r.coeffs[k] = s.Coeff(k).Sub(o.Coeff(k))
	}
	return r
}

func (s Series) Neg() Series {
	r := Zero(s.ctx, s.Order())
	for k, c := range s.coeffs {
		r.coeffs[k] = c.Neg()
	}
	return r
}

// Mul is the Cauchy product truncated at the larger of the two orders.
func (s Series) Mul(o Series) Series {
	n := s.mustMatch(o)
	r := Zero(s.ctx, n)
	for k := 0; k <= n; k++ {
		r.coeffs[k] = s.MulCoeff(o, k)
	}
	return r
}

// MulCoeff returns the k-th coefficient of s*o without forming the product.
func (s Series) MulCoeff(o Series, k int) poly.Poly {
	acc := poly.Zero(s.ctx)
	for i := 0; i <= k; i++ {
		a, b := s.Coeff(i), o.Coeff(k-i)
		if a.IsZero() || b.IsZero() {
			continue
		}
		acc = acc.Add(a.Mul(b))
	}
	return acc
}

// Scale multiplies by the exact real f.
func (s Series) Scale(f float64) Series { return s.ScaleInterval(interval.Point(f)) }

func (s Series) ScaleInterval(iv interval.Interval) Series {
	r := Zero(s.ctx, s.Order())
	for k, c := range s.coeffs {
		r.coeffs[k] = c.ScaleInterval(iv)
	}
	return r
}

// AddConst adds the exact real f to c_0.
func (s Series) AddConst(f float64) Series {
	return s.SetCoeff(0, s.coeffs[0].AddConst(interval.Point(f)))
}

// Pow returns s^n for n >= 0.
func (s Series) Pow(n int) Series {
	if n < 0 {
		panic(fmt.Sprintf("series: negative power %d", n))
	}
	r := Constant(poly.Const(s.ctx, interval.Point(1)), s.Order())
	for i := 0; i < n; i++ {
		r = r.Mul(s)
	}
	return r
}

// Evaluate substitutes τ and returns the resulting polynomial, by Horner's
// rule.
func (s Series) Evaluate(tau interval.Interval) poly.Poly {
	n := s.Order()
	acc := s.coeffs[n]
	for k := n - 1; k >= 0; k-- {
		acc = acc.ScaleInterval(tau).Add(s.coeffs[k])
	}
	return acc
}

func (s Series) String() string {
	var b strings.Builder
	for k, c := range s.coeffs {
		if c.IsZero() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "(%s)", c)
		if k > 0 {
			fmt.Fprintf(&b, "·τ^%d", k)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
