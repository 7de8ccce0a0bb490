package taylor

import (
	"fmt"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/series"
)

// Model1 is a Taylor model in time with an absolute remainder: for every t
// in Dom the modelled value lies in s(t-x0) + rem.
type Model1 struct {
	s   series.Series
	rem interval.Interval
	x0  interval.Interval
	dom interval.Interval
}

func NewModel1(s series.Series, rem, x0, dom interval.Interval) (Model1, error) {
	if !rem.ContainsZero() {
		return Model1{}, fmt.Errorf("%w: remainder %v does not contain 0", ErrInvariant, rem)
	}
	if !x0.Subset(dom) {
		return Model1{}, fmt.Errorf("%w: expansion point %v outside domain %v", ErrInvariant, x0, dom)
	}
	return Model1{s: s, rem: rem, x0: x0, dom: dom}, nil
}

func MustModel1(s series.Series, rem, x0, dom interval.Interval) Model1 {
	m, err := NewModel1(s, rem, x0, dom)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Model1) Series() series.Series  { return m.s }
func (m Model1) Rem() interval.Interval { return m.rem }
func (m Model1) X0() interval.Interval  { return m.x0 }
func (m Model1) Dom() interval.Interval { return m.dom }
func (m Model1) Order() int             { return m.s.Order() }

// Evaluate substitutes t ⊆ Dom and returns the polynomial part together with
// the remainder, which carries over unchanged.
func (m Model1) Evaluate(t interval.Interval) (poly.Poly, interval.Interval, error) {
	if !t.Subset(m.dom) {
		return poly.Poly{}, interval.Interval{}, fmt.Errorf("%w: %v not in %v", ErrOutsideDomain, t, m.dom)
	}
	return m.s.Evaluate(t.Sub(m.x0)), m.rem, nil
}

// EvaluateN evaluates at t and packages the result as a model over the
// jet-transport variables.
func (m Model1) EvaluateN(t interval.Interval, center, domain interval.Box) (ModelN, error) {
	p, rem, err := m.Evaluate(t)
	if err != nil {
		return ModelN{}, err
	}
	return NewModelN(p, rem, center, domain)
}

// RModel1 is a Taylor model in time with a relative remainder: for every t in
// Dom the modelled value lies in s(t-x0) + rem·(t-x0)^(n+1).
type RModel1 struct {
	s   series.Series
	rem interval.Interval
	x0  interval.Interval
	dom interval.Interval
}

func NewRModel1(s series.Series, rem, x0, dom interval.Interval) (RModel1, error) {
	if !x0.Subset(dom) {
		return RModel1{}, fmt.Errorf("%w: expansion point %v outside domain %v", ErrInvariant, x0, dom)
	}
	return RModel1{s: s, rem: rem, x0: x0, dom: dom}, nil
}

func MustRModel1(s series.Series, rem, x0, dom interval.Interval) RModel1 {
	m, err := NewRModel1(s, rem, x0, dom)
	if err != nil {
		panic(err)
	}
	return m
}

func (m RModel1) Series() series.Series  { return m.s }
func (m RModel1) Rem() interval.Interval { return m.rem }
func (m RModel1) X0() interval.Interval  { return m.x0 }
func (m RModel1) Dom() interval.Interval { return m.dom }
func (m RModel1) Order() int             { return m.s.Order() }

// Evaluate returns the polynomial part at t ⊆ Dom and the remainder scaled by
// (t-x0)^(n+1).
func (m RModel1) Evaluate(t interval.Interval) (poly.Poly, interval.Interval, error) {
	if !t.Subset(m.dom) {
		return poly.Poly{}, interval.Interval{}, fmt.Errorf("%w: %v not in %v", ErrOutsideDomain, t, m.dom)
	}
	d := t.Sub(m.x0)
	return m.s.Evaluate(d), m.rem.Mul(d.Pow(m.Order() + 1)), nil
}

// Absolute converts m to absolute form over the same domain.
func (m RModel1) Absolute() Model1 {
	rem := m.rem.Mul(m.dom.Sub(m.x0).Pow(m.Order() + 1))
	return MustModel1(m.s, rem.Hull(interval.Zero()), m.x0, m.dom)
}
