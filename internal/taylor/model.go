// Package taylor implements Taylor models: a polynomial part together with
// an interval remainder such that the modelled function lies in
// polynomial + remainder for every point of the domain.
//
//   - [ModelN]: polynomial in the N jet-transport variables, absolute remainder
//   - [Model1]: series in time, absolute remainder
//   - [RModel1]: series in time, remainder relative to (t-x0)^(n+1)
//
// Constructors check the invariants and return [ErrInvariant] on violation;
// the Must variants panic instead. Models are immutable.
package taylor

import (
	"errors"
	"fmt"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
)

var (
	// ErrInvariant indicates a model whose fields break the Taylor-model
	// contract.
	ErrInvariant = errors.New("taylor: invariant violated")

	// ErrOutsideDomain indicates an evaluation point not contained in the
	// model domain.
	ErrOutsideDomain = errors.New("taylor: evaluation outside domain")

	// ErrIncompatible indicates models over different centers or domains.
	ErrIncompatible = errors.New("taylor: incompatible models")
)

// ModelN is a Taylor model over the N-dimensional box Domain, expanded
// around Center.
type ModelN struct {
	p      poly.Poly
	rem    interval.Interval
	center interval.Box
	domain interval.Box
}

// NewModelN checks that the box dimensions match the number of variables of
// p's context, that rem contains 0, and that center lies inside domain.
func NewModelN(p poly.Poly, rem interval.Interval, center, domain interval.Box) (ModelN, error) {
	ctx := p.Context()
	if ctx == nil {
		return ModelN{}, fmt.Errorf("%w: polynomial has no context", ErrInvariant)
	}
	if len(center) != ctx.NumVars() || len(domain) != ctx.NumVars() {
		return ModelN{}, fmt.Errorf("%w: boxes of dimension %d/%d for %d variables",
			ErrInvariant, len(center), len(domain), ctx.NumVars())
	}
	if !rem.ContainsZero() {
		return ModelN{}, fmt.Errorf("%w: remainder %v does not contain 0", ErrInvariant, rem)
	}
	if !center.Subset(domain) {
		return ModelN{}, fmt.Errorf("%w: center %v outside domain %v", ErrInvariant, center, domain)
	}
	return ModelN{p: p, rem: rem, center: center.Clone(), domain: domain.Clone()}, nil
}

// MustModelN is NewModelN for callers whose inputs satisfy the invariants by
// construction.
func MustModelN(p poly.Poly, rem interval.Interval, center, domain interval.Box) ModelN {
	m, err := NewModelN(p, rem, center, domain)
	if err != nil {
		panic(err)
	}
	return m
}

func (m ModelN) Poly() poly.Poly        { return m.p }
func (m ModelN) Rem() interval.Interval { return m.rem }
func (m ModelN) Center() interval.Box   { return m.center.Clone() }
func (m ModelN) Domain() interval.Box   { return m.domain.Clone() }
func (m ModelN) Context() *poly.Context { return m.p.Context() }
func (m ModelN) Order() int             { return m.p.Context().Order() }

// Evaluate encloses the modelled function over box, which must lie in the
// domain.
func (m ModelN) Evaluate(box interval.Box) (interval.Interval, error) {
	if !box.Subset(m.domain) {
		return interval.Interval{}, fmt.Errorf("%w: %v not in %v", ErrOutsideDomain, box, m.domain)
	}
	return m.p.Evaluate(box.Sub(m.center)).Add(m.rem), nil
}

// Bound encloses the modelled function over the whole domain.
func (m ModelN) Bound() interval.Interval {
	v, _ := m.Evaluate(m.domain)
	return v
}

// Add sums two models over the same center and domain; remainders add.
func (m ModelN) Add(o ModelN) (ModelN, error) {
	if !m.center.Equal(o.center) || !m.domain.Equal(o.domain) {
		return ModelN{}, ErrIncompatible
	}
	return NewModelN(m.p.Add(o.p), m.rem.Add(o.rem), m.center, m.domain)
}

// WithRem returns a copy of m whose remainder is widened by r.
func (m ModelN) WithRem(r interval.Interval) (ModelN, error) {
	return NewModelN(m.p, m.rem.Add(r), m.center, m.domain)
}

func (m ModelN) String() string {
	return fmt.Sprintf("%s + %v", m.p, m.rem)
}
