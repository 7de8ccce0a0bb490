// Package poly implements truncated multivariate polynomials with interval
// coefficients, the jet-transport algebra that carries the dependence of a
// flow on its normalized initial conditions.
//
// Every polynomial is bound to a [Context] fixing the number of variables and
// the truncation order. Contexts are immutable; changing either parameter
// means building a new context, and values built on the old one can no
// longer be combined with values built on the new one:
//
//	ctx := poly.NewContext(2, 8)
//	x, y := poly.Variable(ctx, 0), poly.Variable(ctx, 1)
//	p := x.Mul(y).AddConst(interval.Point(1))
//	v := p.Evaluate(interval.Symmetric(2))
//
// Arithmetic mixing two contexts is a programming error and panics.
package poly

import "fmt"

// Context is the jet-transport configuration: number of variables and the
// order at which products are truncated.
type Context struct {
	numVars int
	order   int
	base    int
	exps    [][]int
	keys    []int
	degree  []int
	start   []int
	index   map[int]int
}

// NewContext builds the monomial tables for numVars variables up to total
// degree order. Monomials are sorted by degree, then lexicographically with
// the first variable carrying the largest exponent first.
func NewContext(numVars, order int) *Context {
	if numVars < 1 || order < 0 {
		panic(fmt.Sprintf("poly: invalid context (%d variables, order %d)", numVars, order))
	}
	c := &Context{
		numVars: numVars,
		order:   order,
		base:    order + 1,
		start:   make([]int, order+2),
		index:   make(map[int]int),
	}
	for d := 0; d <= order; d++ {
		c.start[d] = len(c.exps)
		c.enumerate(make([]int, numVars), 0, d)
	}
	c.start[order+1] = len(c.exps)
	return c
}

func (c *Context) enumerate(e []int, v, left int) {
	if v == c.numVars-1 {
		e[v] = left
		exps := append([]int(nil), e...)
		key := c.key(exps)
		c.index[key] = len(c.exps)
		c.exps = append(c.exps, exps)
		c.keys = append(c.keys, key)
		c.degree = append(c.degree, sum(exps))
		return
	}
	for k := left; k >= 0; k-- {
		e[v] = k
		c.enumerate(e, v+1, left-k)
	}
}

func (c *Context) key(exps []int) int {
	k, m := 0, 1
	for _, e := range exps {
		k += e * m
		m *= c.base
	}
	return k
}

func sum(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}

func (c *Context) NumVars() int { return c.numVars }
func (c *Context) Order() int   { return c.order }

// Len is the number of monomials of degree at most Order.
func (c *Context) Len() int { return len(c.exps) }

// WithOrder returns a context over the same variables truncated at order.
// Values built on c stay bound to c.
func (c *Context) WithOrder(order int) *Context {
	if order == c.order {
		return c
	}
	return NewContext(c.numVars, order)
}

// Exponents returns a copy of the exponent vector of monomial i.
func (c *Context) Exponents(i int) []int {
	return append([]int(nil), c.exps[i]...)
}

// Index returns the position of the monomial with the given exponents.
func (c *Context) Index(exps []int) (int, bool) {
	if len(exps) != c.numVars {
		return 0, false
	}
	d := 0
	for _, e := range exps {
		if e < 0 {
			return 0, false
		}
		d += e
	}
	if d > c.order {
		return 0, false
	}
	i, ok := c.index[c.key(exps)]
	return i, ok
}

func (c *Context) String() string {
	return fmt.Sprintf("poly.Context{vars: %d, order: %d}", c.numVars, c.order)
}
