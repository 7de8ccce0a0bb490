package poly

import (
	"fmt"
	"strings"

	"github.com/san-kum/tmflow/internal/interval"
)

// Poly is a polynomial with interval coefficients truncated at the order of
// its context. Values are immutable; the zero value is the zero polynomial
// and adopts the context of whatever it is combined with.
type Poly struct {
	ctx    *Context
	coeffs []interval.Interval
}

// Zero returns the zero polynomial of ctx.
func Zero(ctx *Context) Poly {
	return Poly{ctx: ctx, coeffs: make([]interval.Interval, ctx.Len())}
}

// Const returns the constant polynomial c.
func Const(ctx *Context, c interval.Interval) Poly {
	p := Zero(ctx)
	p.coeffs[0] = c
	return p
}

// Variable returns the polynomial ξ_i (0-based).
func Variable(ctx *Context, i int) Poly {
	if i < 0 || i >= ctx.numVars {
		panic(fmt.Sprintf("poly: variable %d outside %s", i, ctx))
	}
	p := Zero(ctx)
	e := make([]int, ctx.numVars)
	e[i] = 1
	if ctx.order >= 1 {
		idx, _ := ctx.Index(e)
		p.coeffs[idx] = interval.Point(1)
	}
	return p
}

// FromCoeffs builds a polynomial from coefficients in context order.
func FromCoeffs(ctx *Context, coeffs []interval.Interval) Poly {
	if len(coeffs) != ctx.Len() {
		panic(fmt.Sprintf("poly: %d coefficients for %s", len(coeffs), ctx))
	}
	return Poly{ctx: ctx, coeffs: append([]interval.Interval(nil), coeffs...)}
}

func (p Poly) Context() *Context { return p.ctx }

func (p Poly) at(i int) interval.Interval {
	if i < len(p.coeffs) {
		return p.coeffs[i]
	}
	return interval.Zero()
}

// Coeffs returns a copy of the coefficients in context order.
func (p Poly) Coeffs() []interval.Interval {
	return append([]interval.Interval(nil), p.coeffs...)
}

// Coeff returns the coefficient of the monomial with the given exponents,
// zero when it is beyond the truncation order.
func (p Poly) Coeff(exps ...int) interval.Interval {
	if p.ctx == nil {
		return interval.Zero()
	}
	i, ok := p.ctx.Index(exps)
	if !ok {
		return interval.Zero()
	}
	return p.at(i)
}

// Constant returns the degree-zero coefficient.
func (p Poly) Constant() interval.Interval { return p.at(0) }

// Degree is the highest degree with a coefficient other than [0, 0], or -1.
func (p Poly) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if !p.coeffs[i].IsZero() {
			return p.ctx.degree[i]
		}
	}
	return -1
}

func (p Poly) IsZero() bool { return p.Degree() < 0 }

func (p Poly) bind(q Poly) *Context {
	switch {
	case p.ctx == nil:
		return q.ctx
	case q.ctx == nil || p.ctx == q.ctx:
		return p.ctx
	}
	panic(fmt.Sprintf("poly: mixing values of %s and %s", p.ctx, q.ctx))
}

func (p Poly) Add(q Poly) Poly {
	ctx := p.bind(q)
	if ctx == nil {
		return Poly{}
	}
	r := Zero(ctx)
	for i := range r.coeffs {
		r.coeffs[i] = p.at(i).Add(q.at(i))
	}
	return r
}

func (p Poly) Sub(q Poly) Poly {
	ctx := p.bind(q)
	if ctx == nil {
		return Poly{}
	}
	r := Zero(ctx)
	for i := range r.coeffs {
		r.coeffs[i] = p.at(i).Sub(q.at(i))
	}
	return r
}

func (p Poly) Neg() Poly {
	r := Poly{ctx: p.ctx, coeffs: make([]interval.Interval, len(p.coeffs))}
	for i, c := range p.coeffs {
		r.coeffs[i] = c.Neg()
	}
	return r
}

// Mul returns the product truncated at the context order.
func (p Poly) Mul(q Poly) Poly {
	ctx := p.bind(q)
	if ctx == nil {
		return Poly{}
	}
	r := Zero(ctx)
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		limit := ctx.start[ctx.order-ctx.degree[i]+1]
		for j := 0; j < limit && j < len(q.coeffs); j++ {
			b := q.coeffs[j]
			if b.IsZero() {
				continue
			}
			k := ctx.index[ctx.keys[i]+ctx.keys[j]]
			r.coeffs[k] = r.coeffs[k].Add(a.Mul(b))
		}
	}
	return r
}

// ScaleInterval multiplies every coefficient by s.
func (p Poly) ScaleInterval(s interval.Interval) Poly {
	r := Poly{ctx: p.ctx, coeffs: make([]interval.Interval, len(p.coeffs))}
	for i, c := range p.coeffs {
		r.coeffs[i] = c.Mul(s)
	}
	return r
}

// Scale multiplies every coefficient by the exact real f.
func (p Poly) Scale(f float64) Poly { return p.ScaleInterval(interval.Point(f)) }

// Quo divides every coefficient by the exact real f.
func (p Poly) Quo(f float64) Poly {
	d := interval.Point(f)
	r := Poly{ctx: p.ctx, coeffs: make([]interval.Interval, len(p.coeffs))}
	for i, c := range p.coeffs {
		r.coeffs[i] = c.Div(d)
	}
	return r
}

// AddConst adds c to the constant term.
func (p Poly) AddConst(c interval.Interval) Poly {
	if p.ctx == nil {
		panic("poly: AddConst on a polynomial without context")
	}
	r := FromCoeffs(p.ctx, p.coeffs)
	r.coeffs[0] = r.coeffs[0].Add(c)
	return r
}

// Pow returns p^n for n >= 0.
func (p Poly) Pow(n int) Poly {
	if n < 0 {
		panic(fmt.Sprintf("poly: negative power %d", n))
	}
	r := Const(p.ctx, interval.Point(1))
	base := p
	for n > 0 {
		if n&1 == 1 {
			r = r.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return r
}

// Evaluate encloses the range of p over box.
func (p Poly) Evaluate(box interval.Box) interval.Interval {
	if p.ctx == nil {
		return interval.Zero()
	}
	if len(box) != p.ctx.numVars {
		panic(fmt.Sprintf("poly: evaluating %s on a %d-box", p.ctx, len(box)))
	}
	powers := make([][]interval.Interval, len(box))
	for v, iv := range box {
		powers[v] = make([]interval.Interval, p.ctx.order+1)
		powers[v][0] = interval.Point(1)
		for e := 1; e <= p.ctx.order; e++ {
			powers[v][e] = iv.Pow(e)
		}
	}
	total := interval.Zero()
	for i, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		term := c
		for v, e := range p.ctx.exps[i] {
			if e > 0 {
				term = term.Mul(powers[v][e])
			}
		}
		total = total.Add(term)
	}
	return total
}

// Norm is the sup-norm of the coefficient vector: the hull over all
// coefficients c of |c|, taken bound-wise.
func (p Poly) Norm() interval.Interval {
	n := interval.Zero()
	for _, c := range p.coeffs {
		n = n.Max(c.Abs())
	}
	return n
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(c.String())
		for v, e := range p.ctx.exps[i] {
			switch {
			case e == 1:
				fmt.Fprintf(&b, "·ξ%d", v+1)
			case e > 1:
				fmt.Fprintf(&b, "·ξ%d^%d", v+1, e)
			}
		}
	}
	return b.String()
}
