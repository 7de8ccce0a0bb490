package interval

import (
	"fmt"
	"math"
)

// Interval is a closed interval [Lo, Hi] of reals. Every operation returns
// an interval that contains the exact result for all points of its operands.
type Interval struct {
	Lo, Hi float64
}

// New returns [lo, hi]. It panics when lo > hi or either bound is NaN.
func New(lo, hi float64) Interval {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		panic(fmt.Sprintf("interval: invalid bounds [%g, %g]", lo, hi))
	}
	return Interval{Lo: lo, Hi: hi}
}

// Point returns the thin interval [x, x].
func Point(x float64) Interval { return New(x, x) }

// Zero returns [0, 0].
func Zero() Interval { return Interval{} }

// Entire returns the whole real line.
func Entire() Interval { return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)} }

func (a Interval) Add(b Interval) Interval {
	return Interval{Lo: addDown(a.Lo, b.Lo), Hi: addUp(a.Hi, b.Hi)}
}

func (a Interval) Sub(b Interval) Interval {
	return Interval{Lo: subDown(a.Lo, b.Hi), Hi: subUp(a.Hi, b.Lo)}
}

func (a Interval) Neg() Interval { return Interval{Lo: -a.Hi, Hi: -a.Lo} }

func (a Interval) Mul(b Interval) Interval {
	if a.IsZero() || b.IsZero() {
		return Zero()
	}
	lo := math.Min(
		math.Min(mulDown(a.Lo, b.Lo), mulDown(a.Lo, b.Hi)),
		math.Min(mulDown(a.Hi, b.Lo), mulDown(a.Hi, b.Hi)),
	)
	hi := math.Max(
		math.Max(mulUp(a.Lo, b.Lo), mulUp(a.Lo, b.Hi)),
		math.Max(mulUp(a.Hi, b.Lo), mulUp(a.Hi, b.Hi)),
	)
	return Interval{Lo: lo, Hi: hi}
}

// Div returns a/b. A divisor containing zero yields the entire line.
func (a Interval) Div(b Interval) Interval {
	if b.ContainsZero() {
		return Entire()
	}
	lo := math.Min(
		math.Min(divDown(a.Lo, b.Lo), divDown(a.Lo, b.Hi)),
		math.Min(divDown(a.Hi, b.Lo), divDown(a.Hi, b.Hi)),
	)
	hi := math.Max(
		math.Max(divUp(a.Lo, b.Lo), divUp(a.Lo, b.Hi)),
		math.Max(divUp(a.Hi, b.Lo), divUp(a.Hi, b.Hi)),
	)
	return Interval{Lo: lo, Hi: hi}
}

// Scale multiplies by the exact real f.
func (a Interval) Scale(f float64) Interval { return a.Mul(Point(f)) }

// Quo divides by the exact real f.
func (a Interval) Quo(f float64) Interval { return a.Div(Point(f)) }

// Reciprocal returns 1/a.
func (a Interval) Reciprocal() Interval { return Point(1).Div(a) }

func (a Interval) Sqr() Interval {
	m, M := a.Mig(), a.Mag()
	return Interval{Lo: mulDown(m, m), Hi: mulUp(M, M)}
}

// Pow returns a^n. Even powers use the magnitude bounds so the result never
// goes below zero; negative n is 1/a^-n.
func (a Interval) Pow(n int) Interval {
	switch {
	case n < 0:
		return a.Pow(-n).Reciprocal()
	case n == 0:
		return Point(1)
	case n%2 == 0:
		return Interval{Lo: powDown(a.Mig(), n), Hi: powUp(a.Mag(), n)}
	}
	return Interval{Lo: oddPowDown(a.Lo, n), Hi: oddPowUp(a.Hi, n)}
}

func oddPowDown(x float64, n int) float64 {
	if x < 0 {
		return -powUp(-x, n)
	}
	return powDown(x, n)
}

func oddPowUp(x float64, n int) float64 {
	if x < 0 {
		return -powDown(-x, n)
	}
	return powUp(x, n)
}

// Root returns the k-th root of the non-negative part of a. math.Pow is not
// correctly rounded, so both bounds are moved two ulps outward.
func (a Interval) Root(k int) Interval {
	if k <= 0 {
		panic(fmt.Sprintf("interval: root of order %d", k))
	}
	lo, hi := math.Max(a.Lo, 0), math.Max(a.Hi, 0)
	e := 1 / float64(k)
	r := Interval{Hi: hi}
	if lo > 0 {
		r.Lo = math.Max(prev(prev(math.Pow(lo, e))), 0)
	}
	if hi > 0 && !math.IsInf(hi, 1) {
		r.Hi = next(next(math.Pow(hi, e)))
	}
	return r
}

// Abs returns {|x| : x in a}.
func (a Interval) Abs() Interval {
	switch {
	case a.Lo >= 0:
		return a
	case a.Hi <= 0:
		return a.Neg()
	}
	return Interval{Lo: 0, Hi: a.Mag()}
}

// Max returns the interval of pointwise maxima.
func (a Interval) Max(b Interval) Interval {
	return Interval{Lo: math.Max(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

func (a Interval) Hull(b Interval) Interval {
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

// Intersect returns a ∩ b and false when they are disjoint.
func (a Interval) Intersect(b Interval) (Interval, bool) {
	lo, hi := math.Max(a.Lo, b.Lo), math.Min(a.Hi, b.Hi)
	if lo > hi {
		return Interval{}, false
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// Subset reports a ⊆ b.
func (a Interval) Subset(b Interval) bool { return b.Lo <= a.Lo && a.Hi <= b.Hi }

func (a Interval) Contains(x float64) bool { return a.Lo <= x && x <= a.Hi }

func (a Interval) ContainsZero() bool { return a.Contains(0) }

// Equal is bitwise equality of the bounds.
func (a Interval) Equal(b Interval) bool { return a == b }

func (a Interval) IsZero() bool { return a.Lo == 0 && a.Hi == 0 }

func (a Interval) IsThin() bool { return a.Lo == a.Hi }

// Widen moves each bound one floating-point step outward.
func (a Interval) Widen() Interval { return Interval{Lo: prev(a.Lo), Hi: next(a.Hi)} }

// Mid returns a representable point of a close to its center.
func (a Interval) Mid() float64 {
	switch {
	case math.IsInf(a.Lo, -1) && math.IsInf(a.Hi, 1):
		return 0
	case math.IsInf(a.Lo, -1):
		return -math.MaxFloat64
	case math.IsInf(a.Hi, 1):
		return math.MaxFloat64
	}
	m := a.Lo/2 + a.Hi/2
	return math.Min(math.Max(m, a.Lo), a.Hi)
}

// Rad returns r such that [Mid-r, Mid+r] contains a.
func (a Interval) Rad() float64 {
	m := a.Mid()
	return math.Max(subUp(a.Hi, m), subUp(m, a.Lo))
}

// Width returns an upper bound of Hi-Lo.
func (a Interval) Width() float64 { return subUp(a.Hi, a.Lo) }

// Mag returns max |x| over a.
func (a Interval) Mag() float64 { return math.Max(math.Abs(a.Lo), math.Abs(a.Hi)) }

// Mig returns min |x| over a.
func (a Interval) Mig() float64 {
	if a.ContainsZero() {
		return 0
	}
	return math.Min(math.Abs(a.Lo), math.Abs(a.Hi))
}

// Lower is the conservative value of a used where a single real is needed.
func (a Interval) Lower() float64 { return a.Lo }

func (a Interval) String() string { return fmt.Sprintf("[%g, %g]", a.Lo, a.Hi) }
