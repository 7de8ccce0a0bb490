package interval

import (
	"math"
	"strconv"
)

// Scalar is the capability set shared by the numeric fields a step-size
// bound can be computed in. Interval bounds every result; Real computes with
// plain floats.
type Scalar[T any] interface {
	ContainsZero() bool
	// Lower is the value to act on: the lower bound for an enclosure, the
	// value itself for a real.
	Lower() float64
	Reciprocal() T
	Scale(f float64) T
	Root(k int) T
}

var (
	_ Scalar[Interval] = Interval{}
	_ Scalar[Real]     = Real(0)
)

// Real is a plain float64 that satisfies Scalar.
type Real float64

func (r Real) ContainsZero() bool   { return r == 0 }
func (r Real) Lower() float64       { return float64(r) }
func (r Real) Reciprocal() Real     { return 1 / r }
func (r Real) Scale(f float64) Real { return r * Real(f) }

func (r Real) Root(k int) Real {
	return Real(math.Pow(float64(r), 1/float64(k)))
}

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }
