package interval

import (
	"fmt"
	"strings"
)

// Box is an interval vector.
type Box []Interval

// ZeroBox returns n copies of [0, 0].
func ZeroBox(n int) Box { return make(Box, n) }

// Symmetric returns [-1, 1]^n.
func Symmetric(n int) Box { return Fill(n, New(-1, 1)) }

// Unit returns [0, 1]^n.
func Unit(n int) Box { return Fill(n, New(0, 1)) }

func Fill(n int, iv Interval) Box {
	b := make(Box, n)
	for i := range b {
		b[i] = iv
	}
	return b
}

// PointBox returns the thin box at x.
func PointBox(x []float64) Box {
	b := make(Box, len(x))
	for i, v := range x {
		b[i] = Point(v)
	}
	return b
}

func (b Box) Clone() Box {
	c := make(Box, len(b))
	copy(c, b)
	return c
}

func (b Box) Add(o Box) Box {
	b.mustMatch(o)
	r := make(Box, len(b))
	for i := range b {
		r[i] = b[i].Add(o[i])
	}
	return r
}

func (b Box) Sub(o Box) Box {
	b.mustMatch(o)
	r := make(Box, len(b))
	for i := range b {
		r[i] = b[i].Sub(o[i])
	}
	return r
}

// Mul multiplies every component by s.
func (b Box) Mul(s Interval) Box {
	r := make(Box, len(b))
	for i := range b {
		r[i] = b[i].Mul(s)
	}
	return r
}

func (b Box) Hull(o Box) Box {
	b.mustMatch(o)
	r := make(Box, len(b))
	for i := range b {
		r[i] = b[i].Hull(o[i])
	}
	return r
}

// Subset reports b ⊆ o component-wise.
func (b Box) Subset(o Box) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if !b[i].Subset(o[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether the point x lies in b.
func (b Box) Contains(x []float64) bool {
	if len(b) != len(x) {
		return false
	}
	for i := range b {
		if !b[i].Contains(x[i]) {
			return false
		}
	}
	return true
}

func (b Box) Equal(o Box) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

func (b Box) Widen() Box {
	r := make(Box, len(b))
	for i := range b {
		r[i] = b[i].Widen()
	}
	return r
}

// Width returns the largest component width.
func (b Box) Width() float64 {
	w := 0.0
	for _, iv := range b {
		w = max(w, iv.Width())
	}
	return w
}

func (b Box) Mid() []float64 {
	m := make([]float64, len(b))
	for i, iv := range b {
		m[i] = iv.Mid()
	}
	return m
}

func (b Box) String() string {
	parts := make([]string, len(b))
	for i, iv := range b {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " × ")
}

func (b Box) mustMatch(o Box) {
	if len(b) != len(o) {
		panic(fmt.Sprintf("interval: box dimensions %d and %d differ", len(b), len(o)))
	}
}
