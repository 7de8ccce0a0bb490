package interval

import "math"

// Directed rounding is emulated on top of round-to-nearest: the exact error
// of each operation is recovered with an error-free transformation and the
// nearest result is moved one ulp only when the error points outward.

// tiny is the magnitude below which FMA residuals may themselves round, so
// results there are bumped unconditionally.
const tiny = 0x1p-969

func next(x float64) float64 { return math.Nextafter(x, math.Inf(1)) }
func prev(x float64) float64 { return math.Nextafter(x, math.Inf(-1)) }

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// roundUp returns the smallest float >= s+e, where s+e is the exact result
// of an operation on finite operands.
func roundUp(s, e float64, exact bool) float64 {
	switch {
	case math.IsInf(s, -1):
		return -math.MaxFloat64
	case math.IsInf(s, 1):
		return s
	case !exact:
		return next(s)
	case e > 0:
		return next(s)
	}
	return s
}

func roundDown(s, e float64, exact bool) float64 {
	switch {
	case math.IsInf(s, 1):
		return math.MaxFloat64
	case math.IsInf(s, -1):
		return s
	case !exact:
		return prev(s)
	case e < 0:
		return prev(s)
	}
	return s
}

func addUp(a, b float64) float64 {
	if !finite(a, b) {
		return a + b
	}
	s, e := twoSum(a, b)
	return roundUp(s, e, true)
}

func addDown(a, b float64) float64 {
	if !finite(a, b) {
		return a + b
	}
	s, e := twoSum(a, b)
	return roundDown(s, e, true)
}

func subUp(a, b float64) float64   { return addUp(a, -b) }
func subDown(a, b float64) float64 { return addDown(a, -b) }

func mulResidual(a, b float64) (p, e float64, exact bool) {
	p = a * b
	if math.Abs(p) < tiny {
		return p, 0, false
	}
	return p, math.FMA(a, b, -p), true
}

func mulUp(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	if !finite(a, b) {
		return a * b
	}
	p, e, exact := mulResidual(a, b)
	return roundUp(p, e, exact)
}

func mulDown(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	if !finite(a, b) {
		return a * b
	}
	p, e, exact := mulResidual(a, b)
	return roundDown(p, e, exact)
}

// divResidual returns q = fl(a/b) and a value whose sign is the sign of
// a/b - q.
func divResidual(a, b float64) (q, e float64, exact bool) {
	q = a / b
	if math.Abs(q) < tiny || math.Abs(a) < tiny {
		return q, 0, false
	}
	r := math.FMA(-q, b, a)
	if b < 0 {
		r = -r
	}
	return q, r, true
}

func divUp(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	if !finite(a, b) {
		return a / b
	}
	q, e, exact := divResidual(a, b)
	return roundUp(q, e, exact)
}

func divDown(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	if !finite(a, b) {
		return a / b
	}
	q, e, exact := divResidual(a, b)
	return roundDown(q, e, exact)
}

// powUp and powDown bound x^n for x >= 0.
func powUp(x float64, n int) float64 {
	r := 1.0
	for i := 0; i < n; i++ {
		r = mulUp(r, x)
	}
	return r
}

func powDown(x float64, n int) float64 {
	r := 1.0
	for i := 0; i < n; i++ {
		r = mulDown(r, x)
	}
	return r
}
