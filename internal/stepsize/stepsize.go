// Package stepsize picks the length of a Taylor integration step from the
// size of the last two coefficients of the expansion.
package stepsize

import (
	"fmt"
	"math"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/series"
)

// Select returns the largest h with |c_k|·h^k <= tol for k in {ord-1, ord}
// over every dimension. norms[0] holds the per-dimension sup-norms at order
// ord-1, norms[1] those at order ord. A norm whose value set contains zero
// gives no bound; when no norm does, Select returns +Inf.
//
// For interval norms the lower bound of each candidate is used, so the
// result never exceeds the true bound.
func Select[T interval.Scalar[T]](norms [][]T, ord int, tol float64) float64 {
	if len(norms) != 2 {
		panic(fmt.Sprintf("stepsize: need norms at two orders, got %d", len(norms)))
	}
	h := math.Inf(1)
	for j, k := range [2]int{ord - 1, ord} {
		if k < 1 {
			continue
		}
		for _, aux := range norms[j] {
			if aux.ContainsZero() {
				continue
			}
			hk := aux.Reciprocal().Scale(tol).Root(k)
			h = math.Min(h, hk.Lower())
		}
	}
	return h
}

// ForJet computes the sup-norms of the polynomial parts of the two highest
// coefficients of x and returns Select over them.
func ForJet(x []series.Series, tol float64) float64 {
	if len(x) == 0 {
		return math.Inf(1)
	}
	ord := x[0].Order()
	norms := [][]interval.Interval{make([]interval.Interval, len(x)), make([]interval.Interval, len(x))}
	for i, xi := range x {
		norms[0][i] = xi.Coeff(ord - 1).Norm()
		norms[1][i] = xi.Coeff(ord).Norm()
	}
	return Select(norms, ord, tol)
}
