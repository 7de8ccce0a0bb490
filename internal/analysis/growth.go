package analysis

import (
	"math"

	"github.com/san-kum/tmflow/internal/validated"
)

// WidthSeries returns, for every accepted time of r, the widest component
// of the endpoint enclosure.
func WidthSeries(r *validated.Result) []float64 {
	w := make([]float64, len(r.Endpoints))
	for j, box := range r.Endpoints {
		for _, iv := range box {
			w[j] = math.Max(w[j], iv.Width())
		}
	}
	return w
}

// ComponentWidths returns the width of component i of every endpoint.
func ComponentWidths(r *validated.Result, i int) []float64 {
	w := make([]float64, len(r.Endpoints))
	for j, box := range r.Endpoints {
		if i < len(box) {
			w[j] = box[i].Width()
		}
	}
	return w
}

// GrowthRate fits ln(width) against time by least squares and returns the
// slope. Samples with zero width carry no information and are skipped;
// fewer than two usable samples give 0.
func GrowthRate(r *validated.Result) float64 {
	widths := WidthSeries(r)

	var n, sumT, sumL, sumTT, sumTL float64
	for j, w := range widths {
		if w <= 0 || math.IsInf(w, 0) {
			continue
		}
		t, l := r.Times[j], math.Log(w)
		n++
		sumT += t
		sumL += l
		sumTT += t * t
		sumTL += t * l
	}

	if n < 2 {
		return 0
	}
	den := n*sumTT - sumT*sumT
	if den == 0 {
		return 0
	}
	return (n*sumTL - sumT*sumL) / den
}

// Doubling is the time for the width to double at the given growth rate,
// +Inf when the width does not grow.
func Doubling(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / rate
}
