package integrators

import (
	"math/rand"

	"github.com/san-kum/tmflow/internal/interval"
)

// Sampler draws points of a box: its center, its corners, then uniform
// random points until n are drawn.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *Sampler) Points(box interval.Box, n int) [][]float64 {
	pts := make([][]float64, 0, n)
	if n <= 0 || len(box) == 0 {
		return pts
	}
	pts = append(pts, box.Mid())

	// Corners are enumerated by the bits of c, up to 2^dim of them.
	for c := 0; len(pts) < n && len(box) < 31 && c < 1<<len(box); c++ {
		p := make([]float64, len(box))
		for i, iv := range box {
			if c&(1<<i) != 0 {
				p[i] = iv.Hi
			} else {
				p[i] = iv.Lo
			}
		}
		pts = append(pts, p)
	}

	for len(pts) < n {
		p := make([]float64, len(box))
		for i, iv := range box {
			p[i] = iv.Lo + s.rng.Float64()*(iv.Hi-iv.Lo)
		}
		pts = append(pts, p)
	}
	return pts
}
