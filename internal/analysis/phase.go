package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

// Rect is the projection of a box onto two components.
type Rect struct {
	X, Y interval.Interval
}

// PhaseBoxes projects the whole-step boxes of r onto components xIdx and
// yIdx. Index 0 is the initial box.
func PhaseBoxes(r *validated.Result, xIdx, yIdx int) ([]Rect, error) {
	if len(r.Boxes) == 0 {
		return nil, nil
	}
	dim := len(r.Boxes[0])
	if xIdx < 0 || yIdx < 0 || xIdx >= dim || yIdx >= dim {
		return nil, fmt.Errorf("components (%d, %d) out of range for dimension %d", xIdx, yIdx, dim)
	}
	rects := make([]Rect, len(r.Boxes))
	for j, box := range r.Boxes {
		rects[j] = Rect{X: box[xIdx], Y: box[yIdx]}
	}
	return rects, nil
}

// PhaseToASCII fills every cell touched by a rectangle with '█' on a
// width×height canvas, with axes drawn where they cross the visible area.
func PhaseToASCII(rects []Rect, width, height int) string {
	if len(rects) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := rects[0].X.Lo, rects[0].X.Hi
	minY, maxY := rects[0].Y.Lo, rects[0].Y.Hi
	for _, r := range rects {
		minX, maxX = math.Min(minX, r.X.Lo), math.Max(maxX, r.X.Hi)
		minY, maxY = math.Min(minY, r.Y.Lo), math.Max(maxY, r.Y.Hi)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	col := func(x float64) int {
		return clamp(int((x-minX)/rangeX*float64(width-1)), width)
	}
	row := func(y float64) int {
		return clamp(height-1-int((y-minY)/rangeY*float64(height-1)), height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range canvas {
			canvas[r][c] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range canvas[r] {
			if canvas[r][c] == '│' {
				canvas[r][c] = '┼'
			} else {
				canvas[r][c] = '─'
			}
		}
	}

	for _, rect := range rects {
		for r := row(rect.Y.Hi); r <= row(rect.Y.Lo); r++ {
			for c := col(rect.X.Lo); c <= col(rect.X.Hi); c++ {
				canvas[r][c] = '█'
			}
		}
	}

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}
