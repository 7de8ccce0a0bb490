// Package export renders stored enclosures as standalone SVG images.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/tmflow/internal/analysis"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// pad widens b by 10% on every side. Empty ranges become unit ranges.
func (b bounds) pad() bounds {
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	return bounds{b.minX - rx*0.1, b.maxX + rx*0.1, b.minY - ry*0.1, b.maxY + ry*0.1}
}

func (b bounds) x(v float64, width int) float64 {
	return (v - b.minX) / (b.maxX - b.minX) * float64(width)
}

func (b bounds) y(v float64, height int) float64 {
	return float64(height) - (v-b.minY)/(b.maxY-b.minY)*float64(height)
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// PhaseSVG draws every rectangle as a translucent box, so overlapping step
// boxes show as denser regions.
func PhaseSVG(rects []analysis.Rect, width, height int, fill string) string {
	if len(rects) == 0 {
		return ""
	}

	b := bounds{rects[0].X.Lo, rects[0].X.Hi, rects[0].Y.Lo, rects[0].Y.Hi}
	for _, r := range rects {
		b.minX, b.maxX = math.Min(b.minX, r.X.Lo), math.Max(b.maxX, r.X.Hi)
		b.minY, b.maxY = math.Min(b.minY, r.Y.Lo), math.Max(b.maxY, r.Y.Hi)
	}
	b = b.pad()

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\" fill-opacity=\"0.35\" stroke=\"%s\" stroke-width=\"0.5\">\n", fill, fill)
	for _, r := range rects {
		x0, x1 := b.x(r.X.Lo, width), b.x(r.X.Hi, width)
		y0, y1 := b.y(r.Y.Hi, height), b.y(r.Y.Lo, height)
		// keep degenerate boxes visible
		w, h := math.Max(x1-x0, 0.5), math.Max(y1-y0, 0.5)
		fmt.Fprintf(&sb, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"/>\n", x0, y0, w, h)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// BandSVG draws the area between lo and hi over times as one closed path:
// forward along the upper bound and back along the lower one.
func BandSVG(times, lo, hi []float64, width, height int, fill string) string {
	n := min(len(times), len(lo), len(hi))
	if n < 2 {
		return ""
	}

	b := bounds{times[0], times[n-1], lo[0], hi[0]}
	for i := 0; i < n; i++ {
		b.minY, b.maxY = math.Min(b.minY, lo[i]), math.Max(b.maxY, hi[i])
	}
	b = b.pad()

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="%s" fill-opacity="0.5" stroke="%s" stroke-width="1" d="M`, fill, fill)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", b.x(times[i], width), b.y(hi[i], height))
	}
	for i := n - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, " L%.1f,%.1f", b.x(times[i], width), b.y(lo[i], height))
	}
	sb.WriteString(` Z"/>
</svg>`)
	return sb.String()
}
