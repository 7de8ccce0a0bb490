package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/tmflow/internal/validated"
)

// LiveRenderer prints a progress line for a running integration, at most
// frameRate times per second. It is a validated.Observer.
type LiveRenderer struct {
	out       io.Writer
	model     string
	t0, tmax  float64
	frameRate int
	lastFrame time.Time
	history   []float64
}

func NewLiveRenderer(out io.Writer, model string, t0, tmax float64, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		model:     model,
		t0:        t0,
		tmax:      tmax,
		frameRate: max(frameRate, 1),
		history:   make([]float64, 0, 64),
	}
}

func (r *LiveRenderer) OnStep(s validated.Sample) {
	w := 0.0
	for _, iv := range s.Endpoint {
		w = math.Max(w, iv.Width())
	}
	r.history = append(r.history, math.Log10(max(w, math.SmallestNonzeroFloat64)))

	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) && s.Time < r.tmax {
		return
	}
	r.lastFrame = time.Now()
	r.render(s, w)
}

func (r *LiveRenderer) render(s validated.Sample, w float64) {
	progress := math.Min((s.Time-r.t0)/(r.tmax-r.t0), 1)
	barWidth := 30
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))

	conv := green.Render("●")
	if !s.Converged {
		conv = yellow.Render("○")
	}
	fmt.Fprintf(r.out, "\r   %s %s %s  %s  %s  %s %s",
		conv, cyan.Render(r.model), bar,
		dim.Render(fmt.Sprintf("t=%.4g step %d", s.Time, s.Step)),
		white.Render(fmt.Sprintf("w=%.2e", w)),
		dim.Render("log w"), cyan.Render(Sparkline(r.history, 20)))
}

// Stop ends the progress line.
func (r *LiveRenderer) Stop() { fmt.Fprintln(r.out) }
