package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tmflow/internal/analysis"
	"github.com/san-kum/tmflow/internal/storage"
)

type view int

const (
	viewSteps view = iota
	viewPhase
)

type inspector struct {
	meta   storage.RunMetadata
	enc    *storage.Enclosure
	widths []float64

	view   view
	cursor int
	offset int
	xIdx   int
	yIdx   int

	width  int
	height int
}

// NewInspector returns the bubbletea model browsing the steps of a run.
func NewInspector(meta storage.RunMetadata, enc *storage.Enclosure) tea.Model {
	m := &inspector{
		meta:   meta,
		enc:    enc,
		widths: analysis.WidthSeries(enc.Result()),
		width:  80,
		height: 24,
	}
	if len(enc.Boxes) > 0 && len(enc.Boxes[0]) > 1 {
		m.yIdx = 1
	}
	return m
}

func (m *inspector) Init() tea.Cmd { return nil }

func (m *inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *inspector) dim() int {
	if len(m.enc.Boxes) == 0 {
		return 0
	}
	return len(m.enc.Boxes[0])
}

func (m *inspector) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.enc.Times) - 1
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(last, 0))
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(last, 0)
	case "tab", "p":
		if m.view == viewSteps {
			m.view = viewPhase
		} else {
			m.view = viewSteps
		}
	case "x":
		if d := m.dim(); d > 0 {
			m.xIdx = (m.xIdx + 1) % d
		}
	case "y":
		if d := m.dim(); d > 0 {
			m.yIdx = (m.yIdx + 1) % d
		}
	}
	m.scroll()
	return m, nil
}

func (m *inspector) listHeight() int {
	return max(m.height-14-m.dim(), 3)
}

func (m *inspector) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m *inspector) View() string {
	var b strings.Builder

	status := green.Render("●")
	if m.meta.Status != "done" {
		status = yellow.Render("○")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n", status, cyan.Render(m.meta.Model),
		dim.Render(m.meta.ID), dim.Render(m.meta.Status)))
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", max(m.width-6, 20))) + "\n\n")

	if len(m.enc.Times) == 0 {
		b.WriteString(dim.Render("   no steps recorded") + "\n")
		return b.String()
	}

	if m.view == viewPhase {
		b.WriteString(m.viewPhase())
	} else {
		b.WriteString(m.viewSteps())
	}

	b.WriteString("\n" + dim.Render("   ↑↓ step  g/G first/last  tab phase  x/y components  q quit") + "\n")
	return b.String()
}

func (m *inspector) viewSteps() string {
	var b strings.Builder
	h := m.listHeight()

	b.WriteString(dim.Render(fmt.Sprintf("   %5s  %-14s %-12s %s", "step", "t", "dt", "width")) + "\n")
	for j := m.offset; j < len(m.enc.Times) && j < m.offset+h; j++ {
		dt := 0.0
		if j > 0 {
			dt = m.enc.Times[j] - m.enc.Times[j-1]
		}
		line := fmt.Sprintf("%5d  %-14.8g %-12.4g %.3e", j, m.enc.Times[j], dt, m.widths[j])
		if j == m.cursor {
			b.WriteString("   " + cyan.Render("▸") + white.Render(line) + "\n")
		} else {
			b.WriteString("    " + dim.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	box, end := m.enc.Boxes[m.cursor], m.enc.Endpoints[m.cursor]
	for i := range box {
		b.WriteString(fmt.Sprintf("   %s %s  %s %s\n",
			magenta.Render(fmt.Sprintf("x%d", i)),
			white.Render(end[i].String()),
			dimmer.Render("step"),
			dim.Render(box[i].String())))
	}

	logw := make([]float64, len(m.widths))
	for j, w := range m.widths {
		logw[j] = math.Log10(max(w, math.SmallestNonzeroFloat64))
	}
	b.WriteString(fmt.Sprintf("\n   %s %s\n", dim.Render("log width"), cyan.Render(Sparkline(logw, 40))))
	return b.String()
}

func (m *inspector) viewPhase() string {
	rects, err := analysis.PhaseBoxes(m.enc.Result(), m.xIdx, m.yIdx)
	if err != nil {
		return dim.Render("   "+err.Error()) + "\n"
	}
	rects = rects[:m.cursor+1]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("   %s vs %s  up to step %d\n\n",
		magenta.Render(fmt.Sprintf("x%d", m.yIdx)), magenta.Render(fmt.Sprintf("x%d", m.xIdx)), m.cursor))
	plot := analysis.PhaseToASCII(rects, max(m.width-8, 20), max(m.height-10, 8))
	for _, line := range strings.Split(strings.TrimRight(plot, "\n"), "\n") {
		b.WriteString("   " + cyan.Render(line) + "\n")
	}
	return b.String()
}

func RunInspector(meta storage.RunMetadata, enc *storage.Enclosure) error {
	p := tea.NewProgram(NewInspector(meta, enc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
