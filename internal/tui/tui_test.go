package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/storage"
	"github.com/san-kum/tmflow/internal/validated"
)

func enclosure(steps int) *storage.Enclosure {
	e := &storage.Enclosure{}
	for j := 0; j <= steps; j++ {
		w := 1e-3 * float64(j+1)
		box := interval.Box{interval.New(1-w, 1+w), interval.New(-w, w)}
		e.Times = append(e.Times, 0.1*float64(j))
		e.Boxes = append(e.Boxes, box)
		e.Endpoints = append(e.Endpoints, box)
	}
	return e
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  string
	}{
		{"rising", []float64{0, 1, 2, 3, 4, 5, 6, 7}, 8, "▁▂▃▄▅▆▇█"},
		{"flat", []float64{2, 2, 2}, 5, "▁▁▁"},
		{"sampled", []float64{0, 0, 7, 7}, 2, "▁█"},
		{"empty", nil, 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.data, tt.width); got != tt.want {
				t.Errorf("Sparkline = %q, want %q", got, tt.want)
			}
		})
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInspectorNavigation(t *testing.T) {
	var m tea.Model = NewInspector(storage.RunMetadata{ID: "run", Model: "harmonic", Status: "done"}, enclosure(30))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	for i := 0; i < 40; i++ {
		m, _ = m.Update(key("down"))
	}
	in := m.(*inspector)
	if in.cursor != 30 {
		t.Errorf("cursor %d, want 30 after running past the end", in.cursor)
	}
	if in.cursor < in.offset || in.cursor >= in.offset+in.listHeight() {
		t.Errorf("cursor %d not visible from offset %d", in.cursor, in.offset)
	}

	m, _ = m.Update(key("g"))
	if m.(*inspector).cursor != 0 {
		t.Error("g must jump to the first step")
	}
	if !strings.Contains(m.View(), "harmonic") {
		t.Error("view is missing the model name")
	}

	m, _ = m.Update(key("G"))
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("x"))
	in = m.(*inspector)
	if in.view != viewPhase || in.xIdx != 1 {
		t.Errorf("view %d x=%d, want phase view on x1", in.view, in.xIdx)
	}
	if !strings.Contains(m.View(), "█") {
		t.Error("phase view draws no boxes")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q must quit")
	}
}

func TestInspectorEmpty(t *testing.T) {
	m := NewInspector(storage.RunMetadata{Model: "x"}, &storage.Enclosure{})
	m, _ = m.Update(key("down"))
	if !strings.Contains(m.View(), "no steps") {
		t.Error("expected the empty notice")
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "lorenz", 0, 1, 1)
	r.OnStep(validated.Sample{Step: 1, Time: 0.5, Converged: true,
		Endpoint: interval.Box{interval.New(0, 1e-6)}})
	r.OnStep(validated.Sample{Step: 2, Time: 0.6, Converged: true,
		Endpoint: interval.Box{interval.New(0, 2e-6)}})
	r.OnStep(validated.Sample{Step: 3, Time: 1, Converged: false,
		Endpoint: interval.Box{interval.New(0, 4e-6)}})
	r.Stop()

	out := buf.String()
	if strings.Count(out, "\r") != 2 {
		t.Errorf("expected 2 frames (first and last), got %q", out)
	}
	if !strings.Contains(out, "step 3") {
		t.Errorf("final frame missing: %q", out)
	}
}
