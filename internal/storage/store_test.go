package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

func sampleResult() *validated.Result {
	return &validated.Result{
		Times: []float64{0, 0.1, 0.30000000000000004},
		Boxes: []interval.Box{
			{interval.New(0.9, 1.1), interval.New(-0.1, 0.1)},
			{interval.New(0.8, 1.1), interval.New(-0.2, 0.1)},
			{interval.New(0.7, 1.0), interval.New(-0.3, 0.0)},
		},
		Endpoints: []interval.Box{
			{interval.New(0.9, 1.1), interval.New(-0.1, 0.1)},
			{interval.New(0.85, 1.05), interval.New(-0.15, 0.05)},
			{interval.New(0.75, 0.95), interval.New(-0.25, -0.05)},
		},
		Steps:  2,
		Status: validated.StatusDone,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	res := sampleResult()
	meta := RunMetadata{
		Model:   "harmonic",
		Problem: config.GetPreset("harmonic", "quarter"),
		Steps:   res.Steps,
		Status:  res.Status.String(),
		Metrics: map[string]float64{"max_width": 0.2},
	}
	runID, err := st.Save(meta, res)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "harmonic_"))

	loaded, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, loaded.ID)
	assert.Equal(t, "done", loaded.Status)
	assert.Equal(t, 0.2, loaded.Metrics["max_width"])
	assert.Equal(t, meta.Problem.Q0, loaded.Problem.Q0)
	assert.False(t, loaded.Timestamp.IsZero())

	enc, err := st.LoadEnclosure(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Times, enc.Times, "times must round-trip exactly")
	assert.Equal(t, res.Boxes, enc.Boxes)
	assert.Equal(t, res.Endpoints, enc.Endpoints)

	back := enc.Result()
	assert.Equal(t, 2, back.Steps)
	assert.Equal(t, res.Endpoints[2], back.Final())
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	require.NoError(t, st.Init())
	first, err := st.Save(RunMetadata{Model: "a"}, sampleResult())
	require.NoError(t, err)
	second, err := st.Save(RunMetadata{Model: "b"}, sampleResult())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestReadEnclosureErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"bad columns", "time,x0_lo,x0_hi\n0,1,2\n"},
		{"not a number", "time,x0_lo,x0_hi,end0_lo,end0_hi\n0,1,x,1,2\n"},
		{"reversed", "time,x0_lo,x0_hi,end0_lo,end0_hi\n0,2,1,1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEnclosure(strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestEmptyEnclosure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEnclosure(&buf, &validated.Result{}))
	enc, err := ReadEnclosure(&buf)
	require.NoError(t, err)
	assert.Empty(t, enc.Times)
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	res := sampleResult()
	enc := &Enclosure{Times: res.Times, Boxes: res.Boxes, Endpoints: res.Endpoints}
	require.NoError(t, ExportJSON(&buf, RunMetadata{ID: "x", Model: "harmonic"}, enc))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "harmonic", data.Meta.Model)
	assert.Len(t, data.Boxes, 3)
	assert.Equal(t, [2]float64{0.75, 0.95}, data.Endpoints[2][0])
}
