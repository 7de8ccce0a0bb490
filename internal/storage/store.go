// Package storage keeps validated runs on disk, one directory per run with
// metadata.json and enclosure.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

var ErrCorrupt = errors.New("storage: corrupt enclosure file")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID                string             `json:"id"`
	Model             string             `json:"model"`
	Timestamp         time.Time          `json:"timestamp"`
	Problem           *config.Config     `json:"problem"`
	Jet               string             `json:"jet,omitempty"`
	Steps             int                `json:"steps"`
	Status            string             `json:"status"`
	Error             string             `json:"error,omitempty"`
	RemainderFailures int                `json:"remainder_failures"`
	TEnd              float64            `json:"t_end"`
	Metrics           map[string]float64 `json:"metrics"`
}

// Enclosure is the stored orbit: for every accepted time the whole-step box
// and the endpoint box.
type Enclosure struct {
	Times     []float64
	Boxes     []interval.Box
	Endpoints []interval.Box
}

// Result rebuilds the parts of a validated result that are kept on disk.
// Models are not stored.
func (e *Enclosure) Result() *validated.Result {
	return &validated.Result{
		Times:     e.Times,
		Boxes:     e.Boxes,
		Endpoints: e.Endpoints,
		Steps:     max(len(e.Times)-1, 0),
	}
}

// Save writes a run and returns its id. meta.ID and meta.Timestamp are
// filled in.
func (s *Store) Save(meta RunMetadata, res *validated.Result) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Model, uuid.Must(uuid.NewV7()).String())
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "enclosure.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteEnclosure(csvFile, res); err != nil {
		return "", err
	}
	return meta.ID, csvFile.Sync()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteEnclosure writes one CSV row per accepted time: the time, then lo and
// hi of every component of the step box, then of the endpoint box.
func WriteEnclosure(out io.Writer, res *validated.Result) error {
	w := csv.NewWriter(out)
	if len(res.Times) == 0 {
		w.Flush()
		return w.Error()
	}

	dim := len(res.Boxes[0])
	header := []string{"time"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("x%d_lo", i), fmt.Sprintf("x%d_hi", i))
	}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("end%d_lo", i), fmt.Sprintf("end%d_hi", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j, t := range res.Times {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(t))
		for _, box := range []interval.Box{res.Boxes[j], res.Endpoints[j]} {
			for _, iv := range box {
				row = append(row, formatFloat(iv.Lo), formatFloat(iv.Hi))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadEnclosure parses what WriteEnclosure wrote.
func ReadEnclosure(in io.Reader) (*Enclosure, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	e := &Enclosure{}
	if len(records) < 2 {
		return e, nil
	}
	cols := len(records[0])
	if (cols-1)%4 != 0 || cols < 5 {
		return nil, fmt.Errorf("%w: %d columns", ErrCorrupt, cols)
	}
	dim := (cols - 1) / 4

	for n, record := range records[1:] {
		vals := make([]float64, len(record))
		for k, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrCorrupt, n+1, err)
			}
			vals[k] = v
		}
		box, end := make(interval.Box, dim), make(interval.Box, dim)
		for i := 0; i < dim; i++ {
			b, c := 1+2*i, 1+2*(dim+i)
			if vals[b] > vals[b+1] || vals[c] > vals[c+1] {
				return nil, fmt.Errorf("%w: row %d: reversed bounds in component %d", ErrCorrupt, n+1, i)
			}
			box[i] = interval.New(vals[b], vals[b+1])
			end[i] = interval.New(vals[c], vals[c+1])
		}
		e.Times = append(e.Times, vals[0])
		e.Boxes = append(e.Boxes, box)
		e.Endpoints = append(e.Endpoints, end)
	}
	return e, nil
}

// List returns the metadata of all runs, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEnclosure(runID string) (*Enclosure, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "enclosure.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadEnclosure(file)
}
