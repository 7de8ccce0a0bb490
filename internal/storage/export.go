package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Meta      RunMetadata    `json:"meta"`
	Times     []float64      `json:"times"`
	Boxes     [][][2]float64 `json:"boxes"`
	Endpoints [][][2]float64 `json:"endpoints"`
}

func pairs(e *Enclosure) (boxes, ends [][][2]float64) {
	boxes = make([][][2]float64, len(e.Boxes))
	ends = make([][][2]float64, len(e.Endpoints))
	for j := range e.Boxes {
		boxes[j] = make([][2]float64, len(e.Boxes[j]))
		for i, iv := range e.Boxes[j] {
			boxes[j][i] = [2]float64{iv.Lo, iv.Hi}
		}
		ends[j] = make([][2]float64, len(e.Endpoints[j]))
		for i, iv := range e.Endpoints[j] {
			ends[j][i] = [2]float64{iv.Lo, iv.Hi}
		}
	}
	return boxes, ends
}

// ExportJSON writes a run as a single JSON document, intervals as [lo, hi].
func ExportJSON(w io.Writer, meta RunMetadata, e *Enclosure) error {
	data := ExportData{Meta: meta, Times: e.Times}
	data.Boxes, data.Endpoints = pairs(e)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
