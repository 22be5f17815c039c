package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"
)

type ExportData struct {
	RunMetadata
	Iterates []float64 `json:"iterates"`
	Values   []float64 `json:"values"`
}

func newExportData(meta RunMetadata, points []Point) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Iterates:    make([]float64, 0, len(points)),
		Values:      make([]float64, 0, len(points)),
	}
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.FX) || math.IsInf(p.FX, 0) {
			break
		}
		data.Iterates = append(data.Iterates, p.X)
		data.Values = append(data.Values, p.FX)
	}
	return data
}

// ExportJSON writes a run and its finite iterates as indented JSON to w.
func ExportJSON(w io.Writer, meta RunMetadata, points []Point) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, points))
}

// ExportJSONFile is ExportJSON into a new file at path.
func ExportJSONFile(path string, meta RunMetadata, points []Point) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, meta, points)
}
