package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/perturb/internal/storage"
	"github.com/san-kum/perturb/internal/sweep"
)

type ExportData struct {
	ID         string    `json:"id"`
	Preset     string    `json:"preset"`
	Variant    string    `json:"variant"`
	Unit       string    `json:"unit"`
	Prefactor  float64   `json:"prefactor"`
	Analytical *float64  `json:"analytical,omitempty"`
	Samples    int       `json:"samples"`
	X          []float64 `json:"x"`
	// Y holds null for invalid samples.
	Y       []*float64         `json:"y"`
	Metrics map[string]float64 `json:"metrics"`
}

func NewExportData(meta *storage.RunMetadata, series sweep.Series) ExportData {
	data := ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Variant:   string(meta.Variant),
		Unit:      meta.Unit,
		Prefactor: meta.Prefactor,
		Samples:   series.Len(),
		X:         series.X,
		Y:         make([]*float64, series.Len()),
		Metrics:   meta.Metrics,
	}
	if meta.HasAnalytical {
		a := meta.Analytical
		data.Analytical = &a
	}
	for i, y := range series.Y {
		if series.Valid[i] && !math.IsNaN(y) && !math.IsInf(y, 0) {
			v := y
			data.Y[i] = &v
		}
	}
	return data
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, series sweep.Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, series))
}

func ExportJSON(path string, meta *storage.RunMetadata, series sweep.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, series)
}

func ExportJSONStdout(meta *storage.RunMetadata, series sweep.Series) error {
	return WriteJSON(os.Stdout, meta, series)
}
