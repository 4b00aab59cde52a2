package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/perturb/internal/storage"
	"github.com/san-kum/perturb/internal/sweep"
)

func sampleSeries() sweep.Series {
	s := sweep.NewSeries([]float64{0, 1, 2, 3})
	s.Y[0], s.Valid[0] = 0, true
	s.Y[1], s.Valid[1] = 4, true
	s.Y[3], s.Valid[3] = 1, true
	return s
}

func sampleMeta() *storage.RunMetadata {
	return &storage.RunMetadata{
		ID:            "energy_1_abcd1234",
		Preset:        "energy",
		Variant:       "energy",
		Unit:          "eV",
		Prefactor:     7.6e23,
		Analytical:    2,
		HasAnalytical: true,
		Metrics:       map[string]float64{"peak": 4},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleMeta(), sampleSeries()))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 4, got.Samples)
	assert.Equal(t, []float64{0, 1, 2, 3}, got.X)
	require.Len(t, got.Y, 4)
	assert.Nil(t, got.Y[2], "invalid samples export as null")
	require.NotNil(t, got.Y[1])
	assert.Equal(t, 4.0, *got.Y[1])
	require.NotNil(t, got.Analytical)
	assert.Equal(t, 2.0, *got.Analytical)
}

func TestWriteJSON_NoAnalytical(t *testing.T) {
	meta := sampleMeta()
	meta.HasAnalytical = false

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, meta, sampleSeries()))
	assert.NotContains(t, buf.String(), "analytical")
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, ExportJSON(path, sampleMeta(), sampleSeries()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"preset": "energy"`)
}

func TestSeriesToSVG(t *testing.T) {
	opts := DefaultSVGOptions()
	opts.Title = "E' vs r1 <nm>"
	opts.HasReference = true
	opts.Reference = 2

	svg := SeriesToSVG(sampleSeries(), opts)
	require.NotEmpty(t, svg)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "stroke-dasharray")
	assert.Contains(t, svg, "&lt;nm&gt;")
	assert.Equal(t, 2, strings.Count(svg, "M"), "invalid sample must break the path")
}

func TestSeriesToSVG_TooFewPoints(t *testing.T) {
	s := sweep.NewSeries([]float64{0, 1})
	s.Y[0], s.Valid[0] = 1, true
	assert.Empty(t, SeriesToSVG(s, DefaultSVGOptions()))
}
