package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/perturb/internal/energy"
	"github.com/san-kum/perturb/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID            string             `json:"id"`
	Preset        string             `json:"preset"`
	Variant       energy.Variant     `json:"variant"`
	Unit          string             `json:"unit"`
	Timestamp     time.Time          `json:"timestamp"`
	Constants     energy.Constants   `json:"constants"`
	Sweep         energy.SweepRange  `json:"sweep"`
	Prefactor     float64            `json:"prefactor"`
	Analytical    float64            `json:"analytical,omitempty"`
	HasAnalytical bool               `json:"has_analytical"`
	Metrics       map[string]float64 `json:"metrics"`
	Invalid       int                `json:"invalid"`
	Failures      []string           `json:"failures,omitempty"`
	ElapsedMS     float64            `json:"elapsed_ms"`
}

// NewRunMetadata describes res; ID and Timestamp are filled by Save.
func NewRunMetadata(preset string, cfg energy.Config, res *energy.Result) RunMetadata {
	meta := RunMetadata{
		Preset:        preset,
		Variant:       res.Variant,
		Unit:          res.Unit,
		Constants:     cfg.Constants,
		Sweep:         cfg.Sweep,
		Prefactor:     res.Prefactor,
		Analytical:    res.Analytical,
		HasAnalytical: res.HasAnalytical,
		Metrics:       make(map[string]float64),
		Invalid:       res.Series.InvalidCount(),
		ElapsedMS:     float64(res.Elapsed.Microseconds()) / 1000,
	}
	// encoding/json rejects NaN and Inf
	for name, v := range res.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[name] = v
		}
	}
	for _, err := range res.Errors {
		meta.Failures = append(meta.Failures, err.Error())
	}
	return meta
}

// Save writes the run to a fresh directory. The series goes first and the
// metadata last, and a failed save removes the directory, so List never
// reports a run whose series cannot be loaded.
func (s *Store) Save(meta RunMetadata, series sweep.Series) (string, error) {
	if err := series.Validate(); err != nil {
		return "", err
	}

	preset := meta.Preset
	if preset == "" {
		preset = "run"
	}
	runID := fmt.Sprintf("%s_%d_%s", preset, time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	if err := writeRun(runDir, meta, series); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, series sweep.Series) error {
	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return err
	}
	if err := WriteSeriesCSV(csvFile, series); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644)
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (sweep.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return sweep.Series{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return sweep.Series{}, err
	}
	defer file.Close()

	return ReadSeriesCSV(file)
}
