package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/perturb/internal/sweep"
)

var seriesHeader = []string{"x", "y", "valid"}

// WriteSeriesCSV writes one row per sample with full float precision.
func WriteSeriesCSV(w io.Writer, series sweep.Series) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for i := range series.X {
		row := []string{
			strconv.FormatFloat(series.X[i], 'g', -1, 64),
			strconv.FormatFloat(series.Y[i], 'g', -1, 64),
			strconv.FormatBool(series.Valid[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadSeriesCSV(r io.Reader) (sweep.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(seriesHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return sweep.Series{}, err
	}

	series := sweep.Series{X: []float64{}, Y: []float64{}, Valid: []bool{}}
	if len(records) < 2 {
		return series, nil
	}

	for i, record := range records[1:] {
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return sweep.Series{}, fmt.Errorf("row %d: x: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return sweep.Series{}, fmt.Errorf("row %d: y: %w", i+1, err)
		}
		valid, err := strconv.ParseBool(record[2])
		if err != nil {
			return sweep.Series{}, fmt.Errorf("row %d: valid: %w", i+1, err)
		}
		series.X = append(series.X, x)
		series.Y = append(series.Y, y)
		series.Valid = append(series.Valid, valid)
	}
	return series, nil
}
