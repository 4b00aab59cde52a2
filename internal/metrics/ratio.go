package metrics

import "math"

// AnalyticalRatio is the series peak divided by a closed-form reference.
type AnalyticalRatio struct {
	name      string
	reference float64
	peak      *Peak
}

func NewAnalyticalRatio(reference float64) *AnalyticalRatio {
	return &AnalyticalRatio{
		name:      "analytical_ratio",
		reference: reference,
		peak:      NewPeak(),
	}
}

func (a *AnalyticalRatio) Name() string { return a.name }

func (a *AnalyticalRatio) Observe(x, y float64, valid bool) {
	a.peak.Observe(x, y, valid)
}

func (a *AnalyticalRatio) Value() float64 {
	if a.reference == 0 {
		return math.NaN()
	}
	return a.peak.Value() / a.reference
}

func (a *AnalyticalRatio) Reset() { a.peak.Reset() }
