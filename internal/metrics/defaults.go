// Package metrics summarises evaluated series. Every metric observes the
// samples in sweep order and is reset before each run.
package metrics

// Metric mirrors the evaluator's metric contract.
type Metric interface {
	Name() string
	Observe(x, y float64, valid bool)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run. The ratio metric is
// included only when an analytical reference exists.
func Defaults(analytical float64, hasAnalytical bool) []Metric {
	ms := []Metric{
		NewPeak(),
		NewPeakX(),
		NewTrapezoid(),
		NewInvalid(),
	}
	if hasAnalytical {
		ms = append(ms, NewAnalyticalRatio(analytical))
	}
	return ms
}
