package metrics

import (
	"math"
	"testing"
)

type sample struct {
	x, y  float64
	valid bool
}

func observe(m Metric, samples []sample) float64 {
	m.Reset()
	for _, s := range samples {
		m.Observe(s.x, s.y, s.valid)
	}
	return m.Value()
}

func TestPeak(t *testing.T) {
	samples := []sample{
		{0, 1, true},
		{1, 5, true},
		{2, math.NaN(), false},
		{3, 2, true},
	}

	if got := observe(NewPeak(), samples); got != 5 {
		t.Errorf("peak = %v, want 5", got)
	}
	if got := observe(NewPeakX(), samples); got != 1 {
		t.Errorf("peak_x = %v, want 1", got)
	}

	p := NewPeak()
	if !math.IsNaN(p.Value()) {
		t.Error("expected NaN before any valid sample")
	}
	p.Observe(0, -3, true)
	if p.Value() != -3 {
		t.Errorf("negative peak = %v, want -3", p.Value())
	}
}

func TestTrapezoid(t *testing.T) {
	// y = 2x on [0, 1]
	var samples []sample
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		samples = append(samples, sample{x, 2 * x, true})
	}
	if got := observe(NewTrapezoid(), samples); math.Abs(got-1) > 1e-12 {
		t.Errorf("trapezoid = %v, want 1", got)
	}

	samples[5].valid = false
	samples[5].y = math.NaN()
	got := observe(NewTrapezoid(), samples)
	if math.IsNaN(got) {
		t.Fatal("invalid samples leaked into the integral")
	}
	if got >= 1 {
		t.Errorf("trapezoid with gap = %v, want < 1", got)
	}
}

func TestInvalid(t *testing.T) {
	samples := []sample{{0, 0, true}, {1, math.NaN(), false}, {2, math.NaN(), false}}
	if got := observe(NewInvalid(), samples); got != 2 {
		t.Errorf("invalid = %v, want 2", got)
	}
}

func TestAnalyticalRatio(t *testing.T) {
	samples := []sample{{0, 2, true}, {1, 8, true}}
	if got := observe(NewAnalyticalRatio(4), samples); got != 2 {
		t.Errorf("ratio = %v, want 2", got)
	}
	if got := observe(NewAnalyticalRatio(0), samples); !math.IsNaN(got) {
		t.Errorf("ratio with zero reference = %v, want NaN", got)
	}
}

func TestDefaults(t *testing.T) {
	names := func(ms []Metric) map[string]bool {
		out := make(map[string]bool)
		for _, m := range ms {
			out[m.Name()] = true
		}
		return out
	}

	without := names(Defaults(0, false))
	for _, n := range []string{"peak", "peak_x", "trapezoid", "invalid"} {
		if !without[n] {
			t.Errorf("missing default metric %s", n)
		}
	}
	if without["analytical_ratio"] {
		t.Error("ratio metric present without analytical reference")
	}

	if !names(Defaults(1, true))["analytical_ratio"] {
		t.Error("ratio metric missing with analytical reference")
	}
}
