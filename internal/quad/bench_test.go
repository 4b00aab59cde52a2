package quad

import (
	"math"
	"testing"
)

func BenchmarkKronrod15(b *testing.B) {
	f := func(x float64) float64 { return math.Exp(-x) * x * x }
	for i := 0; i < b.N; i++ {
		Kronrod15(f, 0, 1)
	}
}

func BenchmarkIntegrateSqrt(b *testing.B) {
	opts := DefaultOptions()
	for i := 0; i < b.N; i++ {
		_, _ = Integrate(math.Sqrt, 0, 1, opts)
	}
}
