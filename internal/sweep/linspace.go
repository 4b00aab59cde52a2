package sweep

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyDomain    = errors.New("sweep: sample count must be at least 1")
	ErrInvalidBounds  = errors.New("sweep: invalid bounds")
	ErrLengthMismatch = errors.New("sweep: series length mismatch")
)

// Linspace returns n evenly spaced samples over the closed interval [lo, hi].
// The last sample is exactly hi; n == 1 yields [lo].
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrEmptyDomain, n)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%g, %g] not finite", ErrInvalidBounds, lo, hi)
	}
	if hi < lo {
		return nil, fmt.Errorf("%w: upper %g below lower %g", ErrInvalidBounds, hi, lo)
	}

	xs := make([]float64, n)
	xs[0] = lo
	if n == 1 {
		return xs, nil
	}

	step := (hi - lo) / float64(n-1)
	for i := 1; i < n-1; i++ {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs, nil
}
