package energy

import (
	"fmt"
	"math"

	"github.com/san-kum/perturb/internal/quad"
)

// innerIntegrand is (1 + (r2/r1)^2) exp(-2 Z r2 / a) r2^2. r1 must be non-zero.
func innerIntegrand(r2, r1, a, z float64) float64 {
	ratio := r2 / r1
	return (1 + ratio*ratio) * math.Exp(-2*z*r2/a) * r2 * r2
}

// InnerIntegral integrates the inner term over r2 in [0, r1]. The interval
// collapses at r1 == 0 and the result is exactly 0.
func InnerIntegral(r1, a, z float64, opts quad.Options) (float64, error) {
	if err := checkShape(a, z); err != nil {
		return math.NaN(), err
	}
	if !isFinite(r1) {
		return math.NaN(), fmt.Errorf("%w: r1=%g", quad.ErrNonFinite, r1)
	}
	if r1 < 0 {
		return math.NaN(), fmt.Errorf("%w: r1=%g", ErrNegativeRadius, r1)
	}
	if r1 == 0 {
		return 0, nil
	}

	res, err := quad.Integrate(func(r2 float64) float64 {
		return innerIntegrand(r2, r1, a, z)
	}, 0, r1, opts)
	if err != nil {
		return math.NaN(), fmt.Errorf("inner integral at r1=%g: %w", r1, err)
	}
	return res.Value, nil
}

// OuterIntegrand is r1^4 exp(-2 Z r1 / a) InnerIntegral(r1). It is a point
// evaluation, not an integral over r1.
func OuterIntegrand(r1, a, z float64, opts quad.Options) (float64, error) {
	inner, err := InnerIntegral(r1, a, z, opts)
	if err != nil {
		return math.NaN(), err
	}
	r1sq := r1 * r1
	return r1sq * r1sq * math.Exp(-2*z*r1/a) * inner, nil
}

func checkShape(a, z float64) error {
	if err := positive("bohr_radius", a); err != nil {
		return err
	}
	return positive("effective_charge", z)
}
