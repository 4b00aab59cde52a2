package quad

import "errors"

var (
	// ErrInvalidTolerance indicates tolerances that cannot be satisfied.
	ErrInvalidTolerance = errors.New("quad: invalid tolerance")

	// ErrNonFinite indicates the integrand produced NaN or Inf.
	ErrNonFinite = errors.New("quad: integrand is not finite")

	// ErrNoConvergence indicates the subdivision limit was reached.
	ErrNoConvergence = errors.New("quad: subdivision limit reached before tolerance")

	// ErrRoundoff indicates subintervals became too narrow to bisect further.
	ErrRoundoff = errors.New("quad: roundoff prevents requested tolerance")
)
