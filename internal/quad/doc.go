// Package quad provides adaptive numerical quadrature for one-dimensional
// integrals.
//
// The integrator applies a 7-point Gauss / 15-point Kronrod rule and
// globally bisects the subinterval with the largest error estimate until the
// requested tolerance is met:
//
//   - [Integrate]: one-shot integration with [Options]
//   - [GaussKronrod]: reusable integrator carrying its options
//   - [Kronrod15]: a single application of the rule on one interval
//
// # Tolerance
//
// An estimate is accepted once its error is below
// max(EpsAbs, EpsRel*|value|). Leaving EpsAbs at zero gives pure relative
// error control, which keeps tiny-magnitude integrands (SI atomic units
// around 1e-30) from being accepted on the first rule application.
//
//	res, err := quad.Integrate(math.Exp, 0, 1, quad.DefaultOptions())
//	if errors.Is(err, quad.ErrNoConvergence) {
//	    // res.Value is still the best estimate
//	}
package quad
