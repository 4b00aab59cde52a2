// Package energy evaluates the first-order energy correction of a
// helium-like atom over a sweep of electron radii.
//
// For every radius r1 in the sweep the evaluator computes
//
//	prefactor * r1^4 * exp(-2 Z r1 / a) * I(r1)
//	I(r1) = integral over r2 in [0, r1] of (1 + (r2/r1)^2) exp(-2 Z r2 / a) r2^2
//
// where I is evaluated by adaptive Gauss-Kronrod quadrature:
//
//   - [Prefactor]: scalar multiplier from the physical [Constants]
//   - [InnerIntegral]: the r2 integral for one r1
//   - [OuterIntegrand]: the pointwise outer term for one r1
//   - [EvaluateSweep]: every sample of a sweep, in parallel
//   - [Evaluator]: validated configuration, conversion, metrics, observers
//
// The outer term is evaluated pointwise and is never integrated over r1.
// The trapezoid metric in package metrics provides that integral when it is
// wanted.
//
// # Failures
//
// Invalid constants surface as [*ConfigurationError] before any sample is
// computed. A sample whose quadrature fails is recorded as an
// [*IntegrationError], its value is NaN and the sweep continues.
//
//	ev, err := energy.New(cfg, logger)
//	if err != nil {
//	    return err // *ConfigurationError
//	}
//	res, err := ev.Run(ctx)
//	for _, e := range res.Errors {
//	    // per-sample *IntegrationError
//	}
package energy
