package energy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/perturb/internal/quad"
	"github.com/san-kum/perturb/internal/sweep"
)

type SweepOptions struct {
	Quad    quad.Options
	Workers int
	Logger  *zap.Logger
	// Observer may be nil.
	Observer Observer
}

// EvaluateSweep computes prefactor * OuterIntegrand(r1) for every r1 in
// domain. Failed samples are NaN, marked invalid and reported in the returned
// slice ordered by index; they do not stop the sweep. The error is non-nil
// only for invalid inputs, including tolerances the integrator rejects, or
// context cancellation.
func EvaluateSweep(ctx context.Context, domain []float64, prefactor, a, z float64, opts SweepOptions) (sweep.Series, []error, error) {
	if err := checkShape(a, z); err != nil {
		return sweep.Series{}, nil, err
	}
	if !isFinite(prefactor) {
		return sweep.Series{}, nil, &ConfigurationError{Field: "prefactor", Value: prefactor, Reason: "must be finite"}
	}
	if err := opts.Quad.Validate(); err != nil {
		return sweep.Series{}, nil, &ConfigurationError{Field: "quad", Value: opts.Quad, Reason: "tolerance cannot be met", Wrapped: err}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	series := sweep.NewSeries(domain)
	failed := make([]error, len(domain))

	err := sweep.ParallelFor(ctx, len(domain), opts.Workers, func(_ context.Context, i int) error {
		r1 := domain[i]
		v, err := OuterIntegrand(r1, a, z, opts.Quad)
		y := prefactor * v
		if err == nil && !isFinite(y) {
			err = fmt.Errorf("%w: %g", ErrNonFiniteSample, y)
		}

		if err != nil {
			failed[i] = &IntegrationError{Index: i, R1: r1, Wrapped: err}
			log.Warn("sample failed",
				zap.Int("index", i),
				zap.Float64("r1", r1),
				zap.Error(err))
		} else {
			series.Y[i] = y
			series.Valid[i] = true
		}

		if opts.Observer != nil {
			opts.Observer.OnSample(i, r1, series.Y[i], failed[i])
		}
		return nil
	})

	errs := make([]error, 0)
	for _, e := range failed {
		if e != nil {
			errs = append(errs, e)
		}
	}
	return series, errs, err
}
