package energy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/perturb/internal/sweep"
)

// Evaluator runs one configured sweep. It is not safe for concurrent use;
// Run may be called repeatedly and produces a fresh Result each time.
type Evaluator struct {
	cfg        Config
	domain     []float64
	prefactor  float64
	analytical float64
	logger     *zap.Logger
	metrics    []Metric
	observers  []Observer
}

// New validates cfg and precomputes the prefactor. Every failure is a
// *ConfigurationError, so nothing that config rejects can reach a sweep.
func New(cfg Config, logger *zap.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Constants.Validate(); err != nil {
		return nil, err
	}

	variant, err := ParseVariant(string(cfg.Variant))
	if err != nil {
		return nil, err
	}
	cfg.Variant = variant

	if cfg.ElectronVolts {
		if err := positive("ev_factor", cfg.EVFactor); err != nil {
			return nil, err
		}
	}
	if err := validateStruct("sweep", cfg.Sweep); err != nil {
		return nil, err
	}
	if err := cfg.Quad.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "quad", Value: cfg.Quad, Reason: "tolerance cannot be met", Wrapped: err}
	}

	domain, err := sweep.Linspace(cfg.Sweep.Lower, cfg.Sweep.Upper, cfg.Sweep.Samples)
	if err != nil {
		return nil, &ConfigurationError{Field: "sweep", Value: cfg.Sweep, Reason: "cannot build domain", Wrapped: err}
	}

	pre := Prefactor(cfg.Constants, cfg.Variant)
	if !isFinite(pre) || pre == 0 {
		return nil, &ConfigurationError{Field: "prefactor", Value: pre, Reason: "constants produce an unusable prefactor"}
	}

	e := &Evaluator{
		cfg:       cfg,
		domain:    domain,
		prefactor: pre,
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	if cfg.Analytical {
		e.analytical = e.convert(AnalyticalApproximation(pre, cfg.Constants.Wavelength, cfg.Constants.EffectiveCharge))
	}
	return e, nil
}

func (e *Evaluator) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Evaluator) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Evaluator) Config() Config      { return e.cfg }
func (e *Evaluator) Prefactor() float64  { return e.prefactor }
func (e *Evaluator) Domain() []float64   { return append([]float64(nil), e.domain...) }
func (e *Evaluator) HasAnalytical() bool { return e.cfg.Analytical }

// Analytical is the closed-form reference in the unit of reported samples.
// It is zero when the configuration disables it.
func (e *Evaluator) Analytical() float64 { return e.analytical }

func (e *Evaluator) Unit() string {
	if e.cfg.ElectronVolts {
		if e.cfg.Variant == VariantEnergyPerMomentum {
			return "eV/(kg m/s)"
		}
		return "eV"
	}
	return e.cfg.Variant.Unit()
}

// Run evaluates the sweep. On cancellation the partial result is returned
// together with the context error.
func (e *Evaluator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	e.logger.Debug("starting sweep",
		zap.String("variant", string(e.cfg.Variant)),
		zap.Int("samples", len(e.domain)),
		zap.Float64("prefactor", e.prefactor),
		zap.Int("workers", e.cfg.Workers))

	series, errs, err := EvaluateSweep(ctx, e.domain, e.prefactor,
		e.cfg.Constants.BohrRadius, e.cfg.Constants.EffectiveCharge,
		SweepOptions{
			Quad:     e.cfg.Quad,
			Workers:  e.cfg.Workers,
			Logger:   e.logger,
			Observer: e.fanout(),
		})

	result := &Result{
		Variant:       e.cfg.Variant,
		Unit:          e.Unit(),
		Prefactor:     e.prefactor,
		Analytical:    e.analytical,
		HasAnalytical: e.cfg.Analytical,
		Metrics:       make(map[string]float64),
		Errors:        errs,
	}

	if e.cfg.ElectronVolts && series.Len() > 0 {
		series.Y = ToElectronVolts(series.Y, e.cfg.EVFactor)
	}
	result.Series = series

	if err != nil {
		result.Elapsed = time.Since(start)
		return result, err
	}
	if verr := series.Validate(); verr != nil {
		return nil, fmt.Errorf("sweep produced inconsistent series: %w", verr)
	}

	for _, m := range e.metrics {
		m.Reset()
		for i := range series.X {
			m.Observe(series.X[i], series.Y[i], series.Valid[i])
		}
		result.Metrics[m.Name()] = m.Value()
	}

	result.Elapsed = time.Since(start)
	e.logger.Info("sweep complete",
		zap.String("variant", string(e.cfg.Variant)),
		zap.Int("samples", series.Len()),
		zap.Int("failed", len(errs)),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

func (e *Evaluator) convert(v float64) float64 {
	if e.cfg.ElectronVolts {
		return ToElectronVolts([]float64{v}, e.cfg.EVFactor)[0]
	}
	return v
}

// fanout forwards samples to every observer in the unit of the Result.
type fanout struct {
	observers []Observer
	scale     float64
}

func (f fanout) OnSample(i int, x, y float64, err error) {
	for _, obs := range f.observers {
		obs.OnSample(i, x, y*f.scale, err)
	}
}

func (e *Evaluator) fanout() Observer {
	if len(e.observers) == 0 {
		return nil
	}
	return fanout{observers: e.observers, scale: e.convert(1)}
}
