package energy

import (
	"time"

	"github.com/san-kum/perturb/internal/quad"
	"github.com/san-kum/perturb/internal/sweep"
)

// Metric summarises a finished series. Samples are observed in sweep order.
type Metric interface {
	Name() string
	Observe(x, y float64, valid bool)
	Value() float64
	Reset()
}

// Observer is notified as samples complete. Samples complete out of order
// and OnSample may be called from several goroutines at once.
type Observer interface {
	OnSample(index int, x, y float64, err error)
}

// SweepRange describes the evenly spaced r1 domain in metres.
type SweepRange struct {
	Lower   float64 `yaml:"lower" mapstructure:"lower" validate:"finite,gte=0"`
	Upper   float64 `yaml:"upper" mapstructure:"upper" validate:"finite,gtefield=Lower"`
	Samples int     `yaml:"samples" mapstructure:"samples" validate:"gte=1"`
}

type Config struct {
	Constants Constants
	Variant   Variant
	Sweep     SweepRange
	Quad      quad.Options
	// Workers bounds parallel sample evaluation; 0 means GOMAXPROCS.
	Workers int
	// ElectronVolts converts reported samples with EVFactor.
	ElectronVolts bool
	EVFactor      float64
	Analytical    bool
}

func DefaultConfig() Config {
	return Config{
		Constants:     HeliumConstants(),
		Variant:       VariantEnergy,
		Sweep:         SweepRange{Lower: 1e-12, Upper: 1e-9, Samples: 500},
		Quad:          quad.DefaultOptions(),
		ElectronVolts: true,
		EVFactor:      ElectronVoltsPerJoule,
		Analytical:    true,
	}
}

type Result struct {
	Variant       Variant
	Unit          string
	Series        sweep.Series
	Prefactor     float64
	Analytical    float64
	HasAnalytical bool
	Metrics       map[string]float64
	// Errors holds one *IntegrationError per failed sample, in sweep order.
	Errors  []error
	Elapsed time.Duration
}
