package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/perturb/internal/energy"
	"github.com/san-kum/perturb/internal/quad"
)

const (
	DefaultPreset  = "energy"
	DefaultSamples = 500
	DefaultLower   = 1e-12
	DefaultUpper   = 1e-9
)

type Config struct {
	Preset    string            `yaml:"preset"`
	Variant   string            `yaml:"variant" validate:"oneof=energy energy_per_momentum"`
	Constants energy.Constants  `yaml:"constants"`
	Sweep     energy.SweepRange `yaml:"sweep"`
	Quad      QuadConfig        `yaml:"quad"`
	Workers   int               `yaml:"workers" validate:"gte=0"`
	Output    OutputConfig      `yaml:"output"`
}

type QuadConfig struct {
	EpsAbs float64 `yaml:"eps_abs" validate:"finite,gte=0"`
	EpsRel float64 `yaml:"eps_rel" validate:"finite,gt=0"`
	Limit  int     `yaml:"limit" validate:"gte=1"`
}

type OutputConfig struct {
	ElectronVolts bool    `yaml:"electron_volts"`
	EVFactor      float64 `yaml:"ev_factor" validate:"finite,gt=0"`
	Analytical    bool    `yaml:"analytical"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:    DefaultPreset,
		Variant:   string(energy.VariantEnergy),
		Constants: energy.HeliumConstants(),
		Sweep: energy.SweepRange{
			Lower:   DefaultLower,
			Upper:   DefaultUpper,
			Samples: DefaultSamples,
		},
		Quad: QuadConfig{
			EpsAbs: quad.DefaultEpsAbs,
			EpsRel: quad.DefaultEpsRel,
			Limit:  quad.DefaultLimit,
		},
		Output: OutputConfig{
			ElectronVolts: true,
			EVFactor:      energy.ElectronVoltsPerJoule,
			Analytical:    true,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field as an *energy.ConfigurationError.
// Tags are checked with the evaluator's validator; tolerances must also be
// ones the integrator accepts.
func (c *Config) Validate() error {
	if err := energy.ValidateStruct(c); err != nil {
		return err
	}
	q := c.Evaluator().Quad
	if err := q.Validate(); err != nil {
		return &energy.ConfigurationError{Field: "quad.eps_rel", Value: q.EpsRel, Reason: "below the integrator's roundoff floor", Wrapped: err}
	}
	return nil
}

// Evaluator converts the validated file layout into evaluator settings.
func (c *Config) Evaluator() energy.Config {
	return energy.Config{
		Constants: c.Constants,
		Variant:   energy.Variant(c.Variant),
		Sweep:     c.Sweep,
		Quad: quad.Options{
			EpsAbs: c.Quad.EpsAbs,
			EpsRel: c.Quad.EpsRel,
			Limit:  c.Quad.Limit,
		},
		Workers:       c.Workers,
		ElectronVolts: c.Output.ElectronVolts,
		EVFactor:      c.Output.EVFactor,
		Analytical:    c.Output.Analytical,
	}
}
