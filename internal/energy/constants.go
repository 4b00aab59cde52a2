package energy

import "math"

const (
	DefaultSpeedOfLight          = 3e8
	DefaultEffectiveCharge       = 1.69
	DefaultBohrRadius            = 5.29177e-11
	DefaultGravitationalConstant = 6.67430e-11
	DefaultDensity               = 145
	DefaultWavelength            = 0.5e-9
	DefaultPlanckConstant        = 6.626e-34

	// ElectronVoltsPerJoule is the conversion used for reported energies.
	ElectronVoltsPerJoule = 6.242e18
)

// Constants are the physical inputs of the evaluator, in SI units.
type Constants struct {
	SpeedOfLight          float64 `yaml:"speed_of_light" mapstructure:"speed_of_light" validate:"finite,gt=0"`
	EffectiveCharge       float64 `yaml:"effective_charge" mapstructure:"effective_charge" validate:"finite,gt=0"`
	BohrRadius            float64 `yaml:"bohr_radius" mapstructure:"bohr_radius" validate:"finite,gt=0"`
	GravitationalConstant float64 `yaml:"gravitational_constant" mapstructure:"gravitational_constant" validate:"finite,gt=0"`
	Density               float64 `yaml:"density" mapstructure:"density" validate:"finite,gt=0"`
	Wavelength            float64 `yaml:"wavelength" mapstructure:"wavelength" validate:"finite,gt=0"`
	PlanckConstant        float64 `yaml:"planck_constant" mapstructure:"planck_constant" validate:"finite,gt=0"`
}

// HeliumConstants returns the helium-4 constant set.
func HeliumConstants() Constants {
	return Constants{
		SpeedOfLight:          DefaultSpeedOfLight,
		EffectiveCharge:       DefaultEffectiveCharge,
		BohrRadius:            DefaultBohrRadius,
		GravitationalConstant: DefaultGravitationalConstant,
		Density:               DefaultDensity,
		Wavelength:            DefaultWavelength,
		PlanckConstant:        DefaultPlanckConstant,
	}
}

// Validate requires every constant to be finite and strictly positive.
func (c Constants) Validate() error {
	return ValidateStruct(c)
}

func positive(name string, v float64) error {
	if !isFinite(v) {
		return &ConfigurationError{Field: name, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ConfigurationError{Field: name, Value: v, Reason: "must be positive"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
