package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "PERTURB"

type envBinding struct {
	key   string
	apply func(v *viper.Viper, c *Config)
}

var envBindings = []envBinding{
	{"variant", func(v *viper.Viper, c *Config) { c.Variant = v.GetString("variant") }},
	{"workers", func(v *viper.Viper, c *Config) { c.Workers = v.GetInt("workers") }},
	{"constants.speed_of_light", func(v *viper.Viper, c *Config) { c.Constants.SpeedOfLight = v.GetFloat64("constants.speed_of_light") }},
	{"constants.effective_charge", func(v *viper.Viper, c *Config) {
		c.Constants.EffectiveCharge = v.GetFloat64("constants.effective_charge")
	}},
	{"constants.bohr_radius", func(v *viper.Viper, c *Config) { c.Constants.BohrRadius = v.GetFloat64("constants.bohr_radius") }},
	{"constants.gravitational_constant", func(v *viper.Viper, c *Config) {
		c.Constants.GravitationalConstant = v.GetFloat64("constants.gravitational_constant")
	}},
	{"constants.density", func(v *viper.Viper, c *Config) { c.Constants.Density = v.GetFloat64("constants.density") }},
	{"constants.wavelength", func(v *viper.Viper, c *Config) { c.Constants.Wavelength = v.GetFloat64("constants.wavelength") }},
	{"constants.planck_constant", func(v *viper.Viper, c *Config) {
		c.Constants.PlanckConstant = v.GetFloat64("constants.planck_constant")
	}},
	{"sweep.lower", func(v *viper.Viper, c *Config) { c.Sweep.Lower = v.GetFloat64("sweep.lower") }},
	{"sweep.upper", func(v *viper.Viper, c *Config) { c.Sweep.Upper = v.GetFloat64("sweep.upper") }},
	{"sweep.samples", func(v *viper.Viper, c *Config) { c.Sweep.Samples = v.GetInt("sweep.samples") }},
	{"quad.eps_abs", func(v *viper.Viper, c *Config) { c.Quad.EpsAbs = v.GetFloat64("quad.eps_abs") }},
	{"quad.eps_rel", func(v *viper.Viper, c *Config) { c.Quad.EpsRel = v.GetFloat64("quad.eps_rel") }},
	{"quad.limit", func(v *viper.Viper, c *Config) { c.Quad.Limit = v.GetInt("quad.limit") }},
	{"output.electron_volts", func(v *viper.Viper, c *Config) { c.Output.ElectronVolts = v.GetBool("output.electron_volts") }},
	{"output.ev_factor", func(v *viper.Viper, c *Config) { c.Output.EVFactor = v.GetFloat64("output.ev_factor") }},
	{"output.analytical", func(v *viper.Viper, c *Config) { c.Output.Analytical = v.GetBool("output.analytical") }},
}

// ApplyEnv overrides cfg from PERTURB_* variables, e.g. PERTURB_SWEEP_SAMPLES
// or PERTURB_CONSTANTS_BOHR_RADIUS. It returns the keys it applied.
func ApplyEnv(cfg *Config) []string {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applied := make([]string, 0)
	for _, b := range envBindings {
		_ = v.BindEnv(b.key)
		if v.IsSet(b.key) {
			b.apply(v, cfg)
			applied = append(applied, b.key)
		}
	}
	return applied
}
