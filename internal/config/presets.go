package config

import (
	"sort"

	"github.com/san-kum/perturb/internal/energy"
)

var Presets = map[string]*Config{
	"energy": DefaultConfig(),
	"momentum": func() *Config {
		cfg := DefaultConfig()
		cfg.Preset = "momentum"
		cfg.Variant = string(energy.VariantEnergyPerMomentum)
		cfg.Sweep.Lower = 0
		cfg.Output.ElectronVolts = false
		cfg.Output.Analytical = false
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
