package energy

import (
	"fmt"
	"math"
)

// Variant selects which physical quantity the sweep reports.
type Variant string

const (
	// VariantEnergy reports the energy correction E'.
	VariantEnergy Variant = "energy"
	// VariantEnergyPerMomentum reports E'/p with p = h/lambda.
	VariantEnergyPerMomentum Variant = "energy_per_momentum"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantEnergy, "":
		return VariantEnergy, nil
	case VariantEnergyPerMomentum:
		return VariantEnergyPerMomentum, nil
	}
	return "", &ConfigurationError{Field: "variant", Value: s, Reason: fmt.Sprintf("expected %q or %q", VariantEnergy, VariantEnergyPerMomentum)}
}

// Unit is the SI unit of samples produced for the variant.
func (v Variant) Unit() string {
	if v == VariantEnergyPerMomentum {
		return "J/(kg m/s)"
	}
	return "J"
}

// Prefactor is ((Z^3)/(pi a^3))^2 (pi/3) G (h/(lambda c)) rho (4 pi)^2 for
// the energy variant. The per-momentum variant divides out h/lambda.
func Prefactor(c Constants, v Variant) float64 {
	density := math.Pow(c.EffectiveCharge, 3) / (math.Pi * math.Pow(c.BohrRadius, 3))
	coupling := c.PlanckConstant / (c.Wavelength * c.SpeedOfLight)
	if v == VariantEnergyPerMomentum {
		coupling = 1 / c.SpeedOfLight
	}
	return density * density * (math.Pi / 3) * c.GravitationalConstant * coupling * c.Density * math.Pow(4*math.Pi, 2)
}

// AnalyticalApproximation is the closed-form reference
// prefactor * 15 lambda^8 / (32 Z^8).
func AnalyticalApproximation(prefactor, wavelength, z float64) float64 {
	return prefactor * (15 * math.Pow(wavelength, 8)) / (32 * math.Pow(z, 8))
}

// ToElectronVolts multiplies every sample by factor. NaN samples stay NaN.
func ToElectronVolts(series []float64, factor float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * factor
	}
	return out
}
