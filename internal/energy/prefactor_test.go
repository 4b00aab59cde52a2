package energy

import (
	"math"
	"testing"
)

func TestPrefactor_Deterministic(t *testing.T) {
	c := HeliumConstants()
	first := Prefactor(c, VariantEnergy)
	for i := 0; i < 100; i++ {
		if got := Prefactor(c, VariantEnergy); got != first {
			t.Fatalf("call %d: %v != %v", i, got, first)
		}
	}

	want := 7.599709077065424e+23
	if rel := math.Abs(first-want) / want; rel > 1e-12 {
		t.Errorf("Prefactor = %g, want %g", first, want)
	}
}

func TestPrefactor_PerMomentum(t *testing.T) {
	c := HeliumConstants()
	e := Prefactor(c, VariantEnergy)
	p := Prefactor(c, VariantEnergyPerMomentum)

	momentum := c.PlanckConstant / c.Wavelength
	if rel := math.Abs(e/p-momentum) / momentum; rel > 1e-12 {
		t.Errorf("E/(E/p) = %g, want p = %g", e/p, momentum)
	}
}

func TestAnalyticalApproximation(t *testing.T) {
	c := HeliumConstants()
	got := AnalyticalApproximation(Prefactor(c, VariantEnergy), c.Wavelength, c.EffectiveCharge)
	want := 2.091243701638084e-53
	if rel := math.Abs(got-want) / want; rel > 1e-12 {
		t.Errorf("AnalyticalApproximation = %g, want %g", got, want)
	}
}

func TestToElectronVolts(t *testing.T) {
	in := []float64{0, 1e-53, -3.5e-60, math.NaN(), 42}
	out := ToElectronVolts(in, ElectronVoltsPerJoule)

	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i := range in {
		want := in[i] * ElectronVoltsPerJoule
		if math.IsNaN(in[i]) {
			if !math.IsNaN(out[i]) {
				t.Errorf("index %d: NaN not preserved", i)
			}
			continue
		}
		if out[i] != want {
			t.Errorf("index %d: %v != %v", i, out[i], want)
		}
	}

	in[4] = 0
	if out[4] != 42*ElectronVoltsPerJoule {
		t.Error("ToElectronVolts aliases its input")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", VariantEnergy, false},
		{"energy", VariantEnergy, false},
		{"energy_per_momentum", VariantEnergyPerMomentum, false},
		{"momentum", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConstantsValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Constants)
		field string
	}{
		{"zero bohr radius", func(c *Constants) { c.BohrRadius = 0 }, "bohr_radius"},
		{"negative bohr radius", func(c *Constants) { c.BohrRadius = -1e-11 }, "bohr_radius"},
		{"nan charge", func(c *Constants) { c.EffectiveCharge = math.NaN() }, "effective_charge"},
		{"infinite light", func(c *Constants) { c.SpeedOfLight = math.Inf(1) }, "speed_of_light"},
		{"zero density", func(c *Constants) { c.Density = 0 }, "density"},
		{"negative planck", func(c *Constants) { c.PlanckConstant = -1 }, "planck_constant"},
	}

	if err := HeliumConstants().Validate(); err != nil {
		t.Fatalf("helium constants invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := HeliumConstants()
			tt.mod(&c)
			err := c.Validate()
			cerr, ok := err.(*ConfigurationError)
			if !ok {
				t.Fatalf("expected *ConfigurationError, got %T (%v)", err, err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %s, want %s", cerr.Field, tt.field)
			}
		})
	}
}
