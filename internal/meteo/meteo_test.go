package meteo

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSaturationVaporPressure(t *testing.T) {
	cases := []struct {
		temp float64
		want float64
	}{
		{0, 0.6108},
		{20, 2.338},
		{30, 4.243},
	}
	for _, tc := range cases {
		got := SaturationVaporPressure(tc.temp)
		if !almostEqual(got, tc.want, 0.005) {
			t.Errorf("es(%v): expected %v, got %v", tc.temp, tc.want, got)
		}
	}
}

func TestSlopeSaturationVaporPressure(t *testing.T) {
	// FAO-56 tabulated slope at 20 degC is 0.145 kPa/degC
	got := SlopeSaturationVaporPressure(20)
	if !almostEqual(got, 0.145, 0.001) {
		t.Errorf("slope(20): expected ~0.145, got %v", got)
	}
	if SlopeSaturationVaporPressure(30) <= got {
		t.Error("slope must increase with temperature")
	}
}

func TestPsychrometricConstant(t *testing.T) {
	got := PsychrometricConstant(StandardPressure)
	if !almostEqual(got, 0.0674, 0.0001) {
		t.Errorf("gamma(101.3): expected ~0.0674, got %v", got)
	}
}

func TestVaporPressureDeficit(t *testing.T) {
	if got := VaporPressureDeficit(20, 100); !almostEqual(got, 0, 1e-12) {
		t.Errorf("vpd at saturation: expected 0, got %v", got)
	}
	vpd := VaporPressureDeficit(20, 60)
	if !almostEqual(vpd, 2.338*0.4, 0.01) {
		t.Errorf("vpd(20, 60): expected ~0.935, got %v", vpd)
	}
	if VaporPressureDeficit(20, 40) <= vpd {
		t.Error("vpd must grow as humidity drops")
	}
}

func TestAtmosphericPressure(t *testing.T) {
	if got := AtmosphericPressure(0); !almostEqual(got, 101.3, 0.01) {
		t.Errorf("p(0 m): expected 101.3, got %v", got)
	}
	// FAO-56 example: ~81.8 kPa at 1800 m
	if got := AtmosphericPressure(1800); !almostEqual(got, 81.8, 0.2) {
		t.Errorf("p(1800 m): expected ~81.8, got %v", got)
	}
}

func TestExtraterrestrialRadiation(t *testing.T) {
	// FAO-56 example 8: doy 246, latitude -20 gives Ra ~32.2 MJ m-2 day-1
	got := ExtraterrestrialRadiation(246, -20)
	if !almostEqual(got, 32.2, 0.3) {
		t.Errorf("Ra(246, -20): expected ~32.2, got %v", got)
	}

	// Polar night: no sunset-angle NaN, radiation near zero
	winter := ExtraterrestrialRadiation(355, 80)
	if math.IsNaN(winter) {
		t.Fatal("polar night Ra must not be NaN")
	}
	if winter > 1.0 {
		t.Errorf("polar night Ra should be near zero, got %v", winter)
	}
}

func TestWindSpeedAt2m(t *testing.T) {
	if got := WindSpeedAt2m(3.0, 2.0); got != 3.0 {
		t.Errorf("measurement already at 2 m must pass through, got %v", got)
	}
	// FAO-56 example 14: 3.2 m/s at 10 m is ~2.4 m/s at 2 m
	if got := WindSpeedAt2m(3.2, 10.0); !almostEqual(got, 2.4, 0.05) {
		t.Errorf("u2(3.2 @ 10 m): expected ~2.4, got %v", got)
	}
}

func TestCO2ResponseFactor(t *testing.T) {
	if got := CO2ResponseFactor(CO2Ref); got != 1.0 {
		t.Errorf("factor at reference concentration: expected 1, got %v", got)
	}
	if got := CO2ResponseFactor(CO2Ref * 4); !almostEqual(got, 0.5, 1e-12) {
		t.Errorf("factor at 4x reference: expected 0.5, got %v", got)
	}
	if got := CO2ResponseFactor(-10); got != 1.0 {
		t.Errorf("non-physical concentration falls back to 1, got %v", got)
	}
}

func TestLatentHeat(t *testing.T) {
	if got := LatentHeat(20); !almostEqual(got, 2.454, 0.001) {
		t.Errorf("lambda(20): expected ~2.454, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("expected upper bound, got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("expected lower bound, got %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("expected passthrough, got %v", got)
	}
}
