// Package meteo provides the psychrometric and radiation helpers shared by
// the evapotranspiration formula bodies. All functions are closed-form scalar
// arithmetic over standard FAO-56 relationships.
package meteo

import "math"

// Physical constants
const (
	StefanBoltzmann  = 5.67e-8 // W m-2 K-4
	SpecificHeatAir  = 1013.0  // J kg-1 K-1
	VonKarman        = 0.41
	Gravity          = 9.81 // m s-2
	TZero            = 273.15
	StandardPressure = 101.3 // kPa at sea level

	// AlphaPT is the standard Priestley-Taylor coefficient for
	// well-watered surfaces.
	AlphaPT = 1.26

	// CO2Ref is the reference CO2 concentration (ppm) at which the
	// conductance response factor equals 1.
	CO2Ref = 380.0

	// LambdaV is the latent heat of vaporization (MJ kg-1) at ~20 degC.
	LambdaV = 2.45
)

// SaturationVaporPressure returns es (kPa) for air temperature t (degC),
// using the Tetens formula.
func SaturationVaporPressure(t float64) float64 {
	return 0.6108 * math.Exp((17.27*t)/(t+237.3))
}

// SlopeSaturationVaporPressure returns the slope of the saturation vapor
// pressure curve (kPa degC-1) at temperature t (degC).
func SlopeSaturationVaporPressure(t float64) float64 {
	es := SaturationVaporPressure(t)
	return 4098 * es / math.Pow(t+237.3, 2)
}

// PsychrometricConstant returns gamma (kPa degC-1) for pressure p (kPa).
func PsychrometricConstant(p float64) float64 {
	return 0.665e-3 * p
}

// ActualVaporPressure returns ea (kPa) from temperature (degC) and relative
// humidity (%).
func ActualVaporPressure(t, rh float64) float64 {
	return SaturationVaporPressure(t) * rh / 100.0
}

// VaporPressureDeficit returns es - ea (kPa).
func VaporPressureDeficit(t, rh float64) float64 {
	return SaturationVaporPressure(t) - ActualVaporPressure(t, rh)
}

// LatentHeat returns the latent heat of vaporization (MJ kg-1) as a function
// of temperature (degC).
func LatentHeat(t float64) float64 {
	return 2.501 - 0.002361*t
}

// AirDensity returns moist air density (kg m-3) for temperature (degC),
// pressure (kPa) and relative humidity (%).
func AirDensity(t, p, rh float64) float64 {
	tk := t + TZero
	pa := p * 1000
	ea := ActualVaporPressure(t, rh)
	return (pa-ea*1000)/(287.05*tk) + ea*1000/(461.5*tk)
}

// AtmosphericPressure returns pressure (kPa) at elevation (m) from the FAO-56
// standard atmosphere.
func AtmosphericPressure(elevation float64) float64 {
	return 101.3 * math.Pow((293-0.0065*elevation)/293, 5.26)
}

// ExtraterrestrialRadiation returns Ra (MJ m-2 day-1) for a day of year and
// latitude (degrees).
func ExtraterrestrialRadiation(doy, latitude float64) float64 {
	const gsc = 0.0820 // solar constant, MJ m-2 min-1
	latRad := latitude * math.Pi / 180

	dr := 1 + 0.033*math.Cos(2*math.Pi*doy/365)
	decl := 0.409 * math.Sin(2*math.Pi*doy/365-1.39)

	// Sunset hour angle; clamp the argument for polar day/night
	x := -math.Tan(latRad) * math.Tan(decl)
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	ws := math.Acos(x)

	return (24 * 60 / math.Pi) * gsc * dr *
		(ws*math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Sin(ws))
}

// WindSpeedAt2m adjusts wind speed measured at height z (m) to the 2 m
// reference height via the logarithmic profile.
func WindSpeedAt2m(uz, z float64) float64 {
	if z == 2.0 {
		return uz
	}
	return uz * 4.87 / math.Log(67.8*z-5.42)
}

// CO2ResponseFactor returns the stomatal conductance response to CO2
// concentration (ppm) relative to CO2Ref, using the square-root relationship.
func CO2ResponseFactor(co2 float64) float64 {
	if co2 <= 0 {
		return 1.0
	}
	return math.Sqrt(CO2Ref / co2)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
