// Package formulas holds the catalog of evapotranspiration formula bodies.
// Each body is a pure function over assembled input series; the engine never
// looks inside them. Physical validity checks (non-negativity, safe wind
// floors) live in the bodies, not the engine.
package formulas

import (
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

// minWindSpeed floors the wind speed used in aerodynamic resistance terms
// (ra = 208/u) so calm timesteps do not divide by zero.
const minWindSpeed = 0.5

// PenmanMonteith computes FAO-56 reference evapotranspiration (mm day-1).
func PenmanMonteith(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rh := in.Series(forcing.VarRelativeHumidity)
	wind := in.Series(forcing.VarWindSpeed)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])
		vpd := meteo.VaporPressureDeficit(temp[i], rh[i])

		// No resistance division here, so the raw wind is safe in both terms
		num := 0.408*delta*(rn[i]-shf[i]) + gamma*(900/(temp[i]+273))*wind[i]*vpd
		den := delta + gamma*(1+0.34*wind[i])

		total[i] = nonNegative(num / den)
	}
	return formula.Output{Total: total}, nil
}

// PenmanOpenWater computes the Penman open-water evaporation (mm day-1):
// a radiative term plus a wind-function aerodynamic term.
func PenmanOpenWater(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rh := in.Series(forcing.VarRelativeHumidity)
	wind := in.Series(forcing.VarWindSpeed)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])
		vpd := meteo.VaporPressureDeficit(temp[i], rh[i])

		radTerm := (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV
		aeroTerm := (gamma / (delta + gamma)) * 6.43 * (1 + 0.536*wind[i]) * vpd / meteo.LambdaV

		total[i] = nonNegative(radTerm + aeroTerm)
	}
	return formula.Output{Total: total}, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
