package formulas

import (
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

// BouchetComplementary computes potential ET (mm day-1) from Bouchet's
// complementary relationship: the wet-environment (equilibrium) evaporation
// scaled by the Priestley-Taylor coefficient.
func BouchetComplementary(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])

		etWet := (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV
		total[i] = nonNegative(meteo.AlphaPT * etWet)
	}
	return formula.Output{Total: total}, nil
}

// AdvectionAridity computes potential ET (mm day-1) as equilibrium
// evaporation plus a drying-power aerodynamic term.
func AdvectionAridity(in *formula.Inputs) (formula.Output, error) {
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

		etWet := (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV

		windSafe := wind[i]
		if windSafe < minWindSpeed {
			windSafe = minWindSpeed
		}
		ra := 208.0 / windSafe
		aeroTerm := (1.01 * 1013 * vpd / ra) / meteo.LambdaV

		total[i] = nonNegative(etWet + (gamma/(delta+gamma))*aeroTerm)
	}
	return formula.Output{Total: total}, nil
}

// GrangerGray computes actual ET (mm day-1) from relative evaporation driven
// by the vapor pressure deficit.
func GrangerGray(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rh := in.Series(forcing.VarRelativeHumidity)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)
	gParam := in.Param(ParamDryingPower)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])
		vpd := meteo.VaporPressureDeficit(temp[i], rh[i])

		etEq := (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV

		relEvap := 1.0
		if vpd > 0 {
			relEvap = 1 / (1 + vpd/gParam)
		}

		total[i] = nonNegative(relEvap * etEq)
	}
	return formula.Output{Total: total}, nil
}
