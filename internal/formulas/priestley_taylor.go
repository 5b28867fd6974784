package formulas

import (
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

// PriestleyTaylor computes potential evapotranspiration (mm day-1) from the
// equilibrium evaporation scaled by the alpha coefficient.
func PriestleyTaylor(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)
	alpha := in.Param(ParamAlpha)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])

		total[i] = nonNegative(alpha * (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV)
	}
	return formula.Output{Total: total}, nil
}

// YangRoderick computes the Yang & Roderick bulk formulation (mm day-1),
// where beta folds the aerodynamic component into the psychrometric term.
func YangRoderick(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rn := in.Series(forcing.VarNetRadiation)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)
	beta := in.Param(ParamBeta)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])

		total[i] = nonNegative((delta / (delta + beta*gamma)) * (rn[i] - shf[i]) / meteo.LambdaV)
	}
	return formula.Output{Total: total}, nil
}

// PriestleyTaylorJPL computes constrained ET (mm day-1): the Priestley-Taylor
// potential reduced by green-canopy and soil-moisture stress factors.
func PriestleyTaylorJPL(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rn := in.Series(forcing.VarNetRadiation)
	lai := in.Series(forcing.VarLAI)
	soilMoisture := in.Series(forcing.VarSoilMoisture)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)
	alpha := in.Param(ParamAlpha)

	total := make([]float64, in.Len())
	for i := range total {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])

		petMax := alpha * (delta / (delta + gamma)) * (rn[i] - shf[i]) / meteo.LambdaV

		fGreen := 1 - expNeg(lai[i]/2.0)
		fSM := meteo.Clamp((soilMoisture[i]-smCritical)/(1-smCritical), 0, 1)

		total[i] = nonNegative(petMax * fGreen * fSM)
	}
	return formula.Output{Total: total}, nil
}

// smCritical is the soil moisture threshold below which transpiration shuts off.
const smCritical = 0.3
