package formulas

import (
	"math"

	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

// Hargreaves computes reference ET (mm day-1) from the daily temperature
// range and extraterrestrial radiation.
func Hargreaves(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	tmin := in.Series(forcing.VarTmin)
	tmax := in.Series(forcing.VarTmax)
	doy := in.Series(forcing.VarDOY)
	latitude := in.Series(forcing.VarLatitude)

	total := make([]float64, in.Len())
	for i := range total {
		ra := meteo.ExtraterrestrialRadiation(doy[i], latitude[i])

		tRange := tmax[i] - tmin[i]
		if tRange < 0 {
			tRange = 0
		}

		total[i] = nonNegative(0.0023 * ra * math.Sqrt(tRange) * (temp[i] + 17.8))
	}
	return formula.Output{Total: total}, nil
}

// Oudin computes temperature-based potential ET (mm day-1); zero below the
// 5 degC activity threshold.
func Oudin(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	doy := in.Series(forcing.VarDOY)
	latitude := in.Series(forcing.VarLatitude)

	total := make([]float64, in.Len())
	for i := range total {
		if temp[i] <= 5.0 {
			continue
		}
		ra := meteo.ExtraterrestrialRadiation(doy[i], latitude[i])
		total[i] = nonNegative(ra * (temp[i] + 5.0) / (100.0 * meteo.LambdaV))
	}
	return formula.Output{Total: total}, nil
}
