package formulas

import (
	"math"

	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

func expNeg(x float64) float64 { return math.Exp(-x) }

// PenmanMonteithLeuning computes ET with explicit LAI control on canopy
// conductance and radiation partitioning. The output is partitioned into
// canopy transpiration and soil evaporation; the two sum to the total.
func PenmanMonteithLeuning(in *formula.Inputs) (formula.Output, error) {
	temp := in.Series(forcing.VarTemperature)
	rh := in.Series(forcing.VarRelativeHumidity)
	wind := in.Series(forcing.VarWindSpeed)
	rn := in.Series(forcing.VarNetRadiation)
	lai := in.Series(forcing.VarLAI)
	press := in.Series(forcing.VarPressure)
	shf := in.Series(forcing.VarSoilHeatFlux)

	n := in.Len()
	total := make([]float64, n)
	transpiration := make([]float64, n)
	evaporation := make([]float64, n)

	for i := 0; i < n; i++ {
		delta := meteo.SlopeSaturationVaporPressure(temp[i])
		gamma := meteo.PsychrometricConstant(press[i])
		vpd := meteo.VaporPressureDeficit(temp[i], rh[i])

		// Surface conductance: maximum conductance scaled by LAI,
		// temperature and VPD response functions.
		const gcMax = 0.006 // m s-1
		fLAI := 1 - expNeg(0.5*lai[i])
		fTemp := math.Exp(-math.Pow(temp[i]-25.0, 2) / 200.0)
		fVPD := math.Exp(-vpd / 3.0)
		gc := gcMax * fLAI * fTemp * fVPD

		rs := meteo.Clamp(1.0/(gc+1e-6), 10, 1000)

		windSafe := wind[i]
		if windSafe < minWindSpeed {
			windSafe = minWindSpeed
		}
		ra := 208.0 / windSafe

		// Radiation split between canopy and soil follows canopy cover
		fCanopy := 1 - expNeg(0.6*lai[i])
		rnCanopy := rn[i] * fCanopy
		rnSoil := rn[i] * (1 - fCanopy)

		numC := delta*rnCanopy + 1.01*1013*vpd/ra
		denC := meteo.LambdaV * (delta + gamma*(1+rs/ra))
		transp := nonNegative(numC / denC)

		evap := nonNegative(meteo.AlphaPT * (delta / (delta + gamma)) * (rnSoil - shf[i]) / meteo.LambdaV)

		transpiration[i] = transp
		evaporation[i] = evap
		total[i] = transp + evap
	}

	return formula.Output{
		Total: total,
		Components: map[string][]float64{
			formula.ComponentTranspiration: transpiration,
			formula.ComponentEvaporation:   evaporation,
		},
	}, nil
}
