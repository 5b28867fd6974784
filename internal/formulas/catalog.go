package formulas

import (
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/meteo"
)

// Recognized tunable parameter names.
const (
	ParamAlpha             = "alpha"              // Priestley-Taylor coefficient
	ParamBeta              = "beta"               // Yang-Roderick aerodynamic weight
	ParamSurfaceResistance = "surface_resistance" // reference surface resistance (s m-1)
	ParamDryingPower       = "drying_power"       // Granger-Gray G parameter (kPa)
)

// Canonical formula names, in catalog order.
const (
	NamePM       = "PM"
	NamePenmanOW = "Penman-OW"
	NamePT       = "PT"
	NamePTJPL    = "PT-JPL"
	NamePML      = "PML"
	NamePMCO2    = "PM-CO2"
	NamePMCO2LAI = "PM-CO2-LAI"
	NameBouchet  = "CR-Bouchet"
	NameAA       = "CR-AA"
	NameGG       = "CR-GG"
	NameYR       = "Yang-Roderick"
	NameHG       = "Hargreaves"
	NameOudin    = "Oudin"
)

// pressureDefaults are the optional inputs nearly every formula shares.
var pressureDefaults = []formula.OptionalInput{
	{Key: forcing.VarPressure, Default: meteo.StandardPressure},
	{Key: forcing.VarSoilHeatFlux, Default: 0.0},
}

// Catalog returns the full formula catalog in canonical registration order.
func Catalog() []formula.Spec {
	return []formula.Spec{
		{
			Name:   NamePM,
			Family: formula.FamilyCombination,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation,
			},
			Optional: pressureDefaults,
			Compute:  PenmanMonteith,
		},
		{
			Name:   NamePenmanOW,
			Family: formula.FamilyCombination,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation,
			},
			Optional: pressureDefaults,
			Compute:  PenmanOpenWater,
		},
		{
			Name:     NamePT,
			Family:   formula.FamilyRadiation,
			Required: []forcing.VariableKey{forcing.VarTemperature, forcing.VarNetRadiation},
			Optional: pressureDefaults,
			Params:   map[string]float64{ParamAlpha: meteo.AlphaPT},
			Compute:  PriestleyTaylor,
		},
		{
			Name:     NamePTJPL,
			Family:   formula.FamilyVegetation,
			Required: []forcing.VariableKey{forcing.VarTemperature, forcing.VarNetRadiation},
			Optional: append([]formula.OptionalInput{
				{Key: forcing.VarLAI, Default: 3.0},
				{Key: forcing.VarSoilMoisture, Default: 0.5},
			}, pressureDefaults...),
			Params:  map[string]float64{ParamAlpha: meteo.AlphaPT},
			Compute: PriestleyTaylorJPL,
		},
		{
			Name:   NamePML,
			Family: formula.FamilyVegetation,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation,
			},
			Optional: append([]formula.OptionalInput{
				{Key: forcing.VarLAI, Default: 3.0},
			}, pressureDefaults...),
			SupportsPartition: true,
			Compute:           PenmanMonteithLeuning,
		},
		{
			Name:   NamePMCO2,
			Family: formula.FamilyCO2Aware,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation, forcing.VarCO2,
			},
			Optional: pressureDefaults,
			Params:   map[string]float64{ParamSurfaceResistance: 70.0},
			Compute:  PMCO2Aware,
		},
		{
			Name:   NamePMCO2LAI,
			Family: formula.FamilyCO2Aware,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation, forcing.VarCO2,
			},
			Optional: append([]formula.OptionalInput{
				{Key: forcing.VarLAI, Default: 3.0},
			}, pressureDefaults...),
			SupportsPartition: true,
			Compute:           PMCO2LAIAware,
		},
		{
			Name:   NameBouchet,
			Family: formula.FamilyComplementary,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity, forcing.VarNetRadiation,
			},
			Optional: pressureDefaults,
			Compute:  BouchetComplementary,
		},
		{
			Name:   NameAA,
			Family: formula.FamilyComplementary,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity,
				forcing.VarWindSpeed, forcing.VarNetRadiation,
			},
			Optional: pressureDefaults,
			Compute:  AdvectionAridity,
		},
		{
			Name:   NameGG,
			Family: formula.FamilyComplementary,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarRelativeHumidity, forcing.VarNetRadiation,
			},
			Optional: pressureDefaults,
			Params:   map[string]float64{ParamDryingPower: 0.07},
			Compute:  GrangerGray,
		},
		{
			Name:     NameYR,
			Family:   formula.FamilyRadiation,
			Required: []forcing.VariableKey{forcing.VarTemperature, forcing.VarNetRadiation},
			Optional: pressureDefaults,
			Params:   map[string]float64{ParamBeta: 0.24},
			Compute:  YangRoderick,
		},
		{
			Name:   NameHG,
			Family: formula.FamilyTemperature,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarTmin, forcing.VarTmax,
				forcing.VarDOY, forcing.VarLatitude,
			},
			Compute: Hargreaves,
		},
		{
			Name:   NameOudin,
			Family: formula.FamilyTemperature,
			Required: []forcing.VariableKey{
				forcing.VarTemperature, forcing.VarDOY, forcing.VarLatitude,
			},
			Compute: Oudin,
		},
	}
}

// DefaultRegistry builds a registry with the full catalog registered.
func DefaultRegistry() (*formula.Registry, error) {
	reg := formula.NewRegistry()
	for _, spec := range Catalog() {
		if err := reg.Register(spec); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
