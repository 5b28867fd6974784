// Package testkit provides synthetic forcing fixtures for tests and the CLI
// demo mode.
package testkit

import (
	"math"
	"time"

	"etbench/domain/forcing"
)

// SyntheticConfig controls the generated series.
type SyntheticConfig struct {
	Days       int
	Start      time.Time
	Latitude   float64
	WithLAI    bool
	WithCO2    bool
	WithTRange bool // tmin/tmax/doy/latitude columns
}

// DefaultSyntheticConfig is a 30-day mid-latitude summer fixture with the
// full variable set.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Days:       30,
		Start:      time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Latitude:   45.0,
		WithLAI:    true,
		WithCO2:    true,
		WithTRange: true,
	}
}

// SyntheticForcing generates a deterministic daily forcing dataset with
// smooth seasonal variation: warming temperature trend, oscillating humidity
// and wind, and sinusoidal radiation.
func SyntheticForcing(cfg SyntheticConfig) (*forcing.Dataset, error) {
	n := cfg.Days
	times := make([]time.Time, n)

	temperature := make([]float64, n)
	humidity := make([]float64, n)
	wind := make([]float64, n)
	radiation := make([]float64, n)

	for i := 0; i < n; i++ {
		times[i] = cfg.Start.AddDate(0, 0, i)
		f := float64(i) / float64(max(n-1, 1))

		temperature[i] = 20.0 + 10.0*f
		humidity[i] = 60.0 + 20.0*math.Sin(4*math.Pi*f)
		wind[i] = 2.5 + math.Cos(2*math.Pi*f)
		radiation[i] = 15.0 + 5.0*math.Sin(2*math.Pi*f)
	}

	columns := map[forcing.VariableKey][]float64{
		forcing.VarTemperature:      temperature,
		forcing.VarRelativeHumidity: humidity,
		forcing.VarWindSpeed:        wind,
		forcing.VarNetRadiation:     radiation,
	}

	if cfg.WithLAI {
		lai := make([]float64, n)
		soilMoisture := make([]float64, n)
		for i := 0; i < n; i++ {
			f := float64(i) / float64(max(n-1, 1))
			lai[i] = 3.0 + f
			soilMoisture[i] = 0.5 + 0.2*math.Sin(3*math.Pi*f)
		}
		columns[forcing.VarLAI] = lai
		columns[forcing.VarSoilMoisture] = soilMoisture
	}

	if cfg.WithCO2 {
		co2 := make([]float64, n)
		for i := range co2 {
			co2[i] = 380.0
		}
		columns[forcing.VarCO2] = co2
	}

	if cfg.WithTRange {
		tmin := make([]float64, n)
		tmax := make([]float64, n)
		doy := make([]float64, n)
		latitude := make([]float64, n)
		for i := 0; i < n; i++ {
			tmin[i] = temperature[i] - 5
			tmax[i] = temperature[i] + 5
			doy[i] = float64(times[i].YearDay())
			latitude[i] = cfg.Latitude
		}
		columns[forcing.VarTmin] = tmin
		columns[forcing.VarTmax] = tmax
		columns[forcing.VarDOY] = doy
		columns[forcing.VarLatitude] = latitude
	}

	return forcing.New(times, columns)
}

// MinimalForcing builds a dataset with only the four core variables, one
// value per timestep.
func MinimalForcing(temperature, humidity, wind, radiation []float64) (*forcing.Dataset, error) {
	times := make([]time.Time, len(temperature))
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
	}
	return forcing.New(times, map[forcing.VariableKey][]float64{
		forcing.VarTemperature:      temperature,
		forcing.VarRelativeHumidity: humidity,
		forcing.VarWindSpeed:        wind,
		forcing.VarNetRadiation:     radiation,
	})
}

// Source adapts a config to the ports.ForcingSource interface.
type Source struct {
	Config SyntheticConfig
}

// Read generates the synthetic dataset.
func (s Source) Read() (*forcing.Dataset, error) {
	return SyntheticForcing(s.Config)
}
