// Package forcing defines the immutable meteorological forcing table that
// drives every evapotranspiration formula in a comparison run.
package forcing

import (
	"fmt"
	"sort"
	"time"

	"etbench/domain/core"
)

// VariableKey names a forcing variable. Keys are case-sensitive and drawn
// from the known vocabulary below.
type VariableKey string

// Known forcing variables
const (
	VarTemperature      VariableKey = "temperature"       // air temperature (degC)
	VarRelativeHumidity VariableKey = "relative_humidity" // relative humidity (%)
	VarWindSpeed        VariableKey = "wind_speed"        // wind speed at 2m (m s-1)
	VarNetRadiation     VariableKey = "net_radiation"     // net radiation (MJ m-2 day-1)
	VarPressure         VariableKey = "pressure"          // atmospheric pressure (kPa)
	VarSoilHeatFlux     VariableKey = "soil_heat_flux"    // soil heat flux (MJ m-2 day-1)
	VarLAI              VariableKey = "lai"               // leaf area index (m2 m-2)
	VarNDVI             VariableKey = "ndvi"              // normalized difference vegetation index
	VarSoilMoisture     VariableKey = "soil_moisture"     // relative soil moisture (0-1)
	VarCO2              VariableKey = "co2"               // CO2 concentration (ppm)
	VarVPD              VariableKey = "vpd"               // vapor pressure deficit (kPa)
	VarTmin             VariableKey = "tmin"              // minimum daily temperature (degC)
	VarTmax             VariableKey = "tmax"              // maximum daily temperature (degC)
	VarDOY              VariableKey = "doy"               // day of year (1-366)
	VarLatitude         VariableKey = "latitude"          // latitude (degrees)
)

// KnownVariables lists the recognized vocabulary in canonical order.
var KnownVariables = []VariableKey{
	VarTemperature, VarRelativeHumidity, VarWindSpeed, VarNetRadiation,
	VarPressure, VarSoilHeatFlux, VarLAI, VarNDVI, VarSoilMoisture,
	VarCO2, VarVPD, VarTmin, VarTmax, VarDOY, VarLatitude,
}

// IsKnownVariable reports whether key belongs to the recognized vocabulary.
func IsKnownVariable(key VariableKey) bool {
	for _, k := range KnownVariables {
		if k == key {
			return true
		}
	}
	return false
}

// Dataset is a validated, time-indexed table of named numeric variables.
// It is constructed once per analysis run and immutable thereafter: the
// constructor copies all input slices and every accessor returns copies,
// so formulas can never mutate shared forcing data.
type Dataset struct {
	times   []time.Time
	order   []VariableKey
	columns map[VariableKey][]float64
}

// New builds a Dataset from a timestamp axis and named columns. Every column
// must have the same length as the timestamp axis. Column iteration order is
// made deterministic by sorting against the known vocabulary first, unknown
// keys after in lexical order.
func New(times []time.Time, columns map[VariableKey][]float64) (*Dataset, error) {
	if len(times) == 0 {
		return nil, core.ErrInsufficientData
	}

	ds := &Dataset{
		times:   append([]time.Time(nil), times...),
		columns: make(map[VariableKey][]float64, len(columns)),
	}

	// Known vocabulary first, in canonical order
	for _, key := range KnownVariables {
		values, ok := columns[key]
		if !ok {
			continue
		}
		if err := ds.addColumn(key, values); err != nil {
			return nil, err
		}
	}
	// Then anything outside the vocabulary, lexically
	extra := make([]VariableKey, 0)
	for key := range columns {
		if !IsKnownVariable(key) {
			extra = append(extra, key)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, key := range extra {
		if err := ds.addColumn(key, columns[key]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func (d *Dataset) addColumn(key VariableKey, values []float64) error {
	if len(values) != len(d.times) {
		return fmt.Errorf("%w: %s has %d values, expected %d",
			core.ErrLengthMismatch, key, len(values), len(d.times))
	}
	d.columns[key] = append([]float64(nil), values...)
	d.order = append(d.order, key)
	return nil
}

// Len returns the number of timesteps.
func (d *Dataset) Len() int {
	return len(d.times)
}

// Times returns a copy of the timestamp axis.
func (d *Dataset) Times() []time.Time {
	return append([]time.Time(nil), d.times...)
}

// Has reports whether the dataset carries the named variable.
func (d *Dataset) Has(key VariableKey) bool {
	_, ok := d.columns[key]
	return ok
}

// Column returns a copy of the named variable's series.
func (d *Dataset) Column(key VariableKey) ([]float64, bool) {
	values, ok := d.columns[key]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), values...), true
}

// Variables returns the available variable keys in deterministic order.
func (d *Dataset) Variables() []VariableKey {
	return append([]VariableKey(nil), d.order...)
}
