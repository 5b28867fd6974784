// Package formula defines the static descriptor for an evapotranspiration
// formula and the registry that catalogs them. Formula bodies are pluggable
// pure functions; the descriptor declares everything the execution engine
// needs to decide whether and how to invoke them.
package formula

import (
	"fmt"

	"etbench/domain/core"
	"etbench/domain/forcing"
)

// Family tags a formula with its algorithmic approach.
type Family string

const (
	FamilyTemperature   Family = "temperature"   // temperature-based (Hargreaves, Oudin)
	FamilyRadiation     Family = "radiation"     // radiation/energy-based (Priestley-Taylor)
	FamilyCombination   Family = "combination"   // combination methods (Penman-Monteith)
	FamilyCO2Aware      Family = "co2_aware"     // CO2-conductance-aware variants
	FamilyVegetation    Family = "vegetation"    // vegetation-aware (PML, PT-JPL)
	FamilyComplementary Family = "complementary" // complementary-relationship models
)

// Component names used by partitioned formulas.
const (
	ComponentTotal         = "total"
	ComponentTranspiration = "transpiration"
	ComponentEvaporation   = "evaporation"
)

// Func is the callable signature every formula implements: a deterministic,
// closed-form transformation of the assembled inputs. The returned Output
// carries one value per timestep.
type Func func(in *Inputs) (Output, error)

// OptionalInput declares a forcing variable the formula can use when present,
// with the constant default substituted when the dataset lacks it.
type OptionalInput struct {
	Key     forcing.VariableKey
	Default float64
}

// Spec is the static descriptor registered once at startup.
type Spec struct {
	Name              string
	Family            Family
	Required          []forcing.VariableKey
	Optional          []OptionalInput
	Params            map[string]float64 // recognized tunables with defaults
	SupportsPartition bool
	Compute           Func
}

// Validate checks the descriptor invariants: non-empty name, a callable, and
// disjoint required/optional input sets.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", core.ErrInvalidSpec)
	}
	if s.Compute == nil {
		return fmt.Errorf("%w: %s has no callable", core.ErrInvalidSpec, s.Name)
	}
	required := make(map[forcing.VariableKey]bool, len(s.Required))
	for _, key := range s.Required {
		if required[key] {
			return fmt.Errorf("%w: %s lists %s as required twice", core.ErrInvalidSpec, s.Name, key)
		}
		required[key] = true
	}
	for _, opt := range s.Optional {
		if required[opt.Key] {
			return fmt.Errorf("%w: %s lists %s as both required and optional",
				core.ErrInvalidSpec, s.Name, opt.Key)
		}
	}
	return nil
}

// Inputs is the complete argument set assembled for one invocation: every
// required series from the dataset, every optional series from the dataset or
// default-filled, and the resolved tunable parameters.
type Inputs struct {
	n      int
	series map[forcing.VariableKey][]float64
	params map[string]float64
}

// NewInputs creates an argument set for n timesteps.
func NewInputs(n int) *Inputs {
	return &Inputs{
		n:      n,
		series: make(map[forcing.VariableKey][]float64),
		params: make(map[string]float64),
	}
}

// Len returns the number of timesteps.
func (in *Inputs) Len() int { return in.n }

// SetSeries attaches a variable series.
func (in *Inputs) SetSeries(key forcing.VariableKey, values []float64) {
	in.series[key] = values
}

// Series returns the series for key. The capability resolver guarantees every
// declared input is present, so a missing key is a wiring bug and panics.
func (in *Inputs) Series(key forcing.VariableKey) []float64 {
	values, ok := in.series[key]
	if !ok {
		panic(fmt.Sprintf("formula input %s was not assembled", key))
	}
	return values
}

// SetParam sets a tunable parameter value.
func (in *Inputs) SetParam(name string, value float64) {
	in.params[name] = value
}

// Param returns the resolved tunable parameter value.
func (in *Inputs) Param(name string) float64 {
	value, ok := in.params[name]
	if !ok {
		panic(fmt.Sprintf("formula param %s was not assembled", name))
	}
	return value
}

// Output is the per-invocation result: a total series, plus named component
// series when the formula partitions its flux.
type Output struct {
	Total      []float64
	Components map[string][]float64
}
