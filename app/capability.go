package app

import (
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/domain/result"
)

// MissingInputs returns the required inputs of spec absent from the dataset,
// in the spec's declaration order.
func MissingInputs(ds *forcing.Dataset, spec formula.Spec) []forcing.VariableKey {
	var missing []forcing.VariableKey
	for _, key := range spec.Required {
		if !ds.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Runnable splits specs into those whose full required-input set is available
// in the dataset and skip records for the rest. This is a pure filtering
// predicate: no partial execution, no coercion. One missing required input
// excludes the formula entirely.
func Runnable(ds *forcing.Dataset, specs []formula.Spec) ([]formula.Spec, []result.Skip) {
	runnable := make([]formula.Spec, 0, len(specs))
	var skipped []result.Skip
	for _, spec := range specs {
		if missing := MissingInputs(ds, spec); len(missing) > 0 {
			skipped = append(skipped, result.Skip{Formula: spec.Name, Missing: missing})
			continue
		}
		runnable = append(runnable, spec)
	}
	return runnable, skipped
}

// BuildInputs assembles the complete argument set for one invocation:
// required series straight from the dataset, optional series from the dataset
// when present or constant-filled with the spec's declared default, and the
// spec's resolved tunable parameters. Every declared input is guaranteed
// present in the returned Inputs.
func BuildInputs(ds *forcing.Dataset, spec formula.Spec) *formula.Inputs {
	in := formula.NewInputs(ds.Len())

	for _, key := range spec.Required {
		values, _ := ds.Column(key)
		in.SetSeries(key, values)
	}
	for _, opt := range spec.Optional {
		if values, ok := ds.Column(opt.Key); ok {
			in.SetSeries(opt.Key, values)
			continue
		}
		in.SetSeries(opt.Key, constantSeries(ds.Len(), opt.Default))
	}
	for name, value := range spec.Params {
		in.SetParam(name, value)
	}

	return in
}

func constantSeries(n int, value float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}
	return values
}
