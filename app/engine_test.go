package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"etbench/domain/core"
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/internal/formulas"
	"etbench/internal/testkit"
)

// scenarioDataset is the 3-timestep minimal dataset from the acceptance
// scenarios: {temperature, relative_humidity, wind_speed, net_radiation} only.
func scenarioDataset(t *testing.T) *forcing.Dataset {
	t.Helper()
	ds, err := testkit.MinimalForcing(
		[]float64{20, 22, 25},
		[]float64{60, 65, 70},
		[]float64{2.5, 3.0, 2.0},
		[]float64{15, 18, 20},
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return ds
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	registry, err := formulas.DefaultRegistry()
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return NewEngine(registry)
}

func TestRunAll_CapabilityFiltering(t *testing.T) {
	engine := defaultEngine(t)
	table, err := engine.RunAll(context.Background(), scenarioDataset(t))
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	// Only formulas whose required set is within the 4-variable minimum run
	wantPresent := []string{
		formulas.NamePM, formulas.NamePenmanOW, formulas.NamePT, formulas.NamePTJPL,
		formulas.NamePML, formulas.NameBouchet, formulas.NameAA, formulas.NameGG,
		formulas.NameYR,
	}
	wantSkipped := map[string]string{
		formulas.NamePMCO2:    "missing: co2",
		formulas.NamePMCO2LAI: "missing: co2",
		formulas.NameOudin:    "missing: doy, latitude",
	}

	present := make(map[string]bool)
	for _, name := range table.Formulas() {
		present[name] = true
	}
	for _, name := range wantPresent {
		if !present[name] {
			t.Errorf("expected %s in results", name)
		}
	}

	skipReasons := make(map[string]string)
	for _, skip := range table.Skipped {
		skipReasons[skip.Formula] = skip.Reason()
		if present[skip.Formula] {
			t.Errorf("%s both skipped and present", skip.Formula)
		}
	}
	for name, reason := range wantSkipped {
		if skipReasons[name] != reason {
			t.Errorf("skip reason for %s: expected %q, got %q", name, reason, skipReasons[name])
		}
	}
	if _, ok := skipReasons[formulas.NameHG]; !ok {
		t.Errorf("expected %s skipped", formulas.NameHG)
	}

	// Exactly one total value per timestep, all finite
	for _, name := range table.Formulas() {
		total, _ := table.Total(name)
		if len(total) != 3 {
			t.Errorf("%s: expected 3 values, got %d", name, len(total))
		}
		for i, v := range total {
			if v < 0 {
				t.Errorf("%s[%d]: negative ET %v", name, i, v)
			}
		}
	}
}

func TestRunAll_MissingWindSkipsCombinationMethods(t *testing.T) {
	times := scenarioDataset(t).Times()
	ds, err := forcing.New(times, map[forcing.VariableKey][]float64{
		forcing.VarTemperature:      {20, 22, 25},
		forcing.VarRelativeHumidity: {60, 65, 70},
		forcing.VarNetRadiation:     {15, 18, 20},
	})
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}

	engine := defaultEngine(t)
	table, err := engine.RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	skipped := make(map[string]bool)
	for _, skip := range table.Skipped {
		skipped[skip.Formula] = true
		if skip.Formula == formulas.NamePM && !strings.Contains(skip.Reason(), "wind_speed") {
			t.Errorf("PM skip reason should name wind_speed, got %q", skip.Reason())
		}
	}
	for _, name := range []string{formulas.NamePM, formulas.NamePenmanOW, formulas.NamePML, formulas.NameAA} {
		if !skipped[name] {
			t.Errorf("expected wind-requiring formula %s skipped", name)
		}
	}

	for _, name := range []string{formulas.NamePT, formulas.NamePTJPL, formulas.NameBouchet, formulas.NameGG, formulas.NameYR} {
		total, ok := table.Total(name)
		if !ok {
			t.Errorf("expected %s to run without wind", name)
			continue
		}
		if len(total) != 3 {
			t.Errorf("%s: expected one value per timestep, got %d", name, len(total))
		}
	}
}

func TestRunAll_FaultyFormulaIsolation(t *testing.T) {
	ds := scenarioDataset(t)

	baselineEngine := defaultEngine(t)
	baseline, err := baselineEngine.RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("baseline RunAll: %v", err)
	}

	registry, err := formulas.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	// One callable that returns an error, one that panics
	mustRegister(t, registry, formula.Spec{
		Name:     "always-fails",
		Family:   formula.FamilyRadiation,
		Required: []forcing.VariableKey{forcing.VarTemperature},
		Compute: func(in *formula.Inputs) (formula.Output, error) {
			return formula.Output{}, errors.New("degenerate input")
		},
	})
	mustRegister(t, registry, formula.Spec{
		Name:     "always-panics",
		Family:   formula.FamilyRadiation,
		Required: []forcing.VariableKey{forcing.VarTemperature},
		Compute: func(in *formula.Inputs) (formula.Output, error) {
			var empty []float64
			return formula.Output{Total: []float64{empty[5]}}, nil
		},
	})

	table, err := NewEngine(registry).RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("RunAll with faulty formulas: %v", err)
	}

	failures := make(map[string]string)
	for _, failure := range table.Failed {
		failures[failure.Formula] = failure.Message
	}
	if msg, ok := failures["always-fails"]; !ok || msg == "" {
		t.Error("expected recorded failure with message for always-fails")
	}
	if msg, ok := failures["always-panics"]; !ok || !strings.Contains(msg, "panic") {
		t.Errorf("expected recorded panic for always-panics, got %q", msg)
	}
	if _, ok := table.Result("always-fails"); ok {
		t.Error("failed formula must be absent from results")
	}

	// Every other formula is unaffected and bit-identical to the baseline
	if len(table.Formulas()) != len(baseline.Formulas()) {
		t.Fatalf("expected %d results, got %d", len(baseline.Formulas()), len(table.Formulas()))
	}
	for _, name := range baseline.Formulas() {
		want, _ := baseline.Total(name)
		got, ok := table.Total(name)
		if !ok {
			t.Errorf("%s missing from faulty-formula run", name)
			continue
		}
		for i := range want {
			if want[i] != got[i] {
				t.Errorf("%s[%d]: %v != %v", name, i, got[i], want[i])
			}
		}
	}
}

func TestRunAll_RaggedComponentsRecordedAsFailure(t *testing.T) {
	ds := scenarioDataset(t)
	registry, err := formulas.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	// Total matches the axis but one component series is a single element
	mustRegister(t, registry, formula.Spec{
		Name:              "ragged-components",
		Family:            formula.FamilyVegetation,
		Required:          []forcing.VariableKey{forcing.VarTemperature},
		SupportsPartition: true,
		Compute: func(in *formula.Inputs) (formula.Output, error) {
			return formula.Output{
				Total: make([]float64, in.Len()),
				Components: map[string][]float64{
					formula.ComponentTranspiration: {1.0},
				},
			}, nil
		},
	})

	table, err := NewEngine(registry).RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("RunAll must complete despite the malformed output: %v", err)
	}

	var recorded bool
	for _, failure := range table.Failed {
		if failure.Formula == "ragged-components" {
			recorded = true
			if !strings.Contains(failure.Message, "transpiration") {
				t.Errorf("failure message should name the bad component, got %q", failure.Message)
			}
		}
	}
	if !recorded {
		t.Error("expected ragged-components in the failure list")
	}
	if _, ok := table.Result("ragged-components"); ok {
		t.Error("malformed computation must be absent from results")
	}

	// The healthy catalog is untouched
	total, ok := table.Total(formulas.NamePM)
	if !ok || len(total) != 3 {
		t.Errorf("expected PM to survive with 3 values, got %v (present=%v)", total, ok)
	}
}

func TestRunAll_Deterministic(t *testing.T) {
	ds := scenarioDataset(t)
	engine := defaultEngine(t)

	first, err := engine.RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("first RunAll: %v", err)
	}
	second, err := engine.RunAll(context.Background(), ds)
	if err != nil {
		t.Fatalf("second RunAll: %v", err)
	}

	firstNames := first.Formulas()
	secondNames := second.Formulas()
	if len(firstNames) != len(secondNames) {
		t.Fatalf("result counts differ: %d vs %d", len(firstNames), len(secondNames))
	}
	for i := range firstNames {
		if firstNames[i] != secondNames[i] {
			t.Fatalf("ordering differs at %d: %s vs %s", i, firstNames[i], secondNames[i])
		}
		a, _ := first.Total(firstNames[i])
		b, _ := second.Total(secondNames[i])
		for j := range a {
			if a[j] != b[j] {
				t.Errorf("%s[%d]: %v != %v", firstNames[i], j, a[j], b[j])
			}
		}
	}
}

func TestRunAll_OrderMatchesRegistration(t *testing.T) {
	engine := defaultEngine(t)
	table, err := engine.RunAll(context.Background(), scenarioDataset(t))
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	// Result order must be the registration order restricted to runnables
	var wantOrder []string
	for _, spec := range formulas.Catalog() {
		if _, ok := table.Result(spec.Name); ok {
			wantOrder = append(wantOrder, spec.Name)
		}
	}
	got := table.Formulas()
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], got[i])
		}
	}
}

func TestRunOne_PropagatesFailures(t *testing.T) {
	ds := scenarioDataset(t)
	registry, err := formulas.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	mustRegister(t, registry, formula.Spec{
		Name:     "always-fails",
		Family:   formula.FamilyRadiation,
		Required: []forcing.VariableKey{forcing.VarTemperature},
		Compute: func(in *formula.Inputs) (formula.Output, error) {
			return formula.Output{}, errors.New("degenerate input")
		},
	})
	engine := NewEngine(registry)

	if _, err := engine.RunOne(context.Background(), "always-fails", ds); !core.IsExecutionError(err) {
		t.Errorf("expected execution error, got %v", err)
	}
	if _, err := engine.RunOne(context.Background(), "no-such-formula", ds); !errors.Is(err, core.ErrFormulaNotFound) {
		t.Errorf("expected ErrFormulaNotFound, got %v", err)
	}
	if _, err := engine.RunOne(context.Background(), formulas.NamePMCO2, ds); !errors.Is(err, core.ErrNotRunnable) {
		t.Errorf("expected ErrNotRunnable for missing co2, got %v", err)
	}

	comp, err := engine.RunOne(context.Background(), formulas.NamePT, ds)
	if err != nil {
		t.Fatalf("RunOne(PT): %v", err)
	}
	if len(comp.Total) != 3 {
		t.Errorf("expected 3 values, got %d", len(comp.Total))
	}
}

func TestBuildInputs_OptionalDefaultsFill(t *testing.T) {
	ds := scenarioDataset(t)
	registry, err := formulas.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	spec, _ := registry.Get(formulas.NamePT)

	in := BuildInputs(ds, spec)
	pressure := in.Series(forcing.VarPressure)
	if len(pressure) != ds.Len() {
		t.Fatalf("expected pressure filled for %d steps, got %d", ds.Len(), len(pressure))
	}
	for i, v := range pressure {
		if v != 101.3 {
			t.Errorf("pressure[%d]: expected default 101.3, got %v", i, v)
		}
	}
	if in.Param(formulas.ParamAlpha) != 1.26 {
		t.Errorf("expected default alpha 1.26, got %v", in.Param(formulas.ParamAlpha))
	}
}

func mustRegister(t *testing.T, registry *formula.Registry, spec formula.Spec) {
	t.Helper()
	if err := registry.Register(spec); err != nil {
		t.Fatalf("register %s: %v", spec.Name, err)
	}
}
