package forcing

import (
	"errors"
	"testing"
	"time"

	"etbench/domain/core"
)

func testTimes(n int) []time.Time {
	times := make([]time.Time, n)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
	}
	return times
}

func TestNew_ValidatesColumnLengths(t *testing.T) {
	_, err := New(testTimes(3), map[VariableKey][]float64{
		VarTemperature: {20, 22, 25},
		VarWindSpeed:   {2.5, 3.0}, // short
	})
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestNew_RejectsEmptyAxis(t *testing.T) {
	_, err := New(nil, map[VariableKey][]float64{VarTemperature: {}})
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestDataset_Immutability(t *testing.T) {
	source := []float64{20, 22, 25}
	ds, err := New(testTimes(3), map[VariableKey][]float64{VarTemperature: source})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Mutating the constructor input must not reach the dataset
	source[0] = -999
	values, _ := ds.Column(VarTemperature)
	if values[0] != 20 {
		t.Errorf("dataset aliased constructor input: got %v", values[0])
	}

	// Mutating a read column must not reach the dataset either
	values[1] = -999
	again, _ := ds.Column(VarTemperature)
	if again[1] != 22 {
		t.Errorf("dataset aliased returned column: got %v", again[1])
	}
}

func TestDataset_VariableOrderIsDeterministic(t *testing.T) {
	columns := map[VariableKey][]float64{
		VarWindSpeed:   {1, 2, 3},
		VarTemperature: {20, 22, 25},
		VarCO2:         {380, 380, 380},
	}
	ds, err := New(testTimes(3), columns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []VariableKey{VarTemperature, VarWindSpeed, VarCO2}
	got := ds.Variables()
	if len(got) != len(want) {
		t.Fatalf("expected %d variables, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variable %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDataset_HasAndColumn(t *testing.T) {
	ds, err := New(testTimes(2), map[VariableKey][]float64{VarLAI: {3.0, 3.5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !ds.Has(VarLAI) {
		t.Error("expected lai present")
	}
	if ds.Has(VarCO2) {
		t.Error("expected co2 absent")
	}
	if _, ok := ds.Column(VarCO2); ok {
		t.Error("Column should report absence")
	}
	if ds.Len() != 2 {
		t.Errorf("expected 2 timesteps, got %d", ds.Len())
	}
}
