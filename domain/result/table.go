// Package result holds the per-run output schema: one computation per formula
// that survived capability resolution and execution, plus parallel skip and
// failure records for everything that did not.
package result

import (
	"fmt"
	"strings"
	"time"

	"etbench/domain/core"
	"etbench/domain/forcing"
	"etbench/domain/formula"
)

// Warning kinds attached to computations.
const (
	WarnPartitionMismatch = "partition_mismatch"
)

// Warning is a non-fatal data-quality note attached to one formula's result.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Computation is one formula's per-timestep output.
type Computation struct {
	Formula    string               `json:"formula"`
	Family     formula.Family       `json:"family"`
	Total      []float64            `json:"total"`
	Components map[string][]float64 `json:"components,omitempty"`
	Warnings   []Warning            `json:"warnings,omitempty"`
	Elapsed    time.Duration        `json:"elapsed"`
}

// Partitioned reports whether the computation carries component series.
func (c Computation) Partitioned() bool {
	return len(c.Components) > 0
}

// Skip records a formula excluded by capability resolution.
type Skip struct {
	Formula string                `json:"formula"`
	Missing []forcing.VariableKey `json:"missing"`
}

// Reason renders the skip as "missing: lai, co2".
func (s Skip) Reason() string {
	names := make([]string, len(s.Missing))
	for i, key := range s.Missing {
		names[i] = string(key)
	}
	return fmt.Sprintf("missing: %s", strings.Join(names, ", "))
}

// Failure records a formula whose callable raised during a batch run.
type Failure struct {
	Formula string `json:"formula"`
	Message string `json:"message"`
}

// Table maps formula name to its computation over a shared timestamp axis.
// Built fresh per run; failed formulas are absent, not null-filled.
type Table struct {
	RunID     core.RunID
	CreatedAt core.Timestamp

	times   []time.Time
	order   []string
	results map[string]Computation

	Skipped []Skip
	Failed  []Failure
}

// NewTable creates an empty results table over the given timestamp axis.
func NewTable(times []time.Time) *Table {
	return &Table{
		RunID:     core.NewRunID(),
		CreatedAt: core.Now(),
		times:     append([]time.Time(nil), times...),
		results:   make(map[string]Computation),
	}
}

// Add appends a computation. Insertion order is preserved and drives the
// column ordering of every derived artifact.
func (t *Table) Add(comp Computation) {
	if _, exists := t.results[comp.Formula]; !exists {
		t.order = append(t.order, comp.Formula)
	}
	t.results[comp.Formula] = comp
}

// AddSkip records a capability gap.
func (t *Table) AddSkip(skip Skip) {
	t.Skipped = append(t.Skipped, skip)
}

// AddFailure records an isolated execution failure.
func (t *Table) AddFailure(failure Failure) {
	t.Failed = append(t.Failed, failure)
}

// AttachWarning appends a warning to the named formula's computation.
func (t *Table) AttachWarning(name string, warning Warning) {
	comp, ok := t.results[name]
	if !ok {
		return
	}
	comp.Warnings = append(comp.Warnings, warning)
	t.results[name] = comp
}

// Times returns a copy of the shared timestamp axis.
func (t *Table) Times() []time.Time {
	return append([]time.Time(nil), t.times...)
}

// Len returns the number of timesteps.
func (t *Table) Len() int {
	return len(t.times)
}

// Formulas returns formula names in insertion (registration) order.
func (t *Table) Formulas() []string {
	return append([]string(nil), t.order...)
}

// Result returns the named computation.
func (t *Table) Result(name string) (Computation, bool) {
	comp, ok := t.results[name]
	return comp, ok
}

// Total returns the named formula's total series.
func (t *Table) Total(name string) ([]float64, bool) {
	comp, ok := t.results[name]
	if !ok {
		return nil, false
	}
	return comp.Total, true
}
