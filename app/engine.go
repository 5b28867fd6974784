// Package app orchestrates comparison runs: capability resolution, isolated
// formula execution, and component partition checks.
package app

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"etbench/domain/core"
	"etbench/domain/forcing"
	"etbench/domain/formula"
	"etbench/domain/result"
)

// Engine invokes runnable formulas against one shared forcing dataset.
// Formulas run concurrently under a bounded semaphore; results are merged by
// registration index so the output ordering is deterministic regardless of
// completion order.
type Engine struct {
	registry *formula.Registry
	workers  int64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers bounds the number of concurrently executing formulas.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = int64(n)
		}
	}
}

// NewEngine creates an execution engine over the given registry.
func NewEngine(registry *formula.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry,
		workers:  int64(runtime.GOMAXPROCS(0)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// outcome carries one formula's result back to the merge step.
type outcome struct {
	comp result.Computation
	err  error
}

// RunAll executes every runnable registered formula against the dataset.
// Each invocation is isolated: a failure is recorded per-formula and the
// batch continues. The returned table contains one entry per formula that
// passed capability resolution and executed cleanly, in registration order,
// with parallel skip and failure lists.
func (e *Engine) RunAll(ctx context.Context, ds *forcing.Dataset) (*result.Table, error) {
	table := result.NewTable(ds.Times())

	runnable, skipped := Runnable(ds, e.registry.All())
	for _, skip := range skipped {
		log.Printf("[Engine] skipping %s (%s)", skip.Formula, skip.Reason())
		table.AddSkip(skip)
	}

	sem := semaphore.NewWeighted(e.workers)
	outcomes := make([]outcome, len(runnable))

	var wg sync.WaitGroup
	for i, spec := range runnable {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("acquiring execution slot: %w", err)
		}
		wg.Add(1)
		go func(idx int, spec formula.Spec) {
			defer wg.Done()
			defer sem.Release(1)
			comp, err := e.execute(spec, ds)
			outcomes[idx] = outcome{comp: comp, err: err}
		}(i, spec)
	}
	wg.Wait()

	// Deterministic merge in registration order
	for i, spec := range runnable {
		if err := outcomes[i].err; err != nil {
			log.Printf("[Engine] %s failed: %v", spec.Name, err)
			table.AddFailure(result.Failure{Formula: spec.Name, Message: err.Error()})
			continue
		}
		table.Add(outcomes[i].comp)
	}

	CheckPartitions(table, e.registry)
	return table, nil
}

// RunOne executes a single named formula. Unlike RunAll, capability gaps and
// execution failures propagate to the caller.
func (e *Engine) RunOne(ctx context.Context, name string, ds *forcing.Dataset) (result.Computation, error) {
	spec, ok := e.registry.Get(name)
	if !ok {
		return result.Computation{}, fmt.Errorf("%w: %s", core.ErrFormulaNotFound, name)
	}
	if missing := MissingInputs(ds, spec); len(missing) > 0 {
		skip := result.Skip{Formula: name, Missing: missing}
		return result.Computation{}, fmt.Errorf("%w: %s (%s)", core.ErrNotRunnable, name, skip.Reason())
	}
	comp, err := e.execute(spec, ds)
	if err != nil {
		return result.Computation{}, core.NewExecutionError(name, err)
	}
	return comp, nil
}

// execute assembles inputs and invokes the formula callable with panic
// isolation. The engine passes raw numeric series unchanged: no unit
// conversion, clamping, or rounding happens here.
func (e *Engine) execute(spec formula.Spec, ds *forcing.Dataset) (result.Computation, error) {
	in := BuildInputs(ds, spec)

	started := time.Now()
	out, err := invoke(spec, in)
	if err != nil {
		return result.Computation{}, err
	}
	if len(out.Total) != ds.Len() {
		return result.Computation{}, fmt.Errorf("total has %d values, expected %d",
			len(out.Total), ds.Len())
	}
	for name, series := range out.Components {
		if len(series) != ds.Len() {
			return result.Computation{}, fmt.Errorf("component %s has %d values, expected %d",
				name, len(series), ds.Len())
		}
	}

	return result.Computation{
		Formula:    spec.Name,
		Family:     spec.Family,
		Total:      out.Total,
		Components: out.Components,
		Elapsed:    time.Since(started),
	}, nil
}

func invoke(spec formula.Spec, in *formula.Inputs) (out formula.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in formula callable: %v", r)
		}
	}()
	return spec.Compute(in)
}
