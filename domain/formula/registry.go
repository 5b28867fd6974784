package formula

import (
	"etbench/domain/core"
)

// Config overrides a formula's declared tunables at registration time.
// Keys must match the spec's Params; unknown keys are rejected immediately.
type Config map[string]float64

// Registry is the in-memory formula catalog. It is loaded once at startup and
// read-only afterwards; All returns specs in registration order so downstream
// result tables have deterministic column ordering.
type Registry struct {
	order []string
	specs map[string]Spec
}

// NewRegistry creates an empty catalog.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a spec to the catalog. Duplicate names and invalid specs are
// programmer errors and fail immediately.
func (r *Registry) Register(spec Spec) error {
	return r.RegisterWithConfig(spec, nil)
}

// RegisterWithConfig registers a spec with tunable overrides. Every config key
// must name a declared parameter; the override becomes the value every
// invocation receives.
func (r *Registry) RegisterWithConfig(spec Spec, cfg Config) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if _, exists := r.specs[spec.Name]; exists {
		return core.NewRegistrationError(spec.Name, core.ErrDuplicateFormula)
	}

	if len(cfg) > 0 {
		// Copy before overriding so the caller's spec literal stays pristine.
		params := make(map[string]float64, len(spec.Params))
		for name, value := range spec.Params {
			params[name] = value
		}
		for name, value := range cfg {
			if _, known := params[name]; !known {
				return core.NewUnknownOptionError(spec.Name, name)
			}
			params[name] = value
		}
		spec.Params = params
	}

	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

// All returns every registered spec in registration order.
func (r *Registry) All() []Spec {
	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.specs[name])
	}
	return specs
}

// ByFamily returns registered specs of the given family, in registration order.
func (r *Registry) ByFamily(family Family) []Spec {
	specs := make([]Spec, 0)
	for _, name := range r.order {
		if spec := r.specs[name]; spec.Family == family {
			specs = append(specs, spec)
		}
	}
	return specs
}

// Get returns the named spec.
func (r *Registry) Get(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Len returns the number of registered formulas.
func (r *Registry) Len() int {
	return len(r.order)
}
