package probe

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/waitgate/internal/config"
)

// Probe is one adapted piece of asynchronous work. Start may spin up
// background goroutines but must not block; Settled is the fast predicate
// the waiter registry polls; Stop releases whatever Start acquired and
// must be safe to call after a failed or skipped Start.
type Probe interface {
	Start(ctx context.Context) error
	Settled() bool
	Stop()
}

// Factory builds a probe from its waiter block in the scenario model.
type Factory func(spec *config.Waiter) (Probe, error)

// Registry maps waiter kinds to their probe factories for a single
// application instance.
type Registry struct {
	kinds map[string]Factory
}

// NewRegistry creates and initializes a new probe kind registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
	}
}

// RegisterKind registers a factory under a waiter kind. Registering the
// same kind twice is a programmer error.
func (r *Registry) RegisterKind(kind string, factory Factory) {
	if _, exists := r.kinds[kind]; exists {
		panic(fmt.Sprintf("probe kind '%s' already registered", kind))
	}
	r.kinds[kind] = factory
}

// New builds a probe for the given waiter spec, or errors when the kind
// is unknown.
func (r *Registry) New(spec *config.Waiter) (Probe, error) {
	factory, ok := r.kinds[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("waiter %q: unknown kind %q (known kinds: %v)", spec.Name, spec.Kind, r.Kinds())
	}
	probe, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("waiter %q: %w", spec.Name, err)
	}
	return probe, nil
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
