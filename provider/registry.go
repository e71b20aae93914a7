package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/afea/einvoice/gateway"
)

// Registry manages named client factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[Name]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Name]Factory),
	}
}

// Register registers a named factory.
func (r *Registry) Register(name Name, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates a client using the named factory.
func (r *Registry) Create(name Name, cfg gateway.Config, opts ...gateway.Option) (Client, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %q not registered", name)
	}
	return factory(cfg, opts...)
}

// List returns the sorted names of all registered factories.
func (r *Registry) List() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]Name, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
