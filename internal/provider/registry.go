package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps provider names to their adapter/normalizer variants.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]Variant),
	}
}

// Register adds a variant under its adapter's name. Registering the
// same name twice is an error.
func (r *Registry) Register(v Variant) error {
	if v.Adapter == nil || v.Normalizer == nil {
		return fmt.Errorf("variant requires both adapter and normalizer")
	}
	name := v.Adapter.Name()
	if name == "" {
		return fmt.Errorf("adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.variants[name] = v
	return nil
}

// Get returns the variant registered under name.
func (r *Registry) Get(name string) (Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[name]
	return v, ok
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
