// Package registry keeps the specs known to a host and plans many of them at once.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/specvital/spectree/pkg/spec"
)

var defaultRegistry = NewRegistry()

// Factory creates a fresh instance of a spec.
type Factory func() spec.Spec

// Registry maps spec names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry.
func Register(name string, f Factory) error {
	return defaultRegistry.Register(name, f)
}

// RegisterType adds a spec type to the default registry.
func RegisterType(v spec.Spec) error {
	return defaultRegistry.RegisterType(v)
}

// Register adds a factory under name. Names must be unique.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if f == nil {
		return &ConfigError{Spec: name, Err: ErrConstruction}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.factories[name] = f
	return nil
}

// RegisterType registers the dynamic type of v under its qualified type name,
// e.g. "samples/StackSpec". Each instantiation builds a new zero value.
func (r *Registry) RegisterType(v spec.Spec) error {
	if v == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidName)
	}
	t := reflect.TypeOf(v)
	return r.Register(TypeName(t), func() spec.Spec {
		s, err := InstantiateType(t)
		if err != nil {
			panic(err)
		}
		return s
	})
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the sorted names matching any of the doublestar patterns.
// No patterns match every name.
func (r *Registry) Match(patterns []string) ([]string, error) {
	names := r.Names()
	if len(patterns) == 0 {
		return names, nil
	}

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		for _, pattern := range patterns {
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched, nil
}

// Instantiate creates the named spec. Unknown names, panicking factories and
// nil instances are reported as *ConfigError.
func (r *Registry) Instantiate(name string) (s spec.Spec, err error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, &ConfigError{Spec: name, Err: ErrUnknownSpec}
	}

	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			err = &ConfigError{Spec: name, Err: fmt.Errorf("%w: %v", ErrConstruction, rec)}
		}
	}()

	s = f()
	if isNil(s) {
		return nil, &ConfigError{Spec: name, Err: fmt.Errorf("%w: factory returned nil", ErrConstruction)}
	}
	return s, nil
}
