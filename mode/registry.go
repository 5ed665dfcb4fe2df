package mode

import (
	"errors"
	"fmt"
	"sort"
)

// Registry errors
var (
	ErrDuplicateMode = errors.New("mode already registered")
	ErrUnknownMode   = errors.New("unknown mode")
)

// Factory creates a fresh mode instance
type Factory func() Mode

// Registry maps mode names to factories, filled at startup
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds every built-in mode
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-in names are unique; errors are impossible here
	_ = r.Register(ReplayName, NewReplay)
	_ = r.Register(InspectName, NewInspect)
	return r
}

// Register adds a factory under name
func (r *Registry) Register(name string, f Factory) error {
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMode, name)
	}
	r.factories[name] = f
	return nil
}

// New instantiates the named mode
func (r *Registry) New(name string) (Mode, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownMode, name, r.Names())
	}
	return f(), nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
