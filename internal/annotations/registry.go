package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the schemas of the known markers
type Registry interface {
	// Register adds a marker with its schema
	Register(schema Schema) error

	// GetSchema retrieves the schema for a marker
	GetSchema(marker Marker) (Schema, error)

	// ListMarkers returns all registered markers in ascending order
	ListMarkers() []Marker

	// IsRegistered checks if a marker is registered
	IsRegistered(marker Marker) bool
}

type registry struct {
	mu      sync.RWMutex
	schemas map[Marker]Schema
}

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{
		schemas: make(map[Marker]Schema),
	}
}

var (
	defaultRegistry     Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the global registry populated with the built-in schemas
func DefaultRegistry() Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, schema := range BuiltinSchemas() {
			if err := defaultRegistry.Register(schema); err != nil {
				panic(fmt.Sprintf("failed to register built-in schema %s: %v", schema.Marker, err))
			}
		}
	})
	return defaultRegistry
}

// Register adds a marker with its schema to the registry
func (r *registry) Register(schema Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Marker]; exists {
		return fmt.Errorf("marker %s is already registered", schema.Marker)
	}

	if schema.MinArgs < 0 || schema.MaxArgs < schema.MinArgs {
		return fmt.Errorf("invalid positional arity for %s: %d..%d", schema.Marker, schema.MinArgs, schema.MaxArgs)
	}

	for name := range schema.Parameters {
		if name == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}
	}

	r.schemas[schema.Marker] = schema
	return nil
}

// GetSchema retrieves the schema for a marker
func (r *registry) GetSchema(marker Marker) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[marker]
	if !exists {
		return Schema{}, fmt.Errorf("marker %s is not registered", marker)
	}
	return schema, nil
}

// ListMarkers returns all registered markers
func (r *registry) ListMarkers() []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	markers := make([]Marker, 0, len(r.schemas))
	for marker := range r.schemas {
		markers = append(markers, marker)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i] < markers[j] })
	return markers
}

// IsRegistered checks if a marker is registered
func (r *registry) IsRegistered(marker Marker) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.schemas[marker]
	return exists
}
