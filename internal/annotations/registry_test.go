package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	assert.Equal(t, []Marker{
		ModuleMarker,
		ComponentScanMarker,
		SingleMarker,
		FactoryMarker,
		ScopedMarker,
		PropertyMarker,
		PropertyValueMarker,
		DefinitionMarker,
	}, registry.ListMarkers())

	schema, err := registry.GetSchema(SingleMarker)
	require.NoError(t, err)
	assert.Contains(t, schema.Parameters, "CreatedAtStart")
	assert.Contains(t, schema.Parameters, "Named")

	factory, err := registry.GetSchema(FactoryMarker)
	require.NoError(t, err)
	assert.NotContains(t, factory.Parameters, "CreatedAtStart")
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(ModuleSchema))
	assert.True(t, registry.IsRegistered(ModuleMarker))
	assert.False(t, registry.IsRegistered(SingleMarker))

	err := registry.Register(ModuleSchema)
	assert.ErrorContains(t, err, "already registered")

	err = registry.Register(Schema{Marker: SingleMarker, MinArgs: 2, MaxArgs: 1})
	assert.ErrorContains(t, err, "invalid positional arity")

	_, err = registry.GetSchema(ScopedMarker)
	assert.ErrorContains(t, err, "not registered")
}

func TestMarkerRoundTrip(t *testing.T) {
	for _, schema := range BuiltinSchemas() {
		marker, err := ParseMarker(schema.Marker.String())
		require.NoError(t, err)
		assert.Equal(t, schema.Marker, marker)
	}

	_, err := ParseMarker("route")
	assert.Error(t, err)
}

func TestIsDefinition(t *testing.T) {
	assert.True(t, SingleMarker.IsDefinition())
	assert.True(t, FactoryMarker.IsDefinition())
	assert.True(t, ScopedMarker.IsDefinition())
	assert.False(t, ModuleMarker.IsDefinition())
	assert.False(t, DefinitionMarker.IsDefinition())
}
