package annotations

// Built-in marker schemas

// ModuleSchema defines //axon::module
var ModuleSchema = Schema{
	Marker:      ModuleMarker,
	Description: "Marks a struct as a module that owns definitions",
	Targets:     TargetStruct,
	Parameters: map[string]ParameterSpec{
		"Includes": {
			Type:        StringSliceType,
			Description: "Comma-separated list of module names this module includes",
		},
		"CreatedAtStart": {
			Type:        BoolType,
			Description: "Create every single definition of the module eagerly",
		},
	},
	Examples: []string{
		"//axon::module",
		"//axon::module -Includes=DataModule,CacheModule",
		"//axon::module -CreatedAtStart",
	},
}

// ComponentScanSchema defines //axon::component_scan
var ComponentScanSchema = Schema{
	Marker:      ComponentScanMarker,
	Description: "Declares the package prefix a module owns; no argument means catch-all",
	MaxArgs:     1,
	Targets:     TargetStruct,
	Examples: []string{
		"//axon::component_scan github.com/acme/shop/internal/orders",
		"//axon::component_scan",
	},
}

var definitionParameters = map[string]ParameterSpec{
	"Named": {
		Type:        StringType,
		Description: "Qualifier distinguishing definitions of the same type",
	},
	"Binds": {
		Type:        StringSliceType,
		Description: "Comma-separated list of interfaces the definition is bound to",
	},
}

// SingleSchema defines //axon::single
var SingleSchema = Schema{
	Marker:      SingleMarker,
	Description: "Declares a singleton definition",
	Targets:     TargetStruct | TargetFunc | TargetMethod,
	Parameters: withParameters(definitionParameters, map[string]ParameterSpec{
		"CreatedAtStart": {
			Type:        BoolType,
			Description: "Create the instance when the container starts",
		},
	}),
	Examples: []string{
		"//axon::single",
		"//axon::single -Named=primary -Binds=Repository",
		"//axon::single -CreatedAtStart",
	},
}

// FactorySchema defines //axon::factory
var FactorySchema = Schema{
	Marker:      FactoryMarker,
	Description: "Declares a definition that yields a new instance on each request",
	Targets:     TargetStruct | TargetFunc | TargetMethod,
	Parameters:  definitionParameters,
	Examples:    []string{"//axon::factory", "//axon::factory -Binds=Handler"},
}

// ScopedSchema defines //axon::scoped
var ScopedSchema = Schema{
	Marker:      ScopedMarker,
	Description: "Declares a definition bound to a scope's lifetime",
	Targets:     TargetStruct | TargetFunc | TargetMethod,
	Parameters:  definitionParameters,
	Examples:    []string{"//axon::scoped"},
}

// PropertySchema defines //axon::property.
// On a struct field it takes the property key; on a function it takes the parameter name and the key.
var PropertySchema = Schema{
	Marker:      PropertyMarker,
	Description: "Requests a property value for a field or function parameter",
	MinArgs:     1,
	MaxArgs:     2,
	Targets:     TargetField | TargetFunc | TargetMethod,
	Examples: []string{
		"//axon::property server.port",
		"//axon::property port server.port",
	},
}

// PropertyValueSchema defines //axon::property_value
var PropertyValueSchema = Schema{
	Marker:      PropertyValueMarker,
	Description: "Marks a package-level var or const as the default source of a property",
	MaxArgs:     1,
	Targets:     TargetValue,
	Examples:    []string{"//axon::property_value server.port"},
}

// DefinitionSchema defines //axon::definition, written by generated code of other units
var DefinitionSchema = Schema{
	Marker:      DefinitionMarker,
	Description: "Marks a generated declaration as a definition of another compilation unit",
	MaxArgs:     1,
	Targets:     TargetStruct | TargetFunc | TargetValue,
	Examples:    []string{"//axon::definition github.com/acme/shop/internal/orders"},
}

// BuiltinSchemas returns every built-in schema
func BuiltinSchemas() []Schema {
	return []Schema{
		ModuleSchema,
		ComponentScanSchema,
		SingleSchema,
		FactorySchema,
		ScopedSchema,
		PropertySchema,
		PropertyValueSchema,
		DefinitionSchema,
	}
}

func withParameters(base, extra map[string]ParameterSpec) map[string]ParameterSpec {
	merged := make(map[string]ParameterSpec, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
