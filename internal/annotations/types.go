package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker identifies an //axon:: annotation kind
type Marker int

const (
	ModuleMarker Marker = iota
	ComponentScanMarker
	SingleMarker
	FactoryMarker
	ScopedMarker
	PropertyMarker
	PropertyValueMarker
	DefinitionMarker
)

// String returns the short name used in source for the marker
func (m Marker) String() string {
	switch m {
	case ModuleMarker:
		return "module"
	case ComponentScanMarker:
		return "component_scan"
	case SingleMarker:
		return "single"
	case FactoryMarker:
		return "factory"
	case ScopedMarker:
		return "scoped"
	case PropertyMarker:
		return "property"
	case PropertyValueMarker:
		return "property_value"
	case DefinitionMarker:
		return "definition"
	default:
		return "unknown"
	}
}

// ParseMarker converts a short name to a Marker
func ParseMarker(s string) (Marker, error) {
	switch s {
	case "module":
		return ModuleMarker, nil
	case "component_scan":
		return ComponentScanMarker, nil
	case "single":
		return SingleMarker, nil
	case "factory":
		return FactoryMarker, nil
	case "scoped":
		return ScopedMarker, nil
	case "property":
		return PropertyMarker, nil
	case "property_value":
		return PropertyValueMarker, nil
	case "definition":
		return DefinitionMarker, nil
	default:
		return 0, fmt.Errorf("unknown annotation marker: %s", s)
	}
}

// DefinitionMarkers is the fixed set of markers that turn a declaration into a definition
var DefinitionMarkers = []Marker{SingleMarker, FactoryMarker, ScopedMarker}

// IsDefinition reports whether the marker is one of DefinitionMarkers
func (m Marker) IsDefinition() bool {
	for _, d := range DefinitionMarkers {
		if m == d {
			return true
		}
	}
	return false
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// Annotation is one parsed //axon:: line attached to a declaration
type Annotation struct {
	Marker     Marker                 // marker kind
	Args       []string               // positional arguments, in order
	Parameters map[string]interface{} // named parameters and flags, typed by schema
	Location   SourceLocation         // where the annotation was written
	Raw        string                 // original comment text
}

// ShortName returns the marker's source name
func (a *Annotation) ShortName() string {
	return a.Marker.String()
}

// Arg returns the positional argument at i, if present
func (a *Annotation) Arg(i int) (string, bool) {
	if i < 0 || i >= len(a.Args) {
		return "", false
	}
	return a.Args[i], true
}

// GetString returns a string parameter value with optional default
func (a *Annotation) GetString(name string, defaultValue ...string) string {
	if value, exists := a.Parameters[name]; exists {
		if s, ok := value.(string); ok {
			return s
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (a *Annotation) GetBool(name string, defaultValue ...bool) bool {
	if value, exists := a.Parameters[name]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetStringSlice returns a string slice parameter value
func (a *Annotation) GetStringSlice(name string) []string {
	if value, exists := a.Parameters[name]; exists {
		if s, ok := value.([]string); ok {
			return s
		}
	}
	return nil
}

// HasParameter checks if a parameter exists
func (a *Annotation) HasParameter(name string) bool {
	_, exists := a.Parameters[name]
	return exists
}

// ParameterType represents the type of a named parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// convert turns a raw token value into the parameter's declared type
func (p ParameterType) convert(raw string) (interface{}, error) {
	switch p {
	case BoolType:
		return strconv.ParseBool(raw)
	case StringSliceType:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}

// Target is the kind of declaration a marker may be attached to
type Target int

const (
	TargetStruct Target = 1 << iota
	TargetFunc
	TargetMethod
	TargetField
	TargetValue
)

// String returns the declaration kind the target stands for
func (t Target) String() string {
	switch t {
	case TargetStruct:
		return "struct"
	case TargetFunc:
		return "function"
	case TargetMethod:
		return "method"
	case TargetField:
		return "struct field"
	case TargetValue:
		return "var or const"
	default:
		return "declaration"
	}
}

// ParameterSpec defines one named parameter accepted by a marker
type ParameterSpec struct {
	Type        ParameterType
	Description string
}

// Schema defines what a marker accepts
type Schema struct {
	Marker      Marker
	Description string
	MinArgs     int
	MaxArgs     int
	Targets     Target
	Parameters  map[string]ParameterSpec
	Examples    []string
}
