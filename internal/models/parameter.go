package models

// ParameterKind distinguishes ordinary parameters from property placeholders
type ParameterKind int

const (
	ParameterOrdinary ParameterKind = iota
	ParameterProperty
)

// Parameter is one input of a definition
type Parameter struct {
	Kind         ParameterKind
	Name         string // field or parameter name
	Type         string // type expression as written in source
	PropertyKey  string // requested property id, property parameters only
	DefaultField string // bound default source, set at most once
}

// NewParameter creates an ordinary parameter
func NewParameter(name, typ string) *Parameter {
	return &Parameter{Kind: ParameterOrdinary, Name: name, Type: typ}
}

// NewPropertyParameter creates a parameter that requests property key
func NewPropertyParameter(name, typ, key string) *Parameter {
	return &Parameter{Kind: ParameterProperty, Name: name, Type: typ, PropertyKey: key}
}

// IsProperty reports whether the parameter requests a property
func (p *Parameter) IsProperty() bool {
	return p.Kind == ParameterProperty
}

// HasDefault reports whether a default source has been bound
func (p *Parameter) HasDefault() bool {
	return p.DefaultField != ""
}

// BindDefault sets the default source field. It returns false and leaves the
// parameter untouched when it is not a property or already has a default.
func (p *Parameter) BindDefault(field string) bool {
	if !p.IsProperty() || p.HasDefault() || field == "" {
		return false
	}
	p.DefaultField = field
	return true
}

// SameShape compares everything but the bound default
func (p *Parameter) SameShape(other *Parameter) bool {
	return p.Kind == other.Kind &&
		p.Name == other.Name &&
		p.Type == other.Type &&
		p.PropertyKey == other.PropertyKey
}
