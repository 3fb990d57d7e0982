package models

import "fmt"

// Keyword is the definition kind declared by its marker
type Keyword int

const (
	KeywordSingle Keyword = iota
	KeywordFactory
	KeywordScoped
)

// String returns the marker name of the keyword
func (k Keyword) String() string {
	switch k {
	case KeywordSingle:
		return "single"
	case KeywordFactory:
		return "factory"
	case KeywordScoped:
		return "scoped"
	default:
		return "unknown"
	}
}

// Shape tells whether a definition was declared on a type or a function
type Shape int

const (
	ClassShape Shape = iota
	FunctionShape
)

// String returns the shape name
func (s Shape) String() string {
	if s == FunctionShape {
		return "function"
	}
	return "class"
}

// Definition represents one injectable component
type Definition struct {
	PackageName    string       // import path of the declaring package
	Label          string       // type or function name
	Keyword        Keyword      // single, factory or scoped
	Shape          Shape        // class or function
	Parameters     []*Parameter // constructor inputs, in declaration order
	Qualifier      string       // optional -Named qualifier
	Binds          []string     // interfaces the definition is bound to
	CreatedAtStart bool         // eager creation for singles
	Receiver       string       // module struct name for definitions declared on a module
}

// Equal reports structural equality: same package, label and parameter shape.
// Keyword, shape and property default sources are not part of it.
func (d *Definition) Equal(other *Definition) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if d.PackageName != other.PackageName || d.Label != other.Label {
		return false
	}
	if len(d.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range d.Parameters {
		if !p.SameShape(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// PropertyParameters returns the parameters that request a property
func (d *Definition) PropertyParameters() []*Parameter {
	var props []*Parameter
	for _, p := range d.Parameters {
		if p.IsProperty() {
			props = append(props, p)
		}
	}
	return props
}

// QualifiedName returns package.label
func (d *Definition) QualifiedName() string {
	if d.PackageName == "" {
		return d.Label
	}
	return d.PackageName + "." + d.Label
}

// String returns a readable description used in diagnostics
func (d *Definition) String() string {
	return fmt.Sprintf("%s %s(%s)", d.Keyword, d.QualifiedName(), d.Shape)
}

// ExternalDefinition is a definition generated by another compilation unit
type ExternalDefinition struct {
	TargetPackage string // package the definition belongs to
	Name          string // simple name of the generated declaration
}

// PropertyValue binds a property id to the field that provides its default
type PropertyValue struct {
	ID    string // property key
	Field string // qualified name of the source var or const
}
