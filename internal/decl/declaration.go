// Package decl describes annotated declarations as handed to the metadata scanner.
package decl

import (
	"fmt"

	"github.com/toyz/axonmeta/internal/annotations"
)

// Kind is the syntactic kind of a declaration
type Kind int

const (
	KindStruct Kind = iota
	KindFunc
	KindMethod
	KindField
	KindVar
	KindConst
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindFunc:
		return "func"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindVar:
		return "var"
	case KindConst:
		return "const"
	default:
		return "unknown"
	}
}

// IsClass reports whether the declaration is type-shaped
func (k Kind) IsClass() bool {
	return k == KindStruct
}

// IsFunction reports whether the declaration is function-shaped
func (k Kind) IsFunction() bool {
	return k == KindFunc || k == KindMethod
}

// Param is a struct field or function parameter of a declaration
type Param struct {
	Name        string                    // field or parameter name
	Type        string                    // type expression
	Annotations []*annotations.Annotation // annotations written on a field
}

// Declaration is one named source entity together with its annotations
type Declaration struct {
	SimpleName    string                     // identifier as declared
	QualifiedName string                     // package path plus name, "" if unknown
	PackagePath   string                     // import path of the declaring package
	Kind          Kind                       // syntactic kind
	Receiver      string                     // receiver type name for methods
	Parent        *Declaration               // enclosing declaration, if any
	Annotations   []*annotations.Annotation  // //axon:: annotations in doc order
	Params        []Param                    // fields (structs) or parameters (functions)
	Results       []string                   // result types of functions
	Resolvable    bool                       // all referenced symbols resolved
	Position      annotations.SourceLocation // declaration position
}

// Annotation returns the first annotation with the given marker, or nil
func (d *Declaration) Annotation(marker annotations.Marker) *annotations.Annotation {
	for _, a := range d.Annotations {
		if a.Marker == marker {
			return a
		}
	}
	return nil
}

// AnnotationsOf returns every annotation with the given marker
func (d *Declaration) AnnotationsOf(marker annotations.Marker) []*annotations.Annotation {
	var found []*annotations.Annotation
	for _, a := range d.Annotations {
		if a.Marker == marker {
			found = append(found, a)
		}
	}
	return found
}

// HasAnnotation reports whether the declaration carries marker
func (d *Declaration) HasAnnotation(marker annotations.Marker) bool {
	return d.Annotation(marker) != nil
}

// DefinitionAnnotation returns the first single/factory/scoped annotation, or nil
func (d *Declaration) DefinitionAnnotation() *annotations.Annotation {
	for _, a := range d.Annotations {
		if a.Marker.IsDefinition() {
			return a
		}
	}
	return nil
}

// String describes the declaration for diagnostics
func (d *Declaration) String() string {
	name := d.QualifiedName
	if name == "" {
		name = d.SimpleName
	}
	if d.Position.File != "" {
		return fmt.Sprintf("%s %s (%s:%d)", d.Kind, name, d.Position.File, d.Position.Line)
	}
	return fmt.Sprintf("%s %s", d.Kind, name)
}
