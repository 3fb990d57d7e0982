package scanner

import (
	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

// Binding records one property parameter receiving a default source
type Binding struct {
	Value      models.PropertyValue
	Definition *models.Definition
	Parameter  *models.Parameter
}

// BindResult summarizes a property binding pass
type BindResult struct {
	Bound   []Binding              // parameters that received a default
	Skipped []Binding              // parameters that already had a default
	Inert   []models.PropertyValue // values no parameter asked for
}

// PropertyBinder attaches property_value sources to property parameters
type PropertyBinder struct {
	logger Logger
}

// NewPropertyBinder creates a binder
func NewPropertyBinder(logger Logger) *PropertyBinder {
	if logger == nil {
		logger = nopLogger{}
	}
	return &PropertyBinder{logger: logger}
}

// Extract reads a PropertyValue from each declaration. The id is the first
// annotation argument and the field is the declaration's qualified name;
// declarations missing either are returned as dropped.
func (b *PropertyBinder) Extract(decls []*decl.Declaration) (values []models.PropertyValue, dropped []*decl.Declaration) {
	for _, d := range decls {
		marker := d.Annotation(annotations.PropertyValueMarker)
		if marker == nil {
			dropped = append(dropped, d)
			continue
		}

		id, ok := marker.Arg(0)
		if !ok || id == "" || d.QualifiedName == "" {
			dropped = append(dropped, d)
			continue
		}

		values = append(values, models.PropertyValue{ID: id, Field: d.QualifiedName})
	}
	return values, dropped
}

// Bind sets the default source of every property parameter, across all
// definitions of modules, whose key equals a value's id. A parameter keeps the
// first default it receives.
func (b *PropertyBinder) Bind(values []models.PropertyValue, modules []*models.Module) BindResult {
	type target struct {
		def   *models.Definition
		param *models.Parameter
	}

	var properties []target
	for _, module := range modules {
		for _, def := range module.AllDefinitions() {
			for _, param := range def.PropertyParameters() {
				properties = append(properties, target{def: def, param: param})
			}
		}
	}

	var result BindResult
	for _, value := range values {
		matched := false
		for _, t := range properties {
			if t.param.PropertyKey != value.ID {
				continue
			}
			matched = true

			binding := Binding{Value: value, Definition: t.def, Parameter: t.param}
			if t.param.BindDefault(value.Field) {
				result.Bound = append(result.Bound, binding)
				continue
			}

			b.logger.Debug("property '%s' of %s already defaults to %s; ignoring %s",
				value.ID, t.def.QualifiedName(), t.param.DefaultField, value.Field)
			result.Skipped = append(result.Skipped, binding)
		}

		if !matched {
			result.Inert = append(result.Inert, value)
		}
	}

	return result
}
