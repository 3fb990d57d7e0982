package scanner

import (
	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

// DefinitionBuilder converts definition declarations into Definition nodes
type DefinitionBuilder struct{}

// BuildClass creates a definition from a struct declaration. Its parameters are
// the struct fields; a field carrying //axon::property becomes a property parameter.
func (b *DefinitionBuilder) BuildClass(d *decl.Declaration) *models.Definition {
	def := b.base(d, models.ClassShape)

	for _, field := range d.Params {
		if key := fieldPropertyKey(field); key != "" {
			def.Parameters = append(def.Parameters, models.NewPropertyParameter(field.Name, field.Type, key))
			continue
		}
		def.Parameters = append(def.Parameters, models.NewParameter(field.Name, field.Type))
	}

	return def
}

// BuildFunction creates a definition from a function or method declaration.
// Functions without results provide nothing and yield false.
func (b *DefinitionBuilder) BuildFunction(d *decl.Declaration) (*models.Definition, bool) {
	if len(d.Results) == 0 {
		return nil, false
	}

	def := b.base(d, models.FunctionShape)
	if d.Kind == decl.KindMethod && d.Receiver != "" {
		def.Label = d.Receiver + "." + d.SimpleName
		def.Receiver = d.Receiver
	}

	keys := functionPropertyKeys(d)
	for _, param := range d.Params {
		if key, ok := keys[param.Name]; ok {
			def.Parameters = append(def.Parameters, models.NewPropertyParameter(param.Name, param.Type, key))
			continue
		}
		def.Parameters = append(def.Parameters, models.NewParameter(param.Name, param.Type))
	}

	return def, true
}

func (b *DefinitionBuilder) base(d *decl.Declaration, shape models.Shape) *models.Definition {
	def := &models.Definition{
		PackageName: d.PackagePath,
		Label:       d.SimpleName,
		Shape:       shape,
	}

	if marker := d.DefinitionAnnotation(); marker != nil {
		def.Keyword = keywordOf(marker.Marker)
		def.Qualifier = marker.GetString("Named")
		def.Binds = marker.GetStringSlice("Binds")
		def.CreatedAtStart = marker.GetBool("CreatedAtStart")
	}

	return def
}

func keywordOf(marker annotations.Marker) models.Keyword {
	switch marker {
	case annotations.FactoryMarker:
		return models.KeywordFactory
	case annotations.ScopedMarker:
		return models.KeywordScoped
	default:
		return models.KeywordSingle
	}
}

// fieldPropertyKey returns the property key written on a struct field; the key is the last argument
func fieldPropertyKey(field decl.Param) string {
	for _, a := range field.Annotations {
		if a.Marker == annotations.PropertyMarker && len(a.Args) > 0 {
			return a.Args[len(a.Args)-1]
		}
	}
	return ""
}

// functionPropertyKeys maps parameter names to property keys from "//axon::property <param> <key>"
func functionPropertyKeys(d *decl.Declaration) map[string]string {
	keys := make(map[string]string)
	for _, a := range d.AnnotationsOf(annotations.PropertyMarker) {
		if len(a.Args) == 2 {
			keys[a.Args[0]] = a.Args[1]
		}
	}
	return keys
}
