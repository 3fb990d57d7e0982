package scanner

import (
	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

// ModuleBuilder converts module declarations into Module nodes
type ModuleBuilder struct{}

// Build creates the Module for a valid module declaration.
// The component scan is nil when the declaration carries no component_scan marker
// and the empty string when the marker has no argument.
func (b *ModuleBuilder) Build(d *decl.Declaration) *models.Module {
	module := models.NewModule(d.SimpleName, d.PackagePath)

	if marker := d.Annotation(annotations.ModuleMarker); marker != nil {
		module.Includes = marker.GetStringSlice("Includes")
		module.CreatedAtStart = marker.GetBool("CreatedAtStart")
	}

	if scan := d.Annotation(annotations.ComponentScanMarker); scan != nil {
		pkg, _ := scan.Arg(0)
		module.ComponentScan = &models.ComponentScan{PackageName: pkg}
	}

	return module
}

// moduleKey identifies a module struct by package and name
type moduleKey struct {
	pkg  string
	name string
}

func keyOf(m *models.Module) moduleKey {
	return moduleKey{pkg: m.PackagePath, name: m.Name}
}
