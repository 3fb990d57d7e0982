package scanner

import (
	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

// LinkedExternal records an external definition attached to a module
type LinkedExternal struct {
	Definition models.ExternalDefinition
	Module     *models.Module
}

// LinkResult summarizes an external linking pass
type LinkResult struct {
	Linked     []LinkedExternal            // attached to a scanning module
	Unowned    []models.ExternalDefinition // no local module scans their package
	Untargeted []*decl.Declaration         // declarations without a target package
}

// ExternalLinker attaches definitions generated by other units to local modules.
// The default module is never a target.
type ExternalLinker struct {
	index  *ComponentIndex
	logger Logger
}

// NewExternalLinker creates a linker over index
func NewExternalLinker(index *ComponentIndex, logger Logger) *ExternalLinker {
	if logger == nil {
		logger = nopLogger{}
	}
	return &ExternalLinker{index: index, logger: logger}
}

// Link attaches each external declaration to the first module whose scope
// contains its target package. No deduplication is done.
func (l *ExternalLinker) Link(decls []*decl.Declaration) LinkResult {
	var result LinkResult

	for _, d := range decls {
		marker := d.Annotation(annotations.DefinitionMarker)
		if marker == nil {
			continue
		}

		target, ok := marker.Arg(0)
		if !ok {
			result.Untargeted = append(result.Untargeted, d)
			continue
		}

		ext := models.ExternalDefinition{TargetPackage: target, Name: d.SimpleName}
		module, found := l.index.Find(target)
		if !found {
			result.Unowned = append(result.Unowned, ext)
			continue
		}

		module.AddExternalDefinition(ext)
		result.Linked = append(result.Linked, LinkedExternal{Definition: ext, Module: module})
	}

	return result
}
