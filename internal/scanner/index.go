package scanner

import (
	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/models"
)

// IndexEntry is one (scope, module) claim of the component index
type IndexEntry struct {
	Scope  string
	Module *models.Module
}

// ComponentIndex is the ordered routing table. Non-empty scopes come first in
// build order, followed by catch-all modules in build order. Routing picks the
// first entry whose scope contains the definition's package.
type ComponentIndex struct {
	entries []IndexEntry
}

// BuildComponentIndex indexes modules by their declared scan scope.
// Modules without a scan directive are left out. Two modules claiming the same
// non-empty scope is a fatal ScanScopeConflictError.
func BuildComponentIndex(modules []*models.Module) (*ComponentIndex, error) {
	var claims, catchAll []IndexEntry
	claimed := make(map[string]*models.Module)

	for _, module := range modules {
		if module.ComponentScan == nil {
			continue
		}

		scope := module.ComponentScan.PackageName
		if scope == "" {
			catchAll = append(catchAll, IndexEntry{Scope: scope, Module: module})
			continue
		}

		if existing, exists := claimed[scope]; exists {
			return nil, axonerrors.NewScanScopeConflictError(scope, module.Name, existing.Name)
		}
		claimed[scope] = module
		claims = append(claims, IndexEntry{Scope: scope, Module: module})
	}

	entries := make([]IndexEntry, 0, len(claims)+len(catchAll))
	entries = append(entries, claims...)
	entries = append(entries, catchAll...)
	return &ComponentIndex{entries: entries}, nil
}

// Entries returns the index entries in routing order
func (i *ComponentIndex) Entries() []IndexEntry {
	return i.entries
}

// Modules returns the indexed modules in routing order
func (i *ComponentIndex) Modules() []*models.Module {
	modules := make([]*models.Module, len(i.entries))
	for n, e := range i.entries {
		modules[n] = e.Module
	}
	return modules
}

// Find returns the first module accepting pkg
func (i *ComponentIndex) Find(pkg string) (*models.Module, bool) {
	for _, e := range i.entries {
		if e.Module.AcceptDefinition(pkg) {
			return e.Module, true
		}
	}
	return nil, false
}

// Len returns the number of indexed modules
func (i *ComponentIndex) Len() int {
	return len(i.entries)
}
