package models

import "strings"

// ComponentScan represents the package scope a module declares ownership over.
// An empty PackageName is a catch-all scope that accepts every package.
type ComponentScan struct {
	PackageName string // package import path prefix, "" for catch-all
}

// IsCatchAll reports whether the scope accepts every package
func (c *ComponentScan) IsCatchAll() bool {
	return c.PackageName == ""
}

// Module represents a module declaration and everything routed into it
type Module struct {
	Name                string               // simple name of the module struct
	PackagePath         string               // import path of the declaring package
	ComponentScan       *ComponentScan       // nil when the module declares no scan directive
	Includes            []string             // names of included modules
	CreatedAtStart      bool                 // whether single definitions are created eagerly
	IsDefault           bool                 // true for the caller-supplied default module
	Own                 []*Definition        // definitions declared directly on the module
	Definitions         []*Definition        // definitions routed by package scope, append-only
	ExternalDefinitions []ExternalDefinition // definitions of other compilation units, append-only
}

// NewModule creates a module with no scan directive
func NewModule(name, packagePath string) *Module {
	return &Module{
		Name:        name,
		PackagePath: packagePath,
	}
}

// NewDefaultModule creates the synthetic module that receives unrouted definitions
func NewDefaultModule(name, packagePath string) *Module {
	return &Module{
		Name:        name,
		PackagePath: packagePath,
		IsDefault:   true,
	}
}

// ID returns the module's qualified identity
func (m *Module) ID() string {
	if m.PackagePath == "" {
		return m.Name
	}
	return m.PackagePath + "." + m.Name
}

// AcceptDefinition reports whether a definition declared in pkg falls under this module's scope.
// Modules without a scan directive accept nothing; catch-all modules accept everything.
func (m *Module) AcceptDefinition(pkg string) bool {
	if m.ComponentScan == nil {
		return false
	}
	return ScopeContains(m.ComponentScan.PackageName, pkg)
}

// ScopeContains reports whether scope is a package prefix of pkg, on segment
// boundaries. Import path scopes split on "/"; dotted scopes without a "/" split on ".".
func ScopeContains(scope, pkg string) bool {
	if scope == "" || pkg == scope {
		return true
	}
	if !strings.HasPrefix(pkg, scope) {
		return false
	}
	next := pkg[len(scope)]
	if strings.Contains(scope, "/") {
		return next == '/'
	}
	return next == '/' || next == '.'
}

// HasDefinition reports whether a structurally equal definition is already routed here
func (m *Module) HasDefinition(def *Definition) bool {
	for _, existing := range m.Definitions {
		if existing.Equal(def) {
			return true
		}
	}
	return false
}

// AddDefinition appends def unless a structurally equal definition exists.
// It returns false when def was skipped.
func (m *Module) AddDefinition(def *Definition) bool {
	if m.HasDefinition(def) {
		return false
	}
	m.Definitions = append(m.Definitions, def)
	return true
}

// AddExternalDefinition appends ext without deduplication
func (m *Module) AddExternalDefinition(ext ExternalDefinition) {
	m.ExternalDefinitions = append(m.ExternalDefinitions, ext)
}

// AllDefinitions returns the module's own definitions followed by routed ones
func (m *Module) AllDefinitions() []*Definition {
	all := make([]*Definition, 0, len(m.Own)+len(m.Definitions))
	all = append(all, m.Own...)
	all = append(all, m.Definitions...)
	return all
}

// String returns the module name
func (m *Module) String() string {
	return m.Name
}
