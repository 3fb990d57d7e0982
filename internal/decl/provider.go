package decl

import (
	"github.com/toyz/axonmeta/internal/annotations"
)

// Provider yields the annotated declarations of one compilation round
type Provider interface {
	// ModuleDeclarations returns every declaration carrying a module marker
	ModuleDeclarations() []*Declaration

	// DefinitionDeclarations returns every declaration carrying a single, factory or scoped marker
	DefinitionDeclarations() []*Declaration

	// PropertyValueDeclarations returns every declaration carrying a property_value marker
	PropertyValueDeclarations() []*Declaration

	// GeneratedDeclarations returns every declaration of the generated package pkg
	GeneratedDeclarations(pkg string) []*Declaration

	// Validate reports whether every symbol referenced by d is resolved
	Validate(d *Declaration) bool
}

// MemoryProvider is a Provider over an in-memory declaration list.
// Declarations are returned in insertion order.
type MemoryProvider struct {
	declarations []*Declaration
	validator    func(*Declaration) bool
}

// NewMemoryProvider creates a provider holding decls
func NewMemoryProvider(decls ...*Declaration) *MemoryProvider {
	return &MemoryProvider{declarations: decls}
}

// Add appends declarations
func (p *MemoryProvider) Add(decls ...*Declaration) {
	p.declarations = append(p.declarations, decls...)
}

// SetValidator overrides the default validity check, which reads Declaration.Resolvable
func (p *MemoryProvider) SetValidator(validator func(*Declaration) bool) {
	p.validator = validator
}

// ModuleDeclarations implements Provider
func (p *MemoryProvider) ModuleDeclarations() []*Declaration {
	return p.filter(func(d *Declaration) bool {
		return d.HasAnnotation(annotations.ModuleMarker)
	})
}

// DefinitionDeclarations implements Provider
func (p *MemoryProvider) DefinitionDeclarations() []*Declaration {
	return p.filter(func(d *Declaration) bool {
		return d.DefinitionAnnotation() != nil
	})
}

// PropertyValueDeclarations implements Provider
func (p *MemoryProvider) PropertyValueDeclarations() []*Declaration {
	return p.filter(func(d *Declaration) bool {
		return d.HasAnnotation(annotations.PropertyValueMarker)
	})
}

// GeneratedDeclarations implements Provider
func (p *MemoryProvider) GeneratedDeclarations(pkg string) []*Declaration {
	return p.filter(func(d *Declaration) bool {
		return d.PackagePath == pkg
	})
}

// Validate implements Provider
func (p *MemoryProvider) Validate(d *Declaration) bool {
	if p.validator != nil {
		return p.validator(d)
	}
	return d.Resolvable
}

func (p *MemoryProvider) filter(keep func(*Declaration) bool) []*Declaration {
	var out []*Declaration
	for _, d := range p.declarations {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
