package scanner

import (
	"github.com/toyz/axonmeta/internal/decl"
)

// ValidityFilter splits declarations into resolvable and unresolvable ones
type ValidityFilter struct {
	provider decl.Provider
}

// NewValidityFilter creates a filter that asks provider about each declaration
func NewValidityFilter(provider decl.Provider) *ValidityFilter {
	return &ValidityFilter{provider: provider}
}

// Partition returns the valid and invalid declarations, both in input order
func (f *ValidityFilter) Partition(decls []*decl.Declaration) (valid, invalid []*decl.Declaration) {
	for _, d := range decls {
		if f.provider.Validate(d) {
			valid = append(valid, d)
		} else {
			invalid = append(invalid, d)
		}
	}
	return valid, invalid
}

// Valid returns only the valid declarations
func (f *ValidityFilter) Valid(decls []*decl.Declaration) []*decl.Declaration {
	valid, _ := f.Partition(decls)
	return valid
}
