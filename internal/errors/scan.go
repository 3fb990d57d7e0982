package errors

import (
	"fmt"
	"strings"
)

// ScanScopeConflictError is raised when two modules claim the same component scan scope.
// It aborts the build; no partial graph is produced.
type ScanScopeConflictError struct {
	*BaseError
	Scope    string // the contested package scope
	Module   string // module that tried to claim the scope
	Existing string // module that claimed it first
}

// NewScanScopeConflictError creates a new scan scope conflict error
func NewScanScopeConflictError(scope, module, existing string) *ScanScopeConflictError {
	message := fmt.Sprintf("component scan with '%s' from module %s is already declared in %s", scope, module, existing)

	base := New(ScanScopeConflictErrorCode, message).
		WithContext("scope", scope).
		WithContext("module_name", module).
		WithContext("existing_module", existing).
		WithSuggestions(
			fmt.Sprintf("Change the //axon::component_scan value of %s or %s", module, existing),
			"Each non-empty scan scope can be owned by exactly one module",
		)

	return &ScanScopeConflictError{
		BaseError: base,
		Scope:     scope,
		Module:    module,
		Existing:  existing,
	}
}

// DeferredRoundError signals that the current round saw unresolvable declarations.
// It is not a failure: the caller is expected to retry on a later round.
type DeferredRoundError struct {
	*BaseError
	Invalid []string // descriptions of the unresolvable declarations
}

// NewDeferredRoundError creates a new deferred round signal
func NewDeferredRoundError(invalid []string) *DeferredRoundError {
	message := fmt.Sprintf("%d declaration(s) could not be resolved; round deferred", len(invalid))

	base := New(DeferredRoundErrorCode, message).
		WithContext("invalid_declarations", strings.Join(invalid, ", ")).
		WithSuggestions(
			"Check that every type referenced by an annotated declaration compiles",
			"Run with --verbose to list the unresolved declarations",
		)

	return &DeferredRoundError{
		BaseError: base,
		Invalid:   invalid,
	}
}

// IsDeferred reports whether err carries a deferred round signal
func IsDeferred(err error) bool {
	var deferred *DeferredRoundError
	return As(err, &deferred)
}

// IsScanScopeConflict reports whether err carries a scan scope conflict
func IsScanScopeConflict(err error) bool {
	var conflict *ScanScopeConflictError
	return As(err, &conflict)
}
