package errors

import "fmt"

// SyntaxError represents a malformed //axon:: annotation
type SyntaxError struct {
	*BaseError
	Raw string // the offending annotation text
}

// NewSyntaxError creates a new annotation syntax error
func NewSyntaxError(message, raw string, loc SourceLocation) *SyntaxError {
	base := New(SyntaxErrorCode, message).
		WithLocation(loc).
		WithContext("annotation", raw).
		WithSuggestions(
			"Annotations must start with //axon:: followed by the marker name",
			"Named parameters use the -Key=value form; flags use -Key",
		)
	return &SyntaxError{BaseError: base, Raw: raw}
}

// SchemaError represents an annotation that parsed but violates its marker's schema
type SchemaError struct {
	*BaseError
	Marker string // marker short name
}

// NewSchemaError creates a new schema error for the given marker
func NewSchemaError(marker, message string, loc SourceLocation) *SchemaError {
	base := New(SchemaErrorCode, fmt.Sprintf("//axon::%s: %s", marker, message)).
		WithLocation(loc).
		WithContext("marker", marker)
	return &SchemaError{BaseError: base, Marker: marker}
}
