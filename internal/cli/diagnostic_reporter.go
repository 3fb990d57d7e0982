package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(r.out, "\nERROR: Scan Failed\n")
	fmt.Fprintf(r.out, "==================\n\n")

	var multi *axonerrors.MultipleErrors
	var axonErr axonerrors.AxonError
	switch {
	case axonerrors.As(err, &multi):
		r.reportMultiple(multi)
	case axonerrors.As(err, &axonErr):
		r.reportAxonError(axonErr)
	default:
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportMultiple(multi *axonerrors.MultipleErrors) {
	fmt.Fprintf(r.out, "%d problem(s) found\n\n", len(multi.Errors))
	for _, err := range multi.Errors {
		r.reportAxonError(err)
	}
}

// reportAxonError reports an error with its context and suggestions
func (r *DiagnosticReporter) reportAxonError(err axonerrors.AxonError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", err.Unwrap().Error())
	}

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(err.ErrorCode())
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code axonerrors.ErrorCode) {
	var title string

	switch code {
	case axonerrors.SyntaxErrorCode:
		title = "Annotation Syntax Error"
	case axonerrors.SchemaErrorCode:
		title = "Annotation Schema Error"
	case axonerrors.ScanScopeConflictErrorCode:
		title = "Component Scan Conflict"
	case axonerrors.DeferredRoundErrorCode:
		title = "Unresolved Declarations"
	case axonerrors.DeclarationErrorCode:
		title = "Package Loading Error"
	case axonerrors.ConfigurationErrorCode:
		title = "Configuration Error"
	case axonerrors.OutputErrorCode:
		title = "Output Error"
	case axonerrors.FileSystemErrorCode:
		title = "File System Error"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	switch key {
	case "module_name":
		return "Module"
	case "existing_module":
		return "Already Claimed By"
	case "invalid_declarations":
		return "Unresolved"
	}

	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code axonerrors.ErrorCode) {
	switch code {
	case axonerrors.SyntaxErrorCode, axonerrors.SchemaErrorCode:
		fmt.Fprintf(r.out, "Annotation Syntax Help:\n")
		fmt.Fprintf(r.out, "  - Annotations must start with //axon::\n")
		fmt.Fprintf(r.out, "  - Named parameters take the form -Key=value or -Flag\n")
		fmt.Fprintf(r.out, "  - Quote values that contain spaces\n\n")

	case axonerrors.ScanScopeConflictErrorCode:
		fmt.Fprintf(r.out, "Component Scan Rules:\n")
		fmt.Fprintf(r.out, "  - A package scope may be claimed by one module only\n")
		fmt.Fprintf(r.out, "  - Any number of modules may use a bare //axon::component_scan\n\n")
	}

	if !r.verbose {
		fmt.Fprintf(r.out, "Run with --verbose for more detailed output\n")
	}
}
