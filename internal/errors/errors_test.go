package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError(t *testing.T) {
	err := New(ConfigurationErrorCode, "bad config").
		WithLocation(SourceLocation{File: "axonmeta.yaml", Line: 3}).
		WithContext("key", "max-rounds").
		WithSuggestions("Use a positive number").
		WithCause(io.EOF)

	assert.Equal(t, ConfigurationErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), "bad config")
	assert.Equal(t, "axonmeta.yaml:3", err.Location().String())
	assert.Equal(t, "max-rounds", err.Context()["key"])
	assert.Equal(t, []string{"Use a positive number"}, err.Suggestions())
	assert.True(t, Is(err, io.EOF))
}

func TestSourceLocation(t *testing.T) {
	assert.True(t, SourceLocation{}.IsEmpty())
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:1:2", SourceLocation{File: "a.go", Line: 1, Column: 2}.String())
}

func TestScanErrors(t *testing.T) {
	conflict := NewScanScopeConflictError("example.com/app/core", "B", "A")
	assert.Equal(t, "component scan with 'example.com/app/core' from module B is already declared in A", conflict.Error())
	assert.Equal(t, ScanScopeConflictErrorCode, conflict.ErrorCode())

	wrapped := fmt.Errorf("round 1: %w", conflict)
	assert.True(t, IsScanScopeConflict(wrapped))
	assert.False(t, IsDeferred(wrapped))

	deferred := NewDeferredRoundError([]string{"struct app.Repo", "func app.NewClient"})
	assert.True(t, IsDeferred(fmt.Errorf("wrap: %w", deferred)))
	assert.Contains(t, deferred.Error(), "2 declaration(s) could not be resolved")
	assert.Equal(t, "struct app.Repo, func app.NewClient", deferred.Context()["invalid_declarations"])
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.True(t, multi.IsEmpty())
	assert.NoError(t, multi.ErrorOrNil())

	multi.Add(NewSyntaxError("unexpected token", "//axon::module -", SourceLocation{File: "a.go", Line: 2}))
	multi.Add(NewSchemaError("module", "cannot be applied to a function", SourceLocation{File: "a.go", Line: 5}))

	err := multi.ErrorOrNil()
	require.Error(t, err)

	var target *SyntaxError
	assert.True(t, As(err, &target))
	assert.Equal(t, "//axon::module -", target.Raw)
	assert.Equal(t, SyntaxErrorCode, multi.ErrorCode())
	assert.Contains(t, err.Error(), "unexpected token")
	assert.Contains(t, err.Error(), "//axon::module: cannot be applied to a function")
}
