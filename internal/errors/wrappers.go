package errors

import (
	stderrors "errors"
	"fmt"
)

// Is forwards to the standard library so callers only need this package
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library so callers only need this package
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapOutputError wraps graph encoding and writing errors
func WrapOutputError(format, target string, cause error) *BaseError {
	message := fmt.Sprintf("failed to write %s graph to %s", format, target)
	return Wrap(OutputErrorCode, message, cause).
		WithContext("format", format).
		WithContext("target", target)
}

// WrapDeclarationError wraps errors raised while loading declarations
func WrapDeclarationError(pkg string, cause error) *BaseError {
	message := fmt.Sprintf("failed to load declarations from '%s'", pkg)
	return Wrap(DeclarationErrorCode, message, cause).
		WithContext("package", pkg)
}
