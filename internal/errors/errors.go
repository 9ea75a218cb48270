// Package errors defines the structured error types used across stencil.
//
// Errors carry a category, a stable code, and an optional cause so callers
// can distinguish programmer mistakes (empty pipeline, bad engine
// registration) from I/O failures and from errors propagated out of a
// template engine.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeNotFound ErrorType = "not_found"
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeRender   ErrorType = "render"
	ErrorTypePipeline ErrorType = "pipeline"
	ErrorTypeWatch    ErrorType = "watch"
	ErrorTypeCommand  ErrorType = "command"
	ErrorTypeInternal ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeEngineInvalid   = "ERR_ENGINE_INVALID"
	ErrCodeEngineNotFound  = "ERR_ENGINE_NOT_FOUND"
	ErrCodePipelineEmpty   = "ERR_PIPELINE_EMPTY"
	ErrCodeManifestInvalid = "ERR_MANIFEST_INVALID"
	ErrCodeRenderFailed    = "ERR_RENDER_FAILED"
	ErrCodeWriteFailed     = "ERR_WRITE_FAILED"
	ErrCodeReadFailed      = "ERR_READ_FAILED"
	ErrCodeRebuildFailed   = "ERR_REBUILD_FAILED"
	ErrCodeUnsafeCommand   = "ERR_UNSAFE_COMMAND"
	ErrCodeCommandFailed   = "ERR_COMMAND_FAILED"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// StencilError is a structured error type with category and code context.
type StencilError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Path    string
}

// Error implements the error interface.
func (e *StencilError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *StencilError) Unwrap() error {
	return e.Cause
}

// Is matches errors by type and code.
func (e *StencilError) Is(target error) bool {
	var t *StencilError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithPath attaches a file path to the error.
func (e *StencilError) WithPath(path string) *StencilError {
	e.Path = path
	return e
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *StencilError {
	return &StencilError{Type: ErrorTypeConfig, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(code, message string) *StencilError {
	return &StencilError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

// NewIOError creates an I/O error wrapping the file system cause.
func NewIOError(code, message string, cause error) *StencilError {
	return &StencilError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// NewRenderError wraps an error propagated out of a template engine.
func NewRenderError(message string, cause error) *StencilError {
	return &StencilError{Type: ErrorTypeRender, Code: ErrCodeRenderFailed, Message: message, Cause: cause}
}

// NewPipelineError creates a pipeline-state error.
func NewPipelineError(code, message string) *StencilError {
	return &StencilError{Type: ErrorTypePipeline, Code: code, Message: message}
}

// NewCommandError creates a command-execution error.
func NewCommandError(code, message string, cause error) *StencilError {
	return &StencilError{Type: ErrorTypeCommand, Code: code, Message: message, Cause: cause}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *StencilError {
	return &StencilError{Type: ErrorTypeInternal, Code: ErrCodeInternalError, Message: message, Cause: cause}
}

// IsType reports whether err belongs to the given category.
func IsType(err error, t ErrorType) bool {
	var se *StencilError
	if errors.As(err, &se) {
		return se.Type == t
	}
	return false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	var se *StencilError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
