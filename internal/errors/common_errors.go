package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDiscovery      ErrorType = "DISCOVERY"
	ErrTypeSchema         ErrorType = "SCHEMA"
	ErrTypeHeaderNotFound ErrorType = "HEADER_NOT_FOUND"
	ErrTypeWrite          ErrorType = "WRITE"
	ErrTypeParsing        ErrorType = "PARSING"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeOutput         ErrorType = "OUTPUT"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError of the same type, so callers can compare against
// the sentinel values below with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.Cause == nil
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Fatal reports whether the error must abort the run. Only write failures
// are recoverable.
func (e *AppError) Fatal() bool {
	return e.Type != ErrTypeWrite
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is comparisons
var (
	ErrDiscovery      = &AppError{Type: ErrTypeDiscovery}
	ErrSchema         = &AppError{Type: ErrTypeSchema}
	ErrHeaderNotFound = &AppError{Type: ErrTypeHeaderNotFound}
	ErrWrite          = &AppError{Type: ErrTypeWrite}
	ErrParsing        = &AppError{Type: ErrTypeParsing}
	ErrConfig         = &AppError{Type: ErrTypeConfig}
	ErrOutput         = &AppError{Type: ErrTypeOutput}
)

// Helper functions for common error types

// NewDiscoveryError creates an error for a file pattern with no usable match
func NewDiscoveryError(pattern, dir string) *AppError {
	return NewAppError(ErrTypeDiscovery, fmt.Sprintf("no file matches %q", pattern), nil).
		WithContext("pattern", pattern).
		WithContext("dir", dir)
}

// NewSchemaError creates an error for a required column missing from a table
func NewSchemaError(column, source string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("required column %q missing", column), nil).
		WithContext("column", column).
		WithContext("source", source)
}

// NewHeaderNotFoundError creates an error for a sign-in export without the marker row
func NewHeaderNotFoundError(marker, source string) *AppError {
	return NewAppError(ErrTypeHeaderNotFound, fmt.Sprintf("marker %q not found", marker), nil).
		WithContext("marker", marker).
		WithContext("source", source)
}

// NewWriteError creates an error for a failed styled spreadsheet write
func NewWriteError(message string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewOutputError creates an error for an output location or fallback csv
// that cannot be written
func NewOutputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeOutput, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in the chain, or "" if
// there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsFatal reports whether err must abort the run. Errors that are not
// AppErrors are always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fatal()
	}
	return true
}
