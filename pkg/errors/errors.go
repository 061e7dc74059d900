// Package errors provides custom error types for the ssegen system.
// These errors enable programmatic error checking and carry enough
// context (file, operation, derived name) to diagnose a failed
// generation run without inspecting the source document manually.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the ssegen system
var (
	// ErrMalformedDocument indicates the source document is not a usable OpenAPI document
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingEventType indicates an event-source marker without an event type
	ErrMissingEventType = errors.New("missing event type")

	// ErrDuplicateName indicates two endpoints derived the same function name
	ErrDuplicateName = errors.New("duplicate function name")

	// ErrMarkerExists indicates an attempt to declare a second marker on one operation
	ErrMarkerExists = errors.New("marker already declared")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ParseError represents an error when parsing a serialized OpenAPI document
type ParseError struct {
	Format  string // "json", "yaml", "openapi"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// MissingEventTypeError reports an operation whose extensions declare
// x-event-source without a usable x-event-type. This is a data-integrity
// failure of the annotation step, not a skippable condition.
type MissingEventTypeError struct {
	Method string
	Path   string
}

// Error implements the error interface
func (e *MissingEventTypeError) Error() string {
	return fmt.Sprintf("operation %s %s declares an event source without an event type", e.Method, e.Path)
}

// Is implements errors.Is support
func (e *MissingEventTypeError) Is(target error) bool {
	return target == ErrMissingEventType
}

// NewMissingEventTypeError creates a new MissingEventTypeError
func NewMissingEventTypeError(method, path string) *MissingEventTypeError {
	return &MissingEventTypeError{Method: method, Path: path}
}

// DuplicateFunctionNameError reports two selected endpoints whose derived
// function identifiers collide.
type DuplicateFunctionNameError struct {
	Name   string
	Routes []string
}

// Error implements the error interface
func (e *DuplicateFunctionNameError) Error() string {
	if len(e.Routes) > 0 {
		return fmt.Sprintf("function name %s derived from multiple endpoints: %s", e.Name, strings.Join(e.Routes, ", "))
	}
	return fmt.Sprintf("function name %s derived from multiple endpoints", e.Name)
}

// Is implements errors.Is support
func (e *DuplicateFunctionNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// NewDuplicateFunctionNameError creates a new DuplicateFunctionNameError
func NewDuplicateFunctionNameError(name string, routes ...string) *DuplicateFunctionNameError {
	return &DuplicateFunctionNameError{Name: name, Routes: routes}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Helper functions for error checking

// IsParseError checks if an error indicates a malformed document
func IsParseError(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// IsMissingEventType checks if an error is a missing event type error
func IsMissingEventType(err error) bool {
	return errors.Is(err, ErrMissingEventType)
}

// IsDuplicateName checks if an error is a duplicate function name error
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
