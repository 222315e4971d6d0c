// Package errors provides standardized error types and helpers for the chord sheet packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrParse indicates chord, key or directive text that could not be recognized
	ErrParse = errors.New("parse failure")
	// ErrInvalidConversion indicates a notation conversion that needs a reference key
	ErrInvalidConversion = errors.New("invalid conversion")
	// ErrNoKeySet indicates a key change on a song without a known key
	ErrNoKeySet = errors.New("no key set")
	// ErrUnknownNodeType indicates an unrecognized serialized node discriminator
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// ParseError represents text that could not be parsed as the requested kind.
type ParseError struct {
	Kind  string // What was being parsed (e.g., "chord", "key", "tag")
	Input string // The offending input
	Err   error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("failed to parse %s %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(ErrParse, e.Err)
	}
	return ErrParse
}

// ConversionError represents a notation conversion invoked without the
// reference key it requires.
type ConversionError struct {
	From string // Source notation type
	To   string // Target notation type
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s without a reference key", e.From, e.To)
}

func (e *ConversionError) Unwrap() error {
	return ErrInvalidConversion
}

// NoKeySetError is returned when a key change is requested but the song
// carries no key directive or key metadata.
type NoKeySetError struct {
	Operation string
}

func (e *NoKeySetError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("cannot %s, the original key is unknown", e.Operation)
	}
	return "the original key is unknown"
}

func (e *NoKeySetError) Unwrap() error {
	return ErrNoKeySet
}

// UnknownNodeTypeError represents a serialized node with an unrecognized type.
type UnknownNodeTypeError struct {
	Type string
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type: %q", e.Type)
}

func (e *UnknownNodeTypeError) Unwrap() error {
	return ErrUnknownNodeType
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewParse creates a ParseError
func NewParse(kind, input string) *ParseError {
	return &ParseError{Kind: kind, Input: input}
}

// NewConversion creates a ConversionError
func NewConversion(from, to string) *ConversionError {
	return &ConversionError{From: from, To: to}
}

// NewNoKeySet creates a NoKeySetError
func NewNoKeySet(operation string) *NoKeySetError {
	return &NoKeySetError{Operation: operation}
}

// NewUnknownNodeType creates an UnknownNodeTypeError
func NewUnknownNodeType(nodeType string) *UnknownNodeTypeError {
	return &UnknownNodeTypeError{Type: nodeType}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
