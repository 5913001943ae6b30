// Package domain defines the core document entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when serialized data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an identifier is empty or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnknownElementType is returned when an element carries a type tag
	// outside the known enumeration.
	ErrUnknownElementType = errors.New("unknown element type")

	// ErrInvalidElement is returned when an element's shape does not match its
	// variant, e.g. a line carrying height or a text element missing rotate.
	ErrInvalidElement = errors.New("invalid element")

	// ErrDuplicateID is returned when two slides of a document, or two
	// elements of a slide, share an identifier.
	ErrDuplicateID = errors.New("duplicate ID")

	// ErrEmptyDocument is returned when a document holds no slides.
	ErrEmptyDocument = errors.New("document must contain at least one slide")

	// ErrSlideIndexOutOfRange is returned when the active slide index does not
	// address an existing slide.
	ErrSlideIndexOutOfRange = errors.New("slide index out of range")
)

// ValidationError describes a failed check on a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes both the specific cause and ErrValidation, so every
// ValidationError matches errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
