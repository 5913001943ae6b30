package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/slidedeck/internal/store"
)

// Common service errors - sentinel errors callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in DeckServiceError
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvariantViolation indicates that an operation's input would leave the
	// document without slides, with duplicate ids, or with invalid content.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvariantViolation = errors.New("document invariant violation")

	// ErrInvalidSlideIndex indicates an out-of-range index under strict indexing.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidSlideIndex = errors.New("invalid slide index")

	// ErrInvalidPatch indicates a slide patch naming an unknown or immutable field.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidPatch = errors.New("invalid slide patch")

	// ErrIdentifierExhausted indicates that every identifier draw collided
	// with an existing one. State is left untouched.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrIdentifierExhausted = errors.New("could not allocate a unique identifier")

	// ErrDeckNotFound indicates that the deck is neither open nor persisted.
	// API layer should map this to HTTP 404 Not Found.
	ErrDeckNotFound = errors.New("deck not found")
)

// DeckServiceError wraps errors from the deck service with context.
type DeckServiceError struct {
	// Operation is the operation that failed (e.g., "create_slide", "update_slides_list")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
// Not-found conditions are returned as ErrDeckNotFound without wrapping.
func NewDeckServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrDeckNotFound) || errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}

	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// invariantError reports a rejected input, keeping the validation cause
// reachable through errors.Is and errors.As.
func invariantError(operation, message string, cause error) error {
	if cause == nil {
		return NewDeckServiceError(operation, message, ErrInvariantViolation)
	}
	return NewDeckServiceError(operation, message, fmt.Errorf("%w: %w", ErrInvariantViolation, cause))
}
