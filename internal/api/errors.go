package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/slidedeck/internal/api/shared"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/phrazzld/slidedeck/internal/service"
	"github.com/phrazzld/slidedeck/internal/service/auth"
	"github.com/phrazzld/slidedeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrInvariantViolation),
		errors.Is(err, service.ErrInvalidSlideIndex),
		errors.Is(err, service.ErrInvalidPatch),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Every identifier draw collided; a retry may succeed
	case errors.Is(err, service.ErrIdentifierExhausted):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrInvalidSlideIndex):
		return "Slide index out of range"

	case errors.Is(err, service.ErrInvalidPatch):
		return "Invalid slide patch"

	case errors.Is(err, domain.ErrDuplicateID):
		return "Duplicate identifier"

	case errors.Is(err, domain.ErrEmptyDocument):
		return "A deck must contain at least one slide"

	case errors.Is(err, domain.ErrUnknownElementType):
		return "Unknown element type"

	case errors.Is(err, service.ErrInvariantViolation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid deck content"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, service.ErrIdentifierExhausted):
		return "Could not allocate an identifier, try again"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) && domainErr.Field != "" {
		return fmt.Sprintf("Invalid %s: %s", domainErr.Field, domainErr.Message)
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'DeleteSlidesRequest.IDs' Error:Field validation for 'IDs' failed on the 'min' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 5 {
				return fmt.Sprintf("Invalid %s: %s", fieldParts[1], getValidationTagMessage(fieldParts[3]))
			}
			if len(fieldParts) >= 3 {
				return fmt.Sprintf("Invalid %s", fieldParts[1])
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "too small"
	case "hexcolor", "iscolor":
		return "invalid color"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. When message is empty
// the safe message for err is used.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
