package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/phrazzld/neet-pulse/internal/service"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so error
// types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateRecord):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, store.ErrInvalidKey):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrKeyNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrClosed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that reveals no
// internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrDuplicateRecord):
		return "A record with this id already exists"
	case errors.Is(err, domain.ErrInvalidDate):
		return "Invalid date: expected YYYY-MM-DD"
	case errors.Is(err, service.ErrInvalidTarget):
		return fmt.Sprintf("Target score must be between 0 and %d", domain.MaxScoreTotal)
	case errors.Is(err, domain.ErrValidation):
		return "Invalid record data"
	case errors.Is(err, store.ErrKeyNotFound):
		return "Not found"
	case errors.Is(err, store.ErrClosed):
		return "Storage unavailable"
	case errors.Is(err, store.ErrWriteFailed):
		return "Failed to save changes"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", lowerFirst(field.Field()), getValidationTagMessage(field.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gte", "min":
		return "too small"
	case "lte", "max":
		return "too large"
	case "datetime":
		return "invalid date format"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
