package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped with the specific field failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDate is returned when a record date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnsupportedSchema is returned when a record carries a schema version
	// this build does not understand.
	ErrUnsupportedSchema = errors.New("unsupported record schema version")
)
