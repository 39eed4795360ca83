package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// Common service errors. Callers check for them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrDuplicateRecord is returned when appending a record whose ID is
	// already stored. API layer should map this to HTTP 409 Conflict.
	ErrDuplicateRecord = errors.New("record with this id already exists")

	// ErrInvalidTarget is returned when a target score is outside
	// [0, domain.MaxScoreTotal]. API layer should map this to HTTP 400.
	ErrInvalidTarget = errors.New("target score out of range")
)

// RecordServiceError wraps errors from the record service with context.
type RecordServiceError struct {
	// Operation is the operation that failed (e.g., "append", "remove")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for RecordServiceError.
func (e *RecordServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("record service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RecordServiceError) Unwrap() error {
	return e.Err
}

// NewRecordServiceError creates a RecordServiceError. Sentinels that callers
// branch on directly are returned unwrapped.
func NewRecordServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDuplicateRecord):
		return ErrDuplicateRecord
	case errors.Is(err, ErrInvalidTarget):
		return err
	case errors.Is(err, domain.ErrValidation):
		return err
	}

	return &RecordServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsWriteFailure reports whether err means a change did not reach storage.
func IsWriteFailure(err error) bool {
	return errors.Is(err, store.ErrWriteFailed)
}
