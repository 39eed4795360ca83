package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all backends.
var (
	// ErrKeyNotFound is returned when no value is stored under a key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKey is returned when a key contains characters a backend
	// cannot store.
	ErrInvalidKey = errors.New("invalid key")

	// ErrReadFailed is returned when a backend cannot read a value for a
	// reason other than it being absent.
	ErrReadFailed = errors.New("read failed")

	// ErrWriteFailed is returned when a set or delete does not reach the
	// backing storage. Callers are expected to surface it.
	ErrWriteFailed = errors.New("write failed")

	// ErrClosed is returned when a backend is used after Close.
	ErrClosed = errors.New("store closed")
)

// IsNotFoundError checks if the error is a missing-key error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // What was being accessed (e.g., "key", "kv_entries")
	Operation string // The operation that failed (e.g., "get", "set")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// WriteError wraps a backend failure so that it matches ErrWriteFailed while
// keeping the cause reachable through errors.Is/errors.As.
func WriteError(entity, operation string, cause error) error {
	return NewStoreError(entity, operation, ErrWriteFailed.Error(), errors.Join(ErrWriteFailed, cause))
}

// ReadError wraps a backend failure so that it matches ErrReadFailed.
func ReadError(entity, operation string, cause error) error {
	return NewStoreError(entity, operation, ErrReadFailed.Error(), errors.Join(ErrReadFailed, cause))
}
