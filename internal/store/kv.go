package store

import (
	"context"
	"io"
	"regexp"
)

// KeyValueStore is the storage dependency of the record service. Values are
// opaque strings (JSON text or decimals); keys are short fixed names.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend is a KeyValueStore that owns resources which must be released.
type Backend interface {
	KeyValueStore
	io.Closer
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateKey reports whether key is usable by every backend. Keys double as
// file names in the filesystem backend, so path separators are rejected.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return NewStoreError("key", "validate", "key must match "+keyPattern.String(), ErrInvalidKey)
	}
	return nil
}
