// Package memory provides an in-process key-value backend. Values are lost
// when the process exits; it backs tests and the "memory" storage setting.
package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/neet-pulse/internal/store"
)

// Store is a concurrency-safe map-backed store.Backend.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

var _ store.Backend = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get implements store.KeyValueStore.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", store.ReadError("key", "get", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", store.ReadError("key", "get", store.ErrClosed)
	}
	v, ok := s.values[key]
	if !ok {
		return "", store.NewStoreError("key", "get", key, store.ErrKeyNotFound)
	}
	return v, nil
}

// Set implements store.KeyValueStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return store.WriteError("key", "set", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.WriteError("key", "set", store.ErrClosed)
	}
	s.values[key] = value
	return nil
}

// Delete implements store.KeyValueStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return store.WriteError("key", "delete", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.WriteError("key", "delete", store.ErrClosed)
	}
	delete(s.values, key)
	return nil
}

// Close discards every value. Later calls fail with store.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.values = nil
	return nil
}
