// Package sqlkv implements store.Backend on top of database/sql. The sqlite
// and postgres packages supply a connection, the dialect's statements, and an
// error mapper; both share the kv_entries table created by their migrations.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the store.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the dialect-specific statements. Each takes the key as its
// first argument; Upsert takes the value as its second.
type Queries struct {
	Get    string
	Upsert string
	Delete string
}

// Store is a store.Backend over a kv_entries table.
type Store struct {
	db      DBTX
	closer  func() error
	queries Queries
	mapErr  func(error) error
	logger  *slog.Logger
	closed  atomic.Bool
}

var _ store.Backend = (*Store)(nil)

// Options configures New.
type Options struct {
	// Queries are required.
	Queries Queries
	// MapError translates driver errors. Nil leaves them untouched.
	MapError func(error) error
	// Close releases the connection. Nil makes Close a no-op.
	Close  func() error
	Logger *slog.Logger
}

// New returns a Store issuing queries through db.
func New(db DBTX, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	mapErr := opts.MapError
	if mapErr == nil {
		mapErr = func(err error) error { return err }
	}
	closer := opts.Close
	if closer == nil {
		closer = func() error { return nil }
	}
	return &Store{
		db:      db,
		closer:  closer,
		queries: opts.Queries,
		mapErr:  mapErr,
		logger:  log.With(slog.String("component", "sql_store")),
	}
}

// Get implements store.KeyValueStore.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.closed.Load() {
		return "", store.ReadError("kv_entries", "get", store.ErrClosed)
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.queries.Get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.NewStoreError("kv_entries", "get", key, store.ErrKeyNotFound)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", store.ReadError("kv_entries", "get", s.mapErr(err))
	}
	return value, nil
}

// Set implements store.KeyValueStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if s.closed.Load() {
		return store.WriteError("kv_entries", "set", store.ErrClosed)
	}

	if _, err := s.db.ExecContext(ctx, s.queries.Upsert, key, value); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to write value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.WriteError("kv_entries", "set", s.mapErr(err))
	}
	return nil
}

// Delete implements store.KeyValueStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return store.WriteError("kv_entries", "delete", store.ErrClosed)
	}

	if _, err := s.db.ExecContext(ctx, s.queries.Delete, key); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.WriteError("kv_entries", "delete", s.mapErr(err))
	}
	return nil
}

// Close releases the underlying connection once.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.closer()
}
