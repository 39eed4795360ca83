package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/neet-pulse/internal/platform/postgres"
	"github.com/phrazzld/neet-pulse/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "kv_entries",
		ColumnName:     "key",
		ConstraintName: "kv_entries_key_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("some error")
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrKeyNotFound},
		{name: "string too long", err: newPgError("22001"), expected: store.ErrInvalidKey},
		{name: "check violation", err: newPgError("23514"), expected: store.ErrInvalidKey},
		{name: "not null violation", err: newPgError("23502"), expected: store.ErrInvalidKey},
		{name: "wrapped check violation", err: fmt.Errorf("exec: %w", newPgError("23514")), expected: store.ErrInvalidKey},
		{name: "undefined table", err: newPgError("42P01"), expected: postgres.ErrSchemaMissing},
		{name: "connection failure", err: newPgError("08006"), expected: store.ErrClosed},
		{name: "other error", err: plain, expected: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tt.err), tt.expected)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, postgres.MapError(nil))
}

func TestMapErrorPreservesOriginal(t *testing.T) {
	t.Parallel()
	original := newPgError("23514")
	mapped := postgres.MapError(original)
	assert.Contains(t, mapped.Error(), "kv_entries_key_check")
	assert.Contains(t, mapped.Error(), "error message")
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()
	assert.True(t, postgres.IsCheckConstraintViolation(newPgError("23514")))
	assert.False(t, postgres.IsCheckConstraintViolation(newPgError("23502")))
	assert.False(t, postgres.IsCheckConstraintViolation(errors.New("x")))

	assert.True(t, postgres.IsConnectionError(newPgError("08001")))
	assert.True(t, postgres.IsConnectionError(fmt.Errorf("ping: %w", newPgError("08006"))))
	assert.False(t, postgres.IsConnectionError(newPgError("23514")))
	assert.False(t, postgres.IsConnectionError(nil))
}
