package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// PostgreSQL error codes
const (
	// stringTooLongCode is raised when a value exceeds a column's length limit
	stringTooLongCode = "22001"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// undefinedTableCode is raised when kv_entries has not been migrated
	undefinedTableCode = "42P01"

	// connectionExceptionClass prefixes every connection failure code
	connectionExceptionClass = "08"
)

// ErrSchemaMissing is returned when the kv_entries table does not exist.
var ErrSchemaMissing = errors.New("kv_entries table missing: migrations not applied")

// MapError maps a database error to the matching store sentinel while
// wrapping the original error for debugging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrKeyNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == stringTooLongCode:
			return fmt.Errorf("%w: value too long: %v", store.ErrInvalidKey, err)
		case pgErr.Code == checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidKey,
				pgErr.ConstraintName,
				err,
			)
		case pgErr.Code == notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidKey,
				pgErr.ColumnName,
				err,
			)
		case pgErr.Code == undefinedTableCode:
			return fmt.Errorf("%w: %v", ErrSchemaMissing, err)
		case IsConnectionError(err):
			return fmt.Errorf("%w: connection lost: %v", store.ErrClosed, err)
		}
	}

	return err
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// IsConnectionError reports whether err is a PostgreSQL connection exception
// (SQLSTATE class 08).
func IsConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == connectionExceptionClass
}
