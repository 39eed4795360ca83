// Package sqlite opens a single-file SQLite database as a store.Backend
// using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/neet-pulse/internal/platform/sqlkv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Queries are the SQLite statements for the kv_entries table.
var Queries = sqlkv.Queries{
	Get: `SELECT value FROM kv_entries WHERE key = ?`,
	Upsert: `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	Delete: `DELETE FROM kv_entries WHERE key = ?`,
}

// Open opens (creating if needed) the database at path, applies pending
// migrations and returns the store. A path of ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string, log *slog.Logger) (*sqlkv.Store, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "sqlite"))

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serialises writes and pins ":memory:" to one database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}

	if err := migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("sqlite store ready", slog.String("path", path))
	return sqlkv.New(db, sqlkv.Options{
		Queries: Queries,
		Close:   db.Close,
		Logger:  log,
	}), nil
}

func migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Debug("applied migration",
			slog.String("source", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	return nil
}
