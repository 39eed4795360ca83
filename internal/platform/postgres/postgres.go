package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/neet-pulse/internal/platform/sqlkv"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Queries are the PostgreSQL statements for the kv_entries table.
var Queries = sqlkv.Queries{
	Get: `SELECT value FROM kv_entries WHERE key = $1`,
	Upsert: `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	Delete: `DELETE FROM kv_entries WHERE key = $1`,
}

const pingTimeout = 5 * time.Second

// Open connects to databaseURL, verifies the connection, applies pending
// migrations and returns the store.
func Open(ctx context.Context, databaseURL string, log *slog.Logger) (*sqlkv.Store, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "postgres"))

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", MapError(err))
	}

	if err := migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("Database connection established")
	return sqlkv.New(db, sqlkv.Options{
		Queries:  Queries,
		MapError: MapError,
		Close:    db.Close,
		Logger:   log,
	}), nil
}

func migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", MapError(err))
	}
	for _, r := range results {
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	return nil
}
