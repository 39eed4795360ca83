// Package backend selects and opens the configured storage backend.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/platform/filesystem"
	"github.com/phrazzld/neet-pulse/internal/platform/memory"
	"github.com/phrazzld/neet-pulse/internal/platform/postgres"
	"github.com/phrazzld/neet-pulse/internal/platform/sqlite"
	"github.com/phrazzld/neet-pulse/internal/store"
	"github.com/spf13/afero"
)

// SQLiteFileName is the database file created when the sqlite backend is
// pointed at a directory.
const SQLiteFileName = "neet_pulse.db"

// Open returns the store.Backend named by cfg.Backend. The caller owns the
// result and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (store.Backend, error) {
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory storage; records are lost on exit")
		return memory.New(), nil
	case config.BackendFile, "":
		s, err := filesystem.New(afero.NewOsFs(), cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, SQLitePath(cfg.Path), log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// SQLitePath resolves the configured storage path to a database file. Paths
// ending in .db or .sqlite are used as is; anything else is a directory.
func SQLitePath(path string) string {
	if path == ":memory:" {
		return path
	}
	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return path
	default:
		return filepath.Join(path, SQLiteFileName)
	}
}
