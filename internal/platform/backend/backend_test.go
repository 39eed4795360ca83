package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/platform/backend"
	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend string
	}{
		{name: "memory", backend: config.BackendMemory},
		{name: "file", backend: config.BackendFile},
		{name: "sqlite", backend: config.BackendSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			cfg := config.StorageConfig{Backend: tt.backend, Path: t.TempDir()}

			kv, err := backend.Open(ctx, cfg, logger.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Close() })

			require.NoError(t, kv.Set(ctx, "neet_target_score", "650"))
			v, err := kv.Get(ctx, "neet_target_score")
			require.NoError(t, err)
			assert.Equal(t, "650", v)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := backend.Open(context.Background(), config.StorageConfig{Backend: "redis", Path: "x"}, logger.Discard())
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestSQLitePath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("data", backend.SQLiteFileName), backend.SQLitePath("data"))
	assert.Equal(t, "pulse.db", backend.SQLitePath("pulse.db"))
	assert.Equal(t, "/tmp/x.sqlite", backend.SQLitePath("/tmp/x.sqlite"))
	assert.Equal(t, ":memory:", backend.SQLitePath(":memory:"))
}
