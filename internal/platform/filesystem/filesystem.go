// Package filesystem stores each key as a file in one directory. Writes go
// through a temporary file and a rename so a crash never leaves a partly
// written value behind.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/phrazzld/neet-pulse/internal/store"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o600
)

// Store is a store.Backend writing one file per key under Dir.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

var _ store.Backend = (*Store)(nil)

// New prepares dir on fsys and returns a Store rooted there. Production code
// passes afero.NewOsFs(); tests pass afero.NewMemMapFs().
func New(fsys afero.Fs, dir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, store.ReadError("directory", "stat", err)
	}
	if !exists {
		if err := fsys.MkdirAll(dir, dirPerm); err != nil {
			return nil, store.WriteError("directory", "create", err)
		}
	}
	return &Store{
		fs:     fsys,
		dir:    dir,
		logger: log.With(slog.String("component", "filesystem_store")),
	}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get implements store.KeyValueStore.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", store.ReadError("key", "get", store.ErrClosed)
	}

	data, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", store.NewStoreError("key", "get", key, store.ErrKeyNotFound)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", store.ReadError("key", "get", err)
	}
	return string(data), nil
}

// Set implements store.KeyValueStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.WriteError("key", "set", store.ErrClosed)
	}

	if err := s.writeAtomic(key, []byte(value)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to write value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.WriteError("key", "set", err)
	}
	return nil
}

func (s *Store) writeAtomic(key string, data []byte) (err error) {
	tmp, err := afero.TempFile(s.fs, s.dir, "."+key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = s.fs.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	return s.fs.Rename(tmpName, s.path(key))
}

// Delete implements store.KeyValueStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.WriteError("key", "delete", store.ErrClosed)
	}

	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.WriteError("key", "delete", err)
	}
	return nil
}

// Close marks the store closed. Files stay on disk.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
