// Package storage persists small JSON blobs under fixed string keys.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Keys used by the application
const (
	KeyFavorites = "favorites"
	KeyDarkMode  = "darkMode"
	KeyUserToken = "userToken"
	KeyUserData  = "userData"
)

// Store is a durable string-keyed blob store. A missing key is reported as
// (nil, false, nil), never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	Dir     string // data directory for file and sqlite backends
	Logger  *slog.Logger
}

// Open creates the store named by opts.Backend
func Open(opts Options) (Store, error) {
	dir := opts.Dir
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDataDir()
	}

	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(SQLitePath(dir), opts.Logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// GetJSON reads key and decodes it into a T
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// Close releases the store if it holds resources
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
