package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// FileStore keeps one file per key inside a directory
type FileStore struct {
	dir string
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	// 0750 keeps the session token away from other users
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDataDir returns the default data directory
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "gomate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gomate-data")
	}

	return filepath.Join(home, ".local", "share", "gomate")
}

// Dir returns the directory the store writes to
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) keyToFilename(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the value stored under key
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	filename, err := s.keyToFilename(key)
	if err != nil {
		return nil, false, err
	}

	// #nosec G304 -- filename is built from a validated key inside the data dir
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the value stored under key. The write goes to a temp file
// first so a crash never leaves a half-written value behind.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := s.keyToFilename(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys; missing keys are ignored
func (s *FileStore) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		filename, err := s.keyToFilename(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
