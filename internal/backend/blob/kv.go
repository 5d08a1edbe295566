// Package blob implements a task medium that keeps the whole list as one
// JSON document under a single key of a key-value store.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// ErrKeyNotFound is returned by KV.Get for keys that were never set.
var ErrKeyNotFound = errors.New("key not found")

// KV is a minimal key-value store.
type KV interface {
	// Prepare creates whatever the store needs before the first Get or Set.
	Prepare(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value of key. Readers see either the old or the new value.
	Set(ctx context.Context, key string, value []byte) error
}

// FileKV stores each key as a file in a directory.
type FileKV struct {
	dir string
}

var _ KV = (*FileKV)(nil)

// NewFileKV creates a FileKV rooted at dir. Nothing is touched until Prepare.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Dir returns the directory holding the values.
func (kv *FileKV) Dir() string {
	return kv.dir
}

// Prepare creates the directory with mode 0700.
func (kv *FileKV) Prepare(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(kv.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Get reads the value of key.
func (kv *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(kv.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes value to a temporary file and renames it over the key's file.
// File I/O itself is not interruptible; ctx is checked before the write and
// again before the rename, so a context that ends mid-write leaves the key
// untouched.
func (kv *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(kv.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, kv.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// path escapes key so that any key maps to a single file inside dir.
func (kv *FileKV) path(key string) string {
	return filepath.Join(kv.dir, url.PathEscape(key)+".json")
}
