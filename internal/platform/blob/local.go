package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes payloads under a base directory. Used in development and
// in tests.
type LocalStore struct {
	dir string
}

// NewLocalStore constructs a LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Put writes the payload to disk and returns its path relative to the root.
func (s *LocalStore) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("platform/blob: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("platform/blob: create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("platform/blob: write: %w", err)
	}
	return key, nil
}

var _ Store = (*LocalStore)(nil)
