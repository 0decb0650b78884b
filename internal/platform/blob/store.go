// Package blob stores submitted binary payloads under generated keys.
package blob

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
)

// Store persists binary payloads. Put returns a stable reference that is
// stored alongside the owning record.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}

// NewKey generates a storage key for an uploaded file, preserving the
// original extension so downstream consumers can infer the media type.
func NewKey(filename string) string {
	return path.Join("uploads", uuid.NewString()+path.Ext(filename))
}
