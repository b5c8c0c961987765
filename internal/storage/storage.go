package storage

import (
	"context"
	"io"
)

// BlobStore persists listing images. Keys are opaque paths relative to
// the store root; Save returns the key the caller should record.
type BlobStore interface {
	// Save writes the blob under a freshly generated key derived from
	// the original filename's extension.
	Save(ctx context.Context, originalName string, r io.Reader) (key string, err error)
	Delete(ctx context.Context, key string) error
	// URL resolves a stored key to a publicly servable URL.
	URL(key string) string
}
