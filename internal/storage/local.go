package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// localStore writes blobs to a directory on the server's filesystem and
// serves them through the HTTP static file route.
type localStore struct {
	rootDir string
	baseURL string
	maxSize int64
}

func NewLocalStore(rootDir, baseURL string, maxSize int64) (BlobStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", rootDir, err)
	}
	return &localStore{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

func (s *localStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	key := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.rootDir, key))
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if n > s.maxSize {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("image exceeds %d bytes", s.maxSize)
	}
	return key, nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Keys are uuid-generated; reject anything path-like.
	if key != path.Base(key) {
		return fmt.Errorf("invalid blob key %q", key)
	}
	if err := os.Remove(filepath.Join(s.rootDir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob %s: %w", key, err)
	}
	return nil
}

func (s *localStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/uploads/cars/" + key
}
