// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// BlobStore implements secondary.BlobStore on a local directory tree.
// Storage keys map to relative paths under the base directory.
type BlobStore struct {
	basePath string
}

// NewBlobStore creates a new filesystem blob store.
// If basePath is empty, defaults to ~/.tpflow/blobs.
func NewBlobStore(basePath string) (*BlobStore, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		basePath = filepath.Join(home, ".tpflow", "blobs")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	return &BlobStore{basePath: basePath}, nil
}

// BasePath returns the root directory blobs are stored under.
func (s *BlobStore) BasePath() string {
	return s.basePath
}

// resolve maps a storage key to an absolute path. Keys must stay inside
// the base directory.
func (s *BlobStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage key is empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage key %q escapes the blob directory", key)
	}

	return filepath.Join(s.basePath, cleaned), nil
}

// Save writes the blob contents for a key and returns the byte count.
// Parent directories are created as needed.
func (s *BlobStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob file: %w", err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close blob file: %w", err)
	}

	return written, nil
}

// Open returns a reader over the blob contents for a key.
// The caller closes the reader.
func (s *BlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, app.NotFoundf("blob %s not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return f, nil
}

// Delete removes the blob for a key. Deleting a missing key is not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	return nil
}

// Ensure BlobStore implements the interface
var _ secondary.BlobStore = (*BlobStore)(nil)
