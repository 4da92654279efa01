package secondary

import (
	"context"
	"io"
)

// BlobStore defines the secondary port for document blob storage.
// Keys are opaque to callers; the document repository owns the
// key-to-row mapping.
type BlobStore interface {
	// Save streams a blob under the given key and returns its size.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader over the blob. Callers close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
