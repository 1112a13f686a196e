package ports

import (
	"context"
	"io"
)

// BlobStore keeps uploaded files addressed by name and hands back the public
// URL each one is served from.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	// Delete removes the blob published at url. URLs the store does not own are ignored.
	Delete(ctx context.Context, url string) error
}
