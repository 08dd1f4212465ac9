// Package blob wraps the object store behind a small gateway interface:
// put, idempotent delete, and time-limited signed retrieval links.
package blob

import (
	"context"
	"time"
)

// Store is the Blob Store gateway used by the document lifecycle service.
type Store interface {
	// Put uploads content under key with the given content type.
	Put(ctx context.Context, key string, content []byte, contentType string) error

	// Delete removes the blob. Deleting a nonexistent key is not an error.
	Delete(ctx context.Context, key string) error

	// SignedGetURL returns a time-limited retrieval URL for the blob. The
	// URL's authority comes from store-side signing; it is not derivable
	// from the key alone.
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
