package journal

import (
	"context"
	"io"

	"journal/internal/domain/models/journal"
)

// EntryRepository defines data access operations for journal entries.
// Implementations address the "journals" collection by date key.
type EntryRepository interface {
	// Get retrieves the entry for a date key.
	// Returns an error matching domain.ErrNotFound when no entry exists.
	Get(ctx context.Context, key journal.DateKey) (*journal.Entry, error)

	// Upsert creates the entry or fully replaces every field of an existing one.
	Upsert(ctx context.Context, entry *journal.Entry) error

	// Delete removes the entry for a date key.
	// Returns an error matching domain.ErrNotFound when no entry exists.
	Delete(ctx context.Context, key journal.DateKey) error
}

// UploadReceipt describes a stored blob.
type UploadReceipt struct {
	Path string
	Size int64
	ETag string
}

// BlobStore stores entry images.
type BlobStore interface {
	// Upload writes size bytes from r to path, replacing any existing blob.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (*UploadReceipt, error)

	// DownloadURL resolves path to a URL a client can fetch.
	DownloadURL(ctx context.Context, path string) (string, error)
}
