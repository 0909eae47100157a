package journal

import (
	"context"

	"journal/internal/domain/models/journal"
)

// EntryService handles journal entry business logic
type EntryService interface {
	// GetEntry retrieves the entry for a date key (domain.ErrNotFound when absent)
	GetEntry(ctx context.Context, key journal.DateKey) (*journal.Entry, error)

	// SaveEntry validates, uploads the image if one is given, then upserts the entry.
	SaveEntry(ctx context.Context, req *SaveEntryRequest) (*journal.Entry, error)

	// DeleteEntry removes the entry. Deleting an absent entry succeeds.
	DeleteEntry(ctx context.Context, key journal.DateKey) error
}

// SaveEntryRequest is a full-replace write of one entry.
type SaveEntryRequest struct {
	DateKey journal.DateKey `json:"-"`
	Title   string          `json:"title"`
	Content string          `json:"content"`

	// Image, when set, is uploaded and its download URL replaces ImageURL.
	Image *ImageUpload `json:"-"`

	// ImageURL is persisted when Image is nil. It must be "" (no image) or an
	// absolute http(s) URL.
	ImageURL string `json:"imageUrl"`
}

// ImageUpload is an image ready to be sent to the blob store.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}
