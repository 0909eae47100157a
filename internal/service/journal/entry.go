package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
	journalSvc "journal/internal/domain/services/journal"
)

// entryService implements the EntryService interface
type entryService struct {
	entries journalRepo.EntryRepository
	blobs   journalRepo.BlobStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewEntryService creates a new entry service
func NewEntryService(
	entries journalRepo.EntryRepository,
	blobs journalRepo.BlobStore,
	logger *slog.Logger,
) journalSvc.EntryService {
	return &entryService{
		entries: entries,
		blobs:   blobs,
		logger:  logger,
		now:     time.Now,
	}
}

// GetEntry retrieves the entry for a date key
func (s *entryService) GetEntry(ctx context.Context, key models.DateKey) (*models.Entry, error) {
	key, err := validateDateKey(key)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Remote("read entry", err)
	}

	if entry.Date == "" {
		entry.Date = key.DisplayDate()
	}
	return entry, nil
}

// SaveEntry uploads the image (if any) and then fully replaces the entry.
// The document is never written before the upload has resolved to a URL.
func (s *entryService) SaveEntry(ctx context.Context, req *journalSvc.SaveEntryRequest) (*models.Entry, error) {
	key, err := validateDateKey(req.DateKey)
	if err != nil {
		return nil, err
	}
	if err := ValidateEntryFields(req.Title, req.Content); err != nil {
		return nil, err
	}

	imageURL := req.ImageURL
	if req.Image == nil {
		if err := ValidateImageURL(imageURL); err != nil {
			return nil, err
		}
	} else {
		path, err := models.ImagePath(req.Image.FileName)
		if err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}

		imageURL, err = s.uploadImage(ctx, path, req.Image)
		if err != nil {
			return nil, err
		}
	}

	entry := &models.Entry{
		DateKey:  key,
		Title:    req.Title,
		Content:  req.Content,
		Date:     key.DisplayDate(),
		ImageURL: imageURL,
		Updated:  s.now().UTC(),
	}

	if err := s.entries.Upsert(ctx, entry); err != nil {
		return nil, domain.Remote("write entry", err)
	}

	s.logger.Info("entry saved",
		"date_key", key,
		"has_image", entry.ImageURL != "",
	)

	return entry, nil
}

func (s *entryService) uploadImage(ctx context.Context, path string, img *journalSvc.ImageUpload) (string, error) {
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	receipt, err := s.blobs.Upload(ctx, path, bytes.NewReader(img.Data), int64(len(img.Data)), contentType)
	if err != nil {
		return "", domain.Remote("upload image", err)
	}

	url, err := s.blobs.DownloadURL(ctx, receipt.Path)
	if err != nil {
		return "", domain.Remote("resolve image url", err)
	}

	s.logger.Debug("image uploaded", "path", receipt.Path, "size", receipt.Size)
	return url, nil
}

// DeleteEntry removes the entry. An absent entry is already deleted.
func (s *entryService) DeleteEntry(ctx context.Context, key models.DateKey) error {
	key, err := validateDateKey(key)
	if err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("delete of absent entry", "date_key", key)
			return nil
		}
		return domain.Remote("delete entry", fmt.Errorf("%s: %w", key, err))
	}

	s.logger.Info("entry deleted", "date_key", key)
	return nil
}
