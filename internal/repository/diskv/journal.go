// Package diskv stores journal entries as JSON documents on disk.
package diskv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
)

const documentExt = ".json"

// document is the on-disk JSON shape of an entry
type document struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	ImageURL  string    `json:"imageUrl"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryRepository keeps one JSON file per entry under <base>/journals/<date>.json
type EntryRepository struct {
	d      *diskv.Diskv
	logger *slog.Logger
}

// NewEntryRepository creates a disk-backed EntryRepository rooted at basePath
func NewEntryRepository(basePath string, logger *slog.Logger) journalRepo.EntryRepository {
	return &EntryRepository{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		logger: logger,
	}
}

func (r *EntryRepository) Get(ctx context.Context, key journal.DateKey) (*journal.Entry, error) {
	k := toKey(key)
	if !r.d.Has(k) {
		return nil, fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}

	val, err := r.d.Read(k)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", key, err)
	}

	var doc document
	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", key, err)
	}

	return &journal.Entry{
		DateKey:  key,
		Title:    doc.Title,
		Content:  doc.Content,
		Date:     doc.Date,
		ImageURL: doc.ImageURL,
		Updated:  doc.UpdatedAt,
	}, nil
}

func (r *EntryRepository) Upsert(ctx context.Context, entry *journal.Entry) error {
	if entry.Updated.IsZero() {
		entry.Updated = time.Now().UTC()
	}

	val, err := json.Marshal(document{
		Title:     entry.Title,
		Content:   entry.Content,
		Date:      entry.Date,
		ImageURL:  entry.ImageURL,
		UpdatedAt: entry.Updated,
	})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	if err := r.d.Write(toKey(entry.DateKey), val); err != nil {
		return fmt.Errorf("write entry %s: %w", entry.DateKey, err)
	}

	r.logger.Debug("entry written", "date_key", entry.DateKey)
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, key journal.DateKey) error {
	k := toKey(key)
	if !r.d.Has(k) {
		return fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}
	if err := r.d.Erase(k); err != nil {
		return fmt.Errorf("erase entry %s: %w", key, err)
	}
	return nil
}

// toKey makes `journals/<date>`
func toKey(key journal.DateKey) string {
	return journal.Collection + "/" + key.String()
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + documentExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, documentExt)
	if len(pathKey.Path) == 0 {
		return name
	}
	return strings.Join(pathKey.Path, "/") + "/" + name
}
