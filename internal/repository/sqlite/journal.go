package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
)

const (
	getEntryStatement = `
	SELECT date_key, title, content, date, image_url, updated_at
	FROM journals
	WHERE date_key = ?
	`

	upsertEntryStatement = `
	INSERT INTO journals (date_key, title, content, date, image_url, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (date_key) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		date = excluded.date,
		image_url = excluded.image_url,
		updated_at = excluded.updated_at
	`

	deleteEntryStatement = `
	DELETE FROM journals
	WHERE date_key = ?
	`
)

// EntryRepository stores journal entries in SQLite
type EntryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewEntryRepository creates a SQLite-backed EntryRepository
func NewEntryRepository(db *sql.DB, logger *slog.Logger) journalRepo.EntryRepository {
	return &EntryRepository{db: db, logger: logger}
}

func (r *EntryRepository) Get(ctx context.Context, key journal.DateKey) (*journal.Entry, error) {
	var entry journal.Entry
	var dateKey string

	err := r.db.QueryRowContext(ctx, getEntryStatement, key.String()).Scan(
		&dateKey,
		&entry.Title,
		&entry.Content,
		&entry.Date,
		&entry.ImageURL,
		&entry.Updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entry.DateKey = journal.DateKey(dateKey)
	return &entry, nil
}

func (r *EntryRepository) Upsert(ctx context.Context, entry *journal.Entry) error {
	if entry.Updated.IsZero() {
		entry.Updated = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertEntryStatement,
		entry.DateKey.String(),
		entry.Title,
		entry.Content,
		entry.Date,
		entry.ImageURL,
		entry.Updated,
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}

	r.logger.Debug("entry upserted", "date_key", entry.DateKey)
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, key journal.DateKey) error {
	res, err := r.db.ExecContext(ctx, deleteEntryStatement, key.String())
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}
	return nil
}
