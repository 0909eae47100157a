package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
)

// PostgresEntryRepository implements the EntryRepository interface
type PostgresEntryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEntryRepository creates a new PostgresEntryRepository
func NewEntryRepository(config *RepositoryConfig) journalRepo.EntryRepository {
	return &PostgresEntryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves the entry stored under a date key
func (r *PostgresEntryRepository) Get(ctx context.Context, key journal.DateKey) (*journal.Entry, error) {
	query := fmt.Sprintf(`
		SELECT date_key, title, content, date, image_url, updated_at
		FROM %s
		WHERE date_key = $1
	`, r.tables.Journals)

	var entry journal.Entry
	var dateKey string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, key.String()).Scan(
		&dateKey,
		&entry.Title,
		&entry.Content,
		&entry.Date,
		&entry.ImageURL,
		&entry.Updated,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entry.DateKey = journal.DateKey(dateKey)
	return &entry, nil
}

// Upsert creates the entry or replaces every field of the existing row
func (r *PostgresEntryRepository) Upsert(ctx context.Context, entry *journal.Entry) error {
	if entry.Updated.IsZero() {
		entry.Updated = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (date_key, title, content, date, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date_key) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			date = EXCLUDED.date,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Journals)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
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

	r.logger.Debug("entry upserted", "date_key", entry.DateKey, "table", r.tables.Journals)
	return nil
}

// Delete removes the entry stored under a date key
func (r *PostgresEntryRepository) Delete(ctx context.Context, key journal.DateKey) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE date_key = $1`, r.tables.Journals)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, key.String())
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}

	return nil
}
