package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"journal/internal/domain/repositories"
)

// EnsureSchema creates the journals table and its index if they do not exist.
// Statements run in one transaction so a partial schema is never left behind.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string, logger *slog.Logger) error {
	tx := NewTransactionManager(pool, logger)
	return tx.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, pool)

		createJournals := `
			CREATE TABLE IF NOT EXISTS ` + tables.Journals + ` (
				date_key TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				date TEXT NOT NULL,
				image_url TEXT NOT NULL DEFAULT '',
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`
		if _, err := executor.Exec(txCtx, createJournals); err != nil {
			return fmt.Errorf("create %s: %w", tables.Journals, err)
		}

		index := `CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `journals_updated_at ON ` + tables.Journals + `(updated_at DESC)`
		if _, err := executor.Exec(txCtx, index); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		return nil
	})
}

// DropSchema removes the journals table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	executor := GetExecutor(ctx, pool)
	if _, err := executor.Exec(ctx, "DROP TABLE IF EXISTS "+tables.Journals+" CASCADE"); err != nil {
		return fmt.Errorf("drop %s: %w", tables.Journals, err)
	}
	return nil
}

var _ repositories.TransactionManager = (*TransactionManager)(nil)
