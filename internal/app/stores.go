// Package app wires configured backends into the services shared by the
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"journal/internal/config"
	journalRepo "journal/internal/domain/repositories/journal"
	"journal/internal/repository/diskv"
	"journal/internal/repository/postgres"
	"journal/internal/repository/sqlite"
	diskStorage "journal/internal/storage/disk"
	minioStorage "journal/internal/storage/minio"
)

// Stores holds the document and blob stores selected by configuration
type Stores struct {
	Entries journalRepo.EntryRepository
	Blobs   journalRepo.BlobStore

	// Files serves disk blobs over HTTP; nil for other blob stores
	Files http.Handler

	closers []func()
}

// Close releases connections in reverse order of opening
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// OpenStores connects the configured document and blob stores
func OpenStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	s := &Stores{}

	if err := s.openDocumentStore(ctx, cfg, logger); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.openBlobStore(ctx, cfg, logger); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Stores) openDocumentStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	switch cfg.DocumentStore {
	case config.DocumentStorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		s.closers = append(s.closers, pool.Close)

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix, logger); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		s.Entries = postgres.NewEntryRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		})
		logger.Info("document store connected", "backend", "postgres", "table", tables.Journals)

	case config.DocumentStoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, true)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		s.closers = append(s.closers, func() { db.Close() })
		s.Entries = sqlite.NewEntryRepository(db, logger)
		logger.Info("document store connected", "backend", "sqlite", "path", cfg.SQLitePath)

	case config.DocumentStoreDisk:
		dir := filepath.Join(cfg.DataDir, "documents")
		s.Entries = diskv.NewEntryRepository(dir, logger)
		logger.Info("document store connected", "backend", "disk", "path", dir)

	default:
		return fmt.Errorf("unknown document store %q", cfg.DocumentStore)
	}
	return nil
}

func (s *Stores) openBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	switch cfg.BlobStore {
	case config.BlobStoreMinio:
		store, err := minioStorage.NewBlobStore(ctx, minioStorage.Config{
			Endpoint:      cfg.MinioEndpoint,
			AccessKey:     cfg.MinioAccessKey,
			SecretKey:     cfg.MinioSecretKey,
			UseSSL:        cfg.MinioUseSSL,
			Bucket:        cfg.MinioBucket,
			PublicBaseURL: cfg.MinioPublicBaseURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect minio: %w", err)
		}
		s.Blobs = store
		logger.Info("blob store connected", "backend", "minio", "bucket", cfg.MinioBucket)

	case config.BlobStoreDisk:
		dir := filepath.Join(cfg.DataDir, "blobs")
		store := diskStorage.NewBlobStore(dir, cfg.PublicBaseURL, logger)
		s.Blobs = store
		s.Files = store.Handler()
		logger.Info("blob store connected", "backend", "disk", "path", dir)

	default:
		return fmt.Errorf("unknown blob store %q", cfg.BlobStore)
	}
	return nil
}
