// Package minio stores entry images in an S3-compatible bucket.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	journalRepo "journal/internal/domain/repositories/journal"
)

// Config holds the connection settings for the bucket
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string

	// PublicBaseURL is where the bucket is publicly readable (a public
	// bucket policy or a CDN in front of it). Stored image URLs are built on
	// it, so they never expire.
	PublicBaseURL string
}

// ErrNoPublicBaseURL is returned when the store has no durable URL to hand out
var ErrNoPublicBaseURL = errors.New("minio blob store requires a public base URL")

// BlobStore implements journalRepo.BlobStore on MinIO
type BlobStore struct {
	client *minio.Client
	cfg    Config
	logger *slog.Logger
}

// NewBlobStore connects to the endpoint and creates the bucket if it doesn't exist
func NewBlobStore(ctx context.Context, cfg Config, logger *slog.Logger) (*BlobStore, error) {
	if strings.TrimSpace(cfg.PublicBaseURL) == "" {
		return nil, ErrNoPublicBaseURL
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("bucket created", "bucket", cfg.Bucket)
	}

	logger.Info("minio blob store ready", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return &BlobStore{client: client, cfg: cfg, logger: logger}, nil
}

func (s *BlobStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (*journalRepo.UploadReceipt, error) {
	info, err := s.client.PutObject(ctx, s.cfg.Bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", path, err)
	}

	s.logger.Debug("object uploaded", "path", path, "size", info.Size)
	return &journalRepo.UploadReceipt{Path: info.Key, Size: info.Size, ETag: info.ETag}, nil
}

// DownloadURL returns the permanent public URL of an uploaded object
func (s *BlobStore) DownloadURL(ctx context.Context, path string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.cfg.Bucket, path, minio.StatObjectOptions{}); err != nil {
		return "", fmt.Errorf("stat object %s: %w", path, err)
	}
	return publicURL(s.cfg.PublicBaseURL, s.cfg.Bucket, path), nil
}

// publicURL joins base/bucket/path, escaping each path segment
func publicURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
