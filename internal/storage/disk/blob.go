// Package disk stores entry images on the local filesystem and serves them over HTTP.
package disk

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
	"journal/internal/httputil"
)

// RoutePrefix is where Handler is mounted; DownloadURL builds URLs under it
const RoutePrefix = "/files/"

// BlobStore keeps blobs as files under basePath, one directory per path segment
type BlobStore struct {
	d       *diskv.Diskv
	baseURL string
	logger  *slog.Logger
}

// NewBlobStore creates a disk blob store. baseURL is the externally reachable
// server address (e.g. http://localhost:8080).
func NewBlobStore(basePath, baseURL string, logger *slog.Logger) *BlobStore {
	return &BlobStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
		}),
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

var _ journalRepo.BlobStore = (*BlobStore)(nil)

func (s *BlobStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (*journalRepo.UploadReceipt, error) {
	var buf bytes.Buffer
	hash := md5.New()
	n, err := io.Copy(io.MultiWriter(&buf, hash), r)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", path, err)
	}
	if size >= 0 && n != size {
		return nil, fmt.Errorf("blob %s: read %d bytes, expected %d", path, n, size)
	}

	if err := s.d.WriteStream(path, &buf, true); err != nil {
		return nil, fmt.Errorf("write blob %s: %w", path, err)
	}

	s.logger.Debug("blob written", "path", path, "size", n)
	return &journalRepo.UploadReceipt{Path: path, Size: n, ETag: hex.EncodeToString(hash.Sum(nil))}, nil
}

func (s *BlobStore) DownloadURL(ctx context.Context, path string) (string, error) {
	if !s.d.Has(path) {
		return "", fmt.Errorf("blob %s does not exist", path)
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + RoutePrefix + strings.Join(segments, "/"), nil
}

// Open returns a reader for a stored blob
func (s *BlobStore) Open(path string) (io.ReadCloser, error) {
	return s.d.ReadStream(path, false)
}

// Handler serves GET /files/images/{name}
func (s *BlobStore) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := journal.ImagePath(r.PathValue("name"))
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !s.d.Has(path) {
			httputil.RespondError(w, http.StatusNotFound, "image not found")
			return
		}

		rc, err := s.Open(path)
		if err != nil {
			s.logger.Error("failed to open blob", "path", path, "error", err)
			httputil.RespondError(w, http.StatusInternalServerError, "failed to read image")
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "private, max-age=3600")
		if _, err := io.Copy(w, rc); err != nil {
			s.logger.Warn("failed to stream blob", "path", path, "error", err)
		}
	}
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}
