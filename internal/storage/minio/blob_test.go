package minio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, bucket, path string
		want               string
	}{
		{"https://cdn.example.com", "images", "images/cat.jpg", "https://cdn.example.com/images/images/cat.jpg"},
		{"https://cdn.example.com/", "images", "images/my cat.jpg", "https://cdn.example.com/images/images/my%20cat.jpg"},
	}
	for _, tt := range tests {
		if got := publicURL(tt.base, tt.bucket, tt.path); got != tt.want {
			t.Errorf("publicURL(%q, %q, %q) = %q, want %q", tt.base, tt.bucket, tt.path, got, tt.want)
		}
	}
}

func TestNewBlobStore_RequiresPublicBaseURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "images"}

	if _, err := NewBlobStore(context.Background(), cfg, logger); !errors.Is(err, ErrNoPublicBaseURL) {
		t.Errorf("NewBlobStore() error = %v, want ErrNoPublicBaseURL", err)
	}
}
