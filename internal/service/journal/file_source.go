package journal

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"journal/internal/config"
	journalSvc "journal/internal/domain/services/journal"
)

// FileSource reads picked images from the local filesystem.
// It accepts plain paths and file:// uris.
type FileSource struct{}

func (FileSource) ReadImage(ctx context.Context, uri string) ([]byte, string, error) {
	path := localPath(uri)

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if info.Size() > config.MaxImageBytes {
		return nil, "", fmt.Errorf("image %s exceeds %d bytes", path, config.MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// FilePicker picks path without asking; an empty path is a cancelled pick.
func FilePicker(path string) journalSvc.ImagePicker {
	return journalSvc.PickerFunc(func(ctx context.Context) (journalSvc.PickedImage, error) {
		if path == "" {
			return journalSvc.PickedImage{Cancelled: true}, nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return journalSvc.PickedImage{}, err
		}
		if _, err := os.Stat(abs); err != nil {
			return journalSvc.PickedImage{}, err
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		return journalSvc.PickedImage{URI: u.String()}, nil
	})
}

func localPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil {
			return filepath.FromSlash(u.Path)
		}
	}
	return uri
}
