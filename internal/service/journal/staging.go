package journal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"journal/internal/config"
	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	journalSvc "journal/internal/domain/services/journal"
)

const stagingScheme = "staged://"

type stagedBlob struct {
	data        []byte
	contentType string
}

// Staging keeps uploaded image bytes in memory until the owning editor saves.
// It is the ImageSource for images picked over HTTP.
type Staging struct {
	mu    sync.Mutex
	blobs map[string]stagedBlob
	seq   uint64
}

// NewStaging creates an empty staging area
func NewStaging() *Staging {
	return &Staging{blobs: make(map[string]stagedBlob)}
}

// Picker returns an ImagePicker that stages data under owner and picks it.
// A nil data slice behaves like a cancelled pick.
func (s *Staging) Picker(owner, fileName, contentType string, data []byte) journalSvc.ImagePicker {
	return journalSvc.PickerFunc(func(ctx context.Context) (journalSvc.PickedImage, error) {
		if data == nil {
			return journalSvc.PickedImage{Cancelled: true}, nil
		}
		uri, err := s.Put(owner, fileName, contentType, data)
		if err != nil {
			return journalSvc.PickedImage{}, err
		}
		return journalSvc.PickedImage{URI: uri}, nil
	})
}

// Put stores data and returns its uri: staged://<owner>/<seq>/<fileName>
func (s *Staging) Put(owner, fileName, contentType string, data []byte) (string, error) {
	name := models.FileNameFromPath(fileName)
	if _, err := models.ImagePath(name); err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	if len(data) > config.MaxImageBytes {
		return "", &domain.ValidationError{Message: fmt.Sprintf("image exceeds %d bytes", config.MaxImageBytes)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	uri := fmt.Sprintf("%s%s/%d/%s", stagingScheme, owner, s.seq, name)
	s.blobs[uri] = stagedBlob{data: data, contentType: contentType}
	return uri, nil
}

func (s *Staging) ReadImage(ctx context.Context, uri string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.blobs[uri]
	if !ok {
		return nil, "", fmt.Errorf("staged image %s: %w", uri, domain.ErrNotFound)
	}
	return blob.data, blob.contentType, nil
}

// ReleaseImage drops one staged image. Unknown uris are ignored.
func (s *Staging) ReleaseImage(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, uri)
}

// Len returns the number of staged images
func (s *Staging) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Discard drops everything staged by owner
func (s *Staging) Discard(owner string) {
	prefix := stagingScheme + owner + "/"

	s.mu.Lock()
	defer s.mu.Unlock()
	for uri := range s.blobs {
		if strings.HasPrefix(uri, prefix) {
			delete(s.blobs, uri)
		}
	}
}
