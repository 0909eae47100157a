package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	journalRepo "journal/internal/domain/repositories/journal"
	"journal/internal/domain/services"
)

var errBoom = errors.New("boom")

// call log shared by the fakes so tests can assert ordering
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeEntryRepo struct {
	log     *callLog
	mu      sync.Mutex
	entries map[models.DateKey]models.Entry
	getErr  error
	putErr  error
	delErr  error
	writes  []models.Entry

	// beforeUpsert runs inside Upsert before the write is recorded
	beforeUpsert func()
}

func newFakeEntryRepo(log *callLog) *fakeEntryRepo {
	return &fakeEntryRepo{log: log, entries: make(map[models.DateKey]models.Entry)}
}

func (r *fakeEntryRepo) Get(ctx context.Context, key models.DateKey) (*models.Entry, error) {
	r.log.add("get %s", key)
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}
	return &e, nil
}

func (r *fakeEntryRepo) Upsert(ctx context.Context, entry *models.Entry) error {
	if r.beforeUpsert != nil {
		r.beforeUpsert()
	}
	r.log.add("upsert %s imageUrl=%q", entry.DateKey, entry.ImageURL)
	if r.putErr != nil {
		return r.putErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.DateKey] = *entry
	r.writes = append(r.writes, *entry)
	return nil
}

func (r *fakeEntryRepo) Delete(ctx context.Context, key models.DateKey) error {
	r.log.add("delete %s", key)
	if r.delErr != nil {
		return r.delErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return fmt.Errorf("entry %s: %w", key, domain.ErrNotFound)
	}
	delete(r.entries, key)
	return nil
}

type fakeBlobStore struct {
	log       *callLog
	mu        sync.Mutex
	blobs     map[string][]byte
	uploadErr error
}

func newFakeBlobStore(log *callLog) *fakeBlobStore {
	return &fakeBlobStore{log: log, blobs: make(map[string][]byte)}
}

func (b *fakeBlobStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (*journalRepo.UploadReceipt, error) {
	b.log.add("upload %s", path)
	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[path] = buf.Bytes()
	return &journalRepo.UploadReceipt{Path: path, Size: n}, nil
}

func (b *fakeBlobStore) DownloadURL(ctx context.Context, path string) (string, error) {
	b.log.add("url %s", path)
	return "https://blobs.example.com/" + path, nil
}

type recorder struct {
	mu      sync.Mutex
	notices []services.Notice
	backs   int
	screens []services.Screen
}

func (r *recorder) Notify(n services.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) GoBack() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backs++
}

func (r *recorder) NavigateTo(s services.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, s)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

func (r *recorder) last() string {
	msgs := r.messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	log     *callLog
	repo    *fakeEntryRepo
	blobs   *fakeBlobStore
	staging *Staging
	rec     *recorder
	editor  *Editor
}

func newFixture() *fixture {
	log := &callLog{}
	f := &fixture{
		log:     log,
		repo:    newFakeEntryRepo(log),
		blobs:   newFakeBlobStore(log),
		staging: NewStaging(),
		rec:     &recorder{},
	}
	svc := NewEntryService(f.repo, f.blobs, discardLogger())
	f.editor = NewEditor(svc, f.staging, f.rec, f.rec, discardLogger())
	return f
}
