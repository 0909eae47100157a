package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"journal/internal/domain"
	"journal/internal/domain/services"
)

func newTestRegistry() (*Registry, *fakeEntryRepo, *Staging) {
	log := &callLog{}
	repo := newFakeEntryRepo(log)
	staging := NewStaging()
	svc := NewEntryService(repo, newFakeBlobStore(log), discardLogger())
	return NewRegistry(svc, staging, discardLogger()), repo, staging
}

func TestRegistry_SessionsBelongToTheirUser(t *testing.T) {
	reg, _, _ := newTestRegistry()
	ctx := context.Background()

	s, err := reg.Open(ctx, "alice", "2024-03-01")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.ID == "" || s.Editor.Snapshot().DateKey != "2024-03-01" {
		t.Fatalf("session = %+v", s)
	}

	if got, err := reg.Get("alice", s.ID); err != nil || got != s {
		t.Errorf("Get() = %v, %v", got, err)
	}
	if _, err := reg.Get("bob", s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() by other user error = %v, want ErrNotFound", err)
	}
	if err := reg.Close("bob", s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Close() by other user error = %v, want ErrNotFound", err)
	}

	if err := reg.Close("alice", s.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after close", reg.Len())
	}
}

func TestRegistry_OpenInvalidDate(t *testing.T) {
	reg, _, _ := newTestRegistry()
	if _, err := reg.Open(context.Background(), "alice", "not-a-date"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Open() error = %v, want ErrValidation", err)
	}
	if reg.Len() != 0 {
		t.Error("failed open must not register a session")
	}
}

func TestRegistry_OutboxCollectsNotices(t *testing.T) {
	reg, _, staging := newTestRegistry()
	ctx := context.Background()
	s, _ := reg.Open(ctx, "alice", "2024-03-01")

	s.Editor.EnterEditMode()
	s.Editor.SetTitle("Day One")
	s.Editor.UpdateContent("draft")
	if _, err := s.Editor.PickImage(ctx, staging.Picker(s.ID, "cat.jpg", "image/jpeg", []byte("x"))); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Editor.Save(ctx); err != nil {
		t.Fatal(err)
	}

	notices, nav := s.Outbox.Drain()
	if len(notices) != 2 || notices[0].Kind != services.NoticeInfo || notices[1].Kind != services.NoticeSuccess {
		t.Errorf("notices = %+v", notices)
	}
	if !nav.Back {
		t.Error("save should signal back navigation")
	}

	notices, nav = s.Outbox.Drain()
	if len(notices) != 0 || nav.Back {
		t.Errorf("second Drain() = %v, %+v", notices, nav)
	}

	_ = reg.Close("alice", s.ID)
	if len(staging.blobs) != 0 {
		t.Errorf("staged blobs left after close: %d", len(staging.blobs))
	}
}

func TestStaging(t *testing.T) {
	st := NewStaging()
	ctx := context.Background()

	uri, err := st.Put("owner", "/tmp/cat.jpg", "image/jpeg", []byte("jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "staged://owner/") || !strings.HasSuffix(uri, "/cat.jpg") {
		t.Errorf("uri = %q", uri)
	}

	data, ct, err := st.ReadImage(ctx, uri)
	if err != nil || string(data) != "jpeg" || ct != "image/jpeg" {
		t.Errorf("ReadImage() = %q, %q, %v", data, ct, err)
	}

	if _, err := st.Put("owner", "..", "", []byte("x")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Put(..) error = %v, want ErrValidation", err)
	}

	st.Discard("owner")
	if _, _, err := st.ReadImage(ctx, uri); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ReadImage() after discard error = %v", err)
	}
}

func TestFileSourceAndPicker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunset.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	picked, err := FilePicker(path).PickImage(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(picked.URI, "file://") || !strings.HasSuffix(picked.URI, "/sunset.png") {
		t.Errorf("URI = %q", picked.URI)
	}

	data, ct, err := FileSource{}.ReadImage(context.Background(), picked.URI)
	if err != nil || string(data) != "png" || ct != "image/png" {
		t.Errorf("ReadImage() = %q, %q, %v", data, ct, err)
	}

	if p, err := FilePicker("").PickImage(context.Background()); err != nil || !p.Cancelled {
		t.Errorf("empty path pick = %+v, %v", p, err)
	}
	if _, err := FilePicker(filepath.Join(dir, "missing.png")).PickImage(context.Background()); err == nil {
		t.Error("picking a missing file should fail")
	}
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedRegistry(opts ...RegistryOption) (*Registry, *Staging, *testClock) {
	reg, _, staging := newTestRegistry()
	for _, opt := range opts {
		opt(reg)
	}
	clock := &testClock{t: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	reg.now = clock.now
	return reg, staging, clock
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	reg, staging, clock := newClockedRegistry(WithIdleTimeout(10 * time.Minute))
	ctx := context.Background()

	s, err := reg.Open(ctx, "alice", "2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	uri, err := staging.Put(s.ID, "cat.jpg", "image/jpeg", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	clock.advance(6 * time.Minute)
	if _, err := reg.Get("alice", s.ID); err != nil {
		t.Fatalf("Get() within timeout error = %v", err)
	}
	clock.advance(6 * time.Minute)
	if _, err := reg.Get("alice", s.ID); err != nil {
		t.Fatalf("Get() should have refreshed the session: %v", err)
	}

	clock.advance(11 * time.Minute)
	if _, err := reg.Get("alice", s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() of idle session error = %v, want ErrNotFound", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after expiry", reg.Len())
	}
	if _, _, err := staging.ReadImage(ctx, uri); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("staged image of expired session still readable: %v", err)
	}
}

func TestRegistry_Sweep(t *testing.T) {
	reg, _, clock := newClockedRegistry(WithIdleTimeout(time.Minute))
	ctx := context.Background()

	_, _ = reg.Open(ctx, "alice", "2024-03-01")
	_, _ = reg.Open(ctx, "bob", "2024-03-01")
	clock.advance(30 * time.Second)
	fresh, _ := reg.Open(ctx, "carol", "2024-03-01")

	clock.advance(45 * time.Second)
	if n := reg.Sweep(); n != 2 {
		t.Errorf("Sweep() = %d, want 2", n)
	}
	if _, err := reg.Get("carol", fresh.ID); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}

func TestRegistry_MaxSessionsPerUser(t *testing.T) {
	reg, _, clock := newClockedRegistry(WithMaxSessions(2))
	ctx := context.Background()

	first, _ := reg.Open(ctx, "alice", "2024-03-01")
	clock.advance(time.Second)
	second, _ := reg.Open(ctx, "alice", "2024-03-02")
	clock.advance(time.Second)
	other, _ := reg.Open(ctx, "bob", "2024-03-01")
	clock.advance(time.Second)
	if _, err := reg.Get("alice", first.ID); err != nil {
		t.Fatal(err)
	}
	clock.advance(time.Second)

	third, err := reg.Open(ctx, "alice", "2024-03-03")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Get("alice", second.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("least recently used session should be evicted, Get() error = %v", err)
	}
	for _, s := range []*Session{first, third} {
		if _, err := reg.Get("alice", s.ID); err != nil {
			t.Errorf("session %s evicted: %v", s.ID, err)
		}
	}
	if _, err := reg.Get("bob", other.ID); err != nil {
		t.Errorf("other user's session evicted: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}
