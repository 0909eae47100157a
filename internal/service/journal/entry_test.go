package journal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	journalSvc "journal/internal/domain/services/journal"
)

func TestEntryService_SaveEntry(t *testing.T) {
	tests := []struct {
		name      string
		req       journalSvc.SaveEntryRequest
		wantErr   error
		wantCalls []string
		wantURL   string
	}{
		{
			name:      "text only",
			req:       journalSvc.SaveEntryRequest{DateKey: "2024-03-01", Title: "Day One", Content: "draft"},
			wantCalls: []string{`upsert 2024-03-01 imageUrl=""`},
		},
		{
			name: "keeps given image url",
			req: journalSvc.SaveEntryRequest{
				DateKey: "2024-03-01", Title: "Day One", Content: "draft",
				ImageURL: "https://blobs.example.com/images/old.jpg",
			},
			wantCalls: []string{`upsert 2024-03-01 imageUrl="https://blobs.example.com/images/old.jpg"`},
			wantURL:   "https://blobs.example.com/images/old.jpg",
		},
		{
			name: "uploads before writing",
			req: journalSvc.SaveEntryRequest{
				DateKey: "2024-03-01", Title: "Day One", Content: "draft",
				ImageURL: "https://blobs.example.com/images/old.jpg",
				Image:    &journalSvc.ImageUpload{FileName: "file:///cache/cat.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
			},
			wantCalls: []string{
				"upload images/cat.jpg",
				"url images/cat.jpg",
				`upsert 2024-03-01 imageUrl="https://blobs.example.com/images/cat.jpg"`,
			},
			wantURL: "https://blobs.example.com/images/cat.jpg",
		},
		{
			name:    "missing title",
			req:     journalSvc.SaveEntryRequest{DateKey: "2024-03-01", Content: "draft"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing content",
			req:     journalSvc.SaveEntryRequest{DateKey: "2024-03-01", Title: "Day One"},
			wantErr: domain.ErrValidation,
		},
		{
			name: "image url not a url",
			req: journalSvc.SaveEntryRequest{
				DateKey: "2024-03-01", Title: "t", Content: "c",
				ImageURL: "not a url at all",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "image url without scheme",
			req: journalSvc.SaveEntryRequest{
				DateKey: "2024-03-01", Title: "t", Content: "c",
				ImageURL: "blobs.example.com/images/cat.jpg",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "image url with other scheme",
			req: journalSvc.SaveEntryRequest{
				DateKey: "2024-03-01", Title: "t", Content: "c",
				ImageURL: "ftp://blobs.example.com/images/cat.jpg",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad date key",
			req:     journalSvc.SaveEntryRequest{DateKey: "tomorrow", Title: "t", Content: "c"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			repo := newFakeEntryRepo(log)
			svc := NewEntryService(repo, newFakeBlobStore(log), discardLogger())

			entry, err := svc.SaveEntry(context.Background(), &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SaveEntry() error = %v, want %v", err, tt.wantErr)
				}
				if calls := log.list(); len(calls) != 0 {
					t.Errorf("no store calls expected on validation failure, got %v", calls)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveEntry() error = %v", err)
			}

			calls := log.list()
			if len(calls) != len(tt.wantCalls) {
				t.Fatalf("calls = %v, want %v", calls, tt.wantCalls)
			}
			for i := range calls {
				if calls[i] != tt.wantCalls[i] {
					t.Errorf("call[%d] = %q, want %q", i, calls[i], tt.wantCalls[i])
				}
			}
			if entry.ImageURL != tt.wantURL {
				t.Errorf("ImageURL = %q, want %q", entry.ImageURL, tt.wantURL)
			}
			if entry.Date != "Friday, March 1, 2024" {
				t.Errorf("Date = %q", entry.Date)
			}
		})
	}
}

func TestEntryService_SaveEntry_Idempotent(t *testing.T) {
	repo := newFakeEntryRepo(&callLog{})
	svc := NewEntryService(repo, newFakeBlobStore(&callLog{}), discardLogger())
	req := &journalSvc.SaveEntryRequest{DateKey: "2024-03-01", Title: "Day One", Content: "draft"}

	for i := 0; i < 2; i++ {
		if _, err := svc.SaveEntry(context.Background(), req); err != nil {
			t.Fatal(err)
		}
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	first, second := repo.writes[0], repo.writes[1]
	if first.Title != second.Title || first.Content != second.Content || first.Date != second.Date || first.ImageURL != second.ImageURL {
		t.Errorf("writes differ: %+v vs %+v", first, second)
	}
}

func TestEntryService_RemoteFailures(t *testing.T) {
	log := &callLog{}
	repo := newFakeEntryRepo(log)
	blobs := newFakeBlobStore(log)
	svc := NewEntryService(repo, blobs, discardLogger())
	ctx := context.Background()

	blobs.uploadErr = errBoom
	_, err := svc.SaveEntry(ctx, &journalSvc.SaveEntryRequest{
		DateKey: "2024-03-01", Title: "t", Content: "c",
		Image: &journalSvc.ImageUpload{FileName: "cat.jpg", Data: []byte("x")},
	})
	var remoteErr *domain.RemoteOperationError
	if !errors.As(err, &remoteErr) || remoteErr.Op != "upload image" {
		t.Fatalf("SaveEntry() error = %v, want upload RemoteOperationError", err)
	}
	for _, c := range log.list() {
		if strings.HasPrefix(c, "upsert") {
			t.Error("document must not be written when the upload fails")
		}
	}

	repo.getErr = errBoom
	if _, err := svc.GetEntry(ctx, "2024-03-01"); !errors.Is(err, domain.ErrRemote) || !errors.Is(err, errBoom) {
		t.Errorf("GetEntry() error = %v, want remote boom", err)
	}

	repo.delErr = errBoom
	if err := svc.DeleteEntry(ctx, "2024-03-01"); !errors.Is(err, domain.ErrRemote) {
		t.Errorf("DeleteEntry() error = %v, want ErrRemote", err)
	}
}

func TestEntryService_DeleteAbsentSucceeds(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(&callLog{}), newFakeBlobStore(&callLog{}), discardLogger())
	if err := svc.DeleteEntry(context.Background(), "2024-03-01"); err != nil {
		t.Errorf("DeleteEntry() of absent entry error = %v", err)
	}
}

func TestEntryService_GetEntryFillsDate(t *testing.T) {
	repo := newFakeEntryRepo(&callLog{})
	repo.entries["2024-03-01"] = models.Entry{DateKey: "2024-03-01", Title: "t", Content: "c"}
	svc := NewEntryService(repo, newFakeBlobStore(&callLog{}), discardLogger())

	got, err := svc.GetEntry(context.Background(), "2024-03-01T10:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != "Friday, March 1, 2024" {
		t.Errorf("Date = %q", got.Date)
	}

	if _, err := svc.GetEntry(context.Background(), "2024-03-02"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}
}
