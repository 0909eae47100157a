package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		status int
	}{
		{"validation", &ValidationError{Message: "title is required"}, ErrValidation, http.StatusBadRequest},
		{"not found", &NotFoundError{Message: "entry 2024-03-01"}, ErrNotFound, http.StatusNotFound},
		{"auth", &AuthError{Message: "Invalid login credentials"}, ErrUnauthorized, http.StatusUnauthorized},
		{"remote", &RemoteOperationError{Op: "write entry", Err: errors.New("boom")}, ErrRemote, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, tt.target)
			}

			var httpErr HTTPError
			if !errors.As(wrapped, &httpErr) {
				t.Fatalf("errors.As(HTTPError) = false")
			}
			if httpErr.StatusCode() != tt.status {
				t.Errorf("StatusCode() = %d, want %d", httpErr.StatusCode(), tt.status)
			}
		})
	}
}

func TestEditorStateErrorsAreConflicts(t *testing.T) {
	for _, err := range []error{ErrUnsavedChanges, ErrSaveInProgress, ErrConfirmationRequired} {
		if !errors.Is(err, ErrConflict) {
			t.Errorf("%v should match ErrConflict", err)
		}
	}
	if !errors.Is(ErrNoImage, ErrNotFound) {
		t.Errorf("ErrNoImage should match ErrNotFound")
	}
}

func TestRemote(t *testing.T) {
	if Remote("read entry", nil) != nil {
		t.Fatal("Remote(nil) should be nil")
	}

	cause := errors.New("connection refused")
	err := Remote("read entry", cause)
	if !errors.Is(err, cause) {
		t.Errorf("Remote should unwrap to its cause")
	}
	if got := err.Error(); got != "read entry: connection refused" {
		t.Errorf("Error() = %q", got)
	}

	again := Remote("upload image", err)
	var remoteErr *RemoteOperationError
	if !errors.As(again, &remoteErr) || remoteErr.Op != "read entry" {
		t.Errorf("Remote should not double wrap, got %v", again)
	}
}
