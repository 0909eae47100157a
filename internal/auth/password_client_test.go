package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"journal/internal/domain"
)

func TestPasswordClient_SignIn(t *testing.T) {
	var gotAPIKey, gotGrant string
	var gotBody passwordGrantRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotGrant = r.URL.Query().Get("grant_type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		if r.URL.Path != "/auth/v1/token" {
			http.NotFound(w, r)
			return
		}
		switch gotBody.Password {
		case "correct":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600,"refresh_token":"ref","user":{"id":"u-1","email":"intern@example.com"}}`)
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
		}
	}))
	defer srv.Close()

	client := NewPasswordClient(srv.URL, "anon-key", slog.New(slog.NewTextHandler(io.Discard, nil)))
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	t.Run("success", func(t *testing.T) {
		cred, err := client.SignIn(context.Background(), "intern@example.com", "correct")
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if gotAPIKey != "anon-key" || gotGrant != "password" {
			t.Errorf("apikey = %q, grant_type = %q", gotAPIKey, gotGrant)
		}
		if gotBody.Email != "intern@example.com" {
			t.Errorf("email sent = %q", gotBody.Email)
		}
		if cred.AccessToken != "tok" || cred.User.ID != "u-1" {
			t.Errorf("credential = %+v", cred)
		}
		if !cred.ExpiresAt.Equal(fixed.Add(time.Hour)) {
			t.Errorf("ExpiresAt = %v", cred.ExpiresAt)
		}
	})

	t.Run("rejected credentials", func(t *testing.T) {
		_, err := client.SignIn(context.Background(), "intern@example.com", "wrong")
		var authErr *domain.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("SignIn() error = %v, want *domain.AuthError", err)
		}
		if authErr.Message != "Invalid login credentials" {
			t.Errorf("Message = %q", authErr.Message)
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Error("AuthError should match ErrUnauthorized")
		}
	})

	t.Run("provider outage", func(t *testing.T) {
		_, err := client.SignIn(context.Background(), "intern@example.com", "boom")
		if !errors.Is(err, domain.ErrRemote) {
			t.Errorf("SignIn() error = %v, want ErrRemote", err)
		}
	})
}

func TestErrorResponseText(t *testing.T) {
	tests := []struct {
		in   errorResponse
		want string
	}{
		{errorResponse{ErrorDescription: "a", Msg: "b"}, "a"},
		{errorResponse{Msg: "b", Message: "c"}, "b"},
		{errorResponse{Message: "c"}, "c"},
		{errorResponse{Error: "invalid_grant"}, "invalid_grant"},
	}
	for _, tt := range tests {
		if got := tt.in.text(); got != tt.want {
			t.Errorf("text() = %q, want %q", got, tt.want)
		}
	}
}
