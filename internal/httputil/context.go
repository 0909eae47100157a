package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// WithUser stores the authenticated user's id and email on the request
func WithUser(r *http.Request, userID, email string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, userEmailKey, email)
	return r.WithContext(ctx)
}

// WithUserID stores only the user id (dev bypass, tests)
func WithUserID(r *http.Request, userID string) *http.Request {
	return WithUser(r, userID, "")
}

// GetUserID returns the authenticated user id, or "" on public routes
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUserEmail returns the authenticated user's email when the token carried one
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(userEmailKey).(string)
	return email
}
