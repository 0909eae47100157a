package services

import (
	"context"

	"journal/internal/domain/models"
)

// Authenticator signs users in against the authentication provider.
type Authenticator interface {
	// SignIn exchanges email and password for a credential.
	// Rejections are returned as *domain.AuthError carrying the provider message.
	SignIn(ctx context.Context, email, password string) (*models.Credential, error)
}

// SignInService validates sign-in input before calling the provider.
type SignInService interface {
	SignIn(ctx context.Context, req *SignInRequest) (*models.Credential, error)
}

// SignInRequest is the login form payload
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CurrentUserStream publishes the signed-in user (nil when signed out).
type CurrentUserStream interface {
	// Current returns the signed-in user or nil.
	Current() *models.User

	// Subscribe calls fn with the current value immediately and on every change.
	// The returned function releases the subscription; calling it more than once is safe.
	Subscribe(fn func(user *models.User)) (cancel func())
}

// SessionService signs in and tracks the current user for a single client.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*models.Credential, error)
	SignOut()
	CurrentUser() CurrentUserStream

	// Credential returns the credential of the last sign-in, nil when signed out.
	Credential() *models.Credential
}
