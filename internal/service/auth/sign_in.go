package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"journal/internal/domain"
	"journal/internal/domain/models"
	"journal/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// signInService implements services.SignInService
type signInService struct {
	auth   services.Authenticator
	logger *slog.Logger
}

// NewSignInService creates a sign-in service backed by the provider client
func NewSignInService(auth services.Authenticator, logger *slog.Logger) services.SignInService {
	return &signInService{auth: auth, logger: logger}
}

func (s *signInService) SignIn(ctx context.Context, req *services.SignInRequest) (*models.Credential, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateSignInRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	cred, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			s.logger.Info("sign-in rejected", "email", req.Email, "reason", authErr.Message)
		} else {
			s.logger.Error("sign-in failed", "email", req.Email, "error", err)
		}
		return nil, err
	}

	s.logger.Info("signed in", "user_id", cred.User.ID)
	return cred, nil
}

func validateSignInRequest(req *services.SignInRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
