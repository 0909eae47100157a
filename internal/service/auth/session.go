package auth

import (
	"context"
	"log/slog"
	"sync"

	"journal/internal/domain/models"
	"journal/internal/domain/services"
)

// sessionService implements services.SessionService for a single client
type sessionService struct {
	signIn  services.SignInService
	current *CurrentUser
	logger  *slog.Logger

	mu         sync.Mutex
	credential *models.Credential
}

// NewSessionService creates a session that publishes sign-ins to a
// current-user stream
func NewSessionService(signIn services.SignInService, logger *slog.Logger) services.SessionService {
	return &sessionService{
		signIn:  signIn,
		current: NewCurrentUser(),
		logger:  logger,
	}
}

func (s *sessionService) SignIn(ctx context.Context, email, password string) (*models.Credential, error) {
	cred, err := s.signIn.SignIn(ctx, &services.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.credential = cred
	s.mu.Unlock()

	user := cred.User
	s.current.Set(&user)
	return cred, nil
}

func (s *sessionService) SignOut() {
	s.mu.Lock()
	s.credential = nil
	s.mu.Unlock()

	s.current.Set(nil)
	s.logger.Info("signed out")
}

func (s *sessionService) CurrentUser() services.CurrentUserStream {
	return s.current
}

func (s *sessionService) Credential() *models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}
