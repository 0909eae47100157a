package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"journal/internal/domain"
	"journal/internal/domain/models"
	"journal/internal/domain/services"
)

var errSignInInProgress = fmt.Errorf("sign-in already in progress: %w", domain.ErrConflict)

// LoginFormState is the rendered state of the login screen
type LoginFormState struct {
	Email    string `json:"email"`
	Password string `json:"-"`
	Error    string `json:"error,omitempty"`
	Loading  bool   `json:"loading"`
}

// LoginForm controls the login screen: it signs in with the entered
// credentials and routes to the home screen once a user is signed in.
type LoginForm struct {
	session services.SessionService
	nav     services.Navigator

	mu    sync.Mutex
	state LoginFormState
	// set once the home screen has been requested for the current sign-in
	routed bool
}

// NewLoginForm creates a form for session that navigates through nav
func NewLoginForm(session services.SessionService, nav services.Navigator) *LoginForm {
	return &LoginForm{session: session, nav: nav}
}

// Start follows the current user and navigates home whenever one appears.
// If someone is already signed in that happens immediately. The returned
// function stops following.
func (f *LoginForm) Start() (release func()) {
	return f.session.CurrentUser().Subscribe(func(user *models.User) {
		if user == nil {
			f.mu.Lock()
			f.routed = false
			f.mu.Unlock()
			return
		}
		f.goHome()
	})
}

func (f *LoginForm) goHome() {
	f.mu.Lock()
	already := f.routed
	f.routed = true
	f.mu.Unlock()

	if !already {
		f.nav.NavigateTo(services.ScreenHome)
	}
}

func (f *LoginForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Email = email
}

func (f *LoginForm) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Password = password
}

// Submit signs in with the entered email and password. On success the fields
// are cleared and the home screen is shown; on failure Error holds the
// provider's message.
func (f *LoginForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Loading {
		f.mu.Unlock()
		return errSignInInProgress
	}
	f.state.Loading = true
	f.state.Error = ""
	email, password := f.state.Email, f.state.Password
	f.mu.Unlock()

	_, err := f.session.SignIn(ctx, email, password)

	f.mu.Lock()
	f.state.Loading = false
	if err != nil {
		f.state.Error = errorMessage(err)
		f.mu.Unlock()
		return err
	}
	f.state = LoginFormState{}
	f.mu.Unlock()

	f.goHome()
	return nil
}

// ForgotPassword shows the password reset screen
func (f *LoginForm) ForgotPassword() {
	f.nav.NavigateTo(services.ScreenForgotPassword)
}

// Register shows the registration screen
func (f *LoginForm) Register() {
	f.nav.NavigateTo(services.ScreenRegister)
}

// State returns a copy of the form state
func (f *LoginForm) State() LoginFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func errorMessage(err error) string {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
