package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"journal/internal/domain"
	"journal/internal/domain/models"
	"journal/internal/domain/services"
)

// PasswordClient signs users in with the Supabase password grant.
type PasswordClient struct {
	supabaseURL string
	anonKey     string
	httpClient  *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

var _ services.Authenticator = (*PasswordClient)(nil)

// NewPasswordClient creates a sign-in client using the project's public anon key.
func NewPasswordClient(supabaseURL, anonKey string, logger *slog.Logger) *PasswordClient {
	return &PasswordClient{
		supabaseURL: supabaseURL,
		anonKey:     anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// GoTrue reports errors under different keys depending on the endpoint version
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e errorResponse) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// SignIn exchanges email and password for a credential. Provider rejections
// come back as *domain.AuthError; transport failures as RemoteOperationError.
func (c *PasswordClient) SignIn(ctx context.Context, email, password string) (*models.Credential, error) {
	payload, err := json.Marshal(passwordGrantRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in request: %w", err)
	}

	url := c.supabaseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-in request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Remote("sign in", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Remote("sign in", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, domain.Remote("sign in", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		msg := e.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Debug("sign-in rejected", "status", resp.StatusCode, "message", msg)
		return nil, &domain.AuthError{Message: msg}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, domain.Remote("sign in", fmt.Errorf("decode token response: %w", err))
	}

	cred := &models.Credential{
		User:         models.User{ID: tok.User.ID, Email: tok.User.Email},
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	switch {
	case tok.ExpiresAt > 0:
		cred.ExpiresAt = time.Unix(tok.ExpiresAt, 0)
	case tok.ExpiresIn > 0:
		cred.ExpiresAt = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return cred, nil
}
