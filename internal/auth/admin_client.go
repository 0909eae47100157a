package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var errUserNotFound = errors.New("user not found")

// AdminClient provides access to the Supabase Admin API for user management.
// It is used by cmd/seed to provision a test intern, not by the sign-in flow.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

// NewAdminClient creates an Admin API client.
// Requires the service role key (SUPABASE_KEY).
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateUserRequest is the payload for creating a new user
type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// AdminUser is a user as returned by the Admin API
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type listUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// CreateUser creates a confirmed user and returns its ID.
func (c *AdminClient) CreateUser(ctx context.Context, email, password string, metadata map[string]interface{}) (string, error) {
	payload, err := json.Marshal(CreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal create request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", payload, http.StatusOK, http.StatusCreated)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	var user AdminUser
	if err := json.Unmarshal(body, &user); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	return user.ID, nil
}

// DeleteUserByEmail finds a user by email and deletes them.
// Deleting a user that doesn't exist is not an error.
func (c *AdminClient) DeleteUserByEmail(ctx context.Context, email string) error {
	userID, err := c.findUserIDByEmail(ctx, email)
	if errors.Is(err, errUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+userID, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (c *AdminClient) findUserIDByEmail(ctx context.Context, email string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", nil, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	var list listUsersResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return "", fmt.Errorf("failed to decode list response: %w", err)
	}

	for _, user := range list.Users {
		if user.Email == email {
			return user.ID, nil
		}
	}
	return "", errUserNotFound
}

// do sends an authenticated Admin API request and returns the body when the
// status is one of want
func (c *AdminClient) do(ctx context.Context, method, path string, payload []byte, want ...int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.supabaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	for _, code := range want {
		if resp.StatusCode == code {
			return body, nil
		}
	}
	return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
}
