package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input (missing title/content, bad date key)
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is lets typed errors match their sentinels with errors.Is()
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRemote       = errors.New("remote operation failed")
)

// Editor state errors. All of them are conflicts with the editor's current state.
var (
	ErrUnsavedChanges       = fmt.Errorf("unsaved changes would be discarded: %w", ErrConflict)
	ErrSaveInProgress       = fmt.Errorf("save already in progress: %w", ErrConflict)
	ErrConfirmationRequired = fmt.Errorf("delete must be requested before it is confirmed: %w", ErrConflict)
	ErrNoImage              = fmt.Errorf("no image uploaded: %w", ErrNotFound)
)

// AuthError is a sign-in rejection from the authentication provider.
// Message is the provider's text and is shown to the user as-is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string   { return e.Message }
func (e *AuthError) StatusCode() int { return http.StatusUnauthorized }

// Is allows errors.Is() to match against ErrUnauthorized
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// RemoteOperationError wraps any failure of the document store, blob store
// or authentication transport.
type RemoteOperationError struct {
	Op  string // e.g. "upload image", "write entry"
	Err error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteOperationError) Unwrap() error   { return e.Err }
func (e *RemoteOperationError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrRemote
func (e *RemoteOperationError) Is(target error) bool {
	return target == ErrRemote
}

// Remote wraps err as a RemoteOperationError unless it is nil or already one.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	var remoteErr *RemoteOperationError
	if errors.As(err, &remoteErr) {
		return err
	}
	return &RemoteOperationError{Op: op, Err: err}
}
