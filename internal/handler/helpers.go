package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	"journal/internal/httputil"
)

// remoteDetail replaces backend error text in responses
const remoteDetail = "remote operation failed"

// handleError converts domain errors to HTTP responses. Server-side failures
// are logged with the raw error, which never reaches the client.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, detail := errorStatus(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "status", status, "error", err)
	}
	httputil.RespondError(w, status, detail)
}

// errorStatus maps an error to a status code and client-safe detail.
// Remote failures are checked before NotFound since they may wrap one.
func errorStatus(err error) (int, string) {
	var authErr *domain.AuthError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Message
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway, remoteDetail
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// parseBody decodes a JSON body, answering the client itself on failure
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// dateParam reads the {date} path value as a date key
func dateParam(w http.ResponseWriter, r *http.Request) (journal.DateKey, bool) {
	key, err := journal.ParseDateKey(r.PathValue("date"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return key, true
}
