package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"journal/internal/config"
	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	"journal/internal/domain/services"
	"journal/internal/httputil"
	journalService "journal/internal/service/journal"
)

// EditorHandler drives editor sessions over HTTP
type EditorHandler struct {
	registry *journalService.Registry
	staging  *journalService.Staging
	logger   *slog.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(registry *journalService.Registry, staging *journalService.Staging, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{registry: registry, staging: staging, logger: logger}
}

// sessionView is returned by every editor endpoint
type sessionView struct {
	SessionID  string               `json:"sessionId"`
	State      journalService.State `json:"state"`
	Notices    []services.Notice    `json:"notices"`
	Navigation string               `json:"navigation"`
	Screen     services.Screen      `json:"screen,omitempty"`
}

func viewOf(s *journalService.Session) sessionView {
	notices, nav := s.Outbox.Drain()
	v := sessionView{
		SessionID: s.ID,
		State:     s.Editor.Snapshot(),
		Notices:   notices,
		Screen:    nav.Screen,
	}
	if nav.Back {
		v.Navigation = "back"
	}
	return v
}

// respond writes the session view, or on err a problem response that still
// carries the session's notices and state
func (h *EditorHandler) respond(w http.ResponseWriter, s *journalService.Session, err error) {
	v := viewOf(s)
	if err == nil {
		httputil.RespondJSON(w, http.StatusOK, v)
		return
	}

	status, detail := errorStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		h.logger.Error("editor operation failed", "session_id", s.ID, "error", err)
	}
	httputil.RespondErrorWithExtras(w, status, detail, map[string]interface{}{
		"sessionId": v.SessionID,
		"state":     v.State,
		"notices":   v.Notices,
	})
}

// session resolves {id} for the calling user
func (h *EditorHandler) session(w http.ResponseWriter, r *http.Request) (*journalService.Session, bool) {
	s, err := h.registry.Get(httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return nil, false
	}
	return s, true
}

type openRequest struct {
	Date string `json:"date"`
}

// Open starts a session on a date
// POST /api/editor
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !parseBody(w, r, &req) {
		return
	}
	key, err := journal.ParseDateKey(req.Date)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.registry.Open(r.Context(), httputil.GetUserID(r), key)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, viewOf(s))
}

// Get returns the session view
// GET /api/editor/{id}
func (h *EditorHandler) Get(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		h.respond(w, s, nil)
	}
}

type loadRequest struct {
	Date    string `json:"date"`
	Discard bool   `json:"discard"`
}

// Load switches the session to another date
// POST /api/editor/{id}/load
func (h *EditorHandler) Load(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req loadRequest
	if !parseBody(w, r, &req) {
		return
	}
	key, err := journal.ParseDateKey(req.Date)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var opts []journalService.LoadOption
	if req.Discard {
		opts = append(opts, journalService.DiscardChanges())
	}
	h.respond(w, s, s.Editor.Load(r.Context(), key, opts...))
}

// Edit enters edit mode
// POST /api/editor/{id}/edit
func (h *EditorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.EnterEditMode()
		h.respond(w, s, nil)
	}
}

type updateRequest struct {
	Title   httputil.OptionalString `json:"title"`
	Content httputil.OptionalString `json:"content"`
}

// Update changes title and/or content; absent fields are left alone and
// null clears a field
// PATCH /api/editor/{id}
func (h *EditorHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if !parseBody(w, r, &req) {
		return
	}

	if title, ok := req.Title.Get(); ok {
		s.Editor.SetTitle(title)
	}
	if content, ok := req.Content.Get(); ok {
		s.Editor.UpdateContent(content)
	}
	h.respond(w, s, nil)
}

// Undo restores the previous content
// POST /api/editor/{id}/undo
func (h *EditorHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.Undo()
		h.respond(w, s, nil)
	}
}

// PickImage stages the multipart "image" field. A request without the field
// is a cancelled pick.
// POST /api/editor/{id}/image
func (h *EditorHandler) PickImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImageBytes+1<<20)
	var fileName, contentType string
	var data []byte

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// cancelled
	case err != nil:
		var maxBytesErr *http.MaxBytesError
		if !errors.As(err, &maxBytesErr) {
			err = &domain.ValidationError{Message: "invalid image upload"}
		}
		h.respond(w, s, err)
		return
	default:
		defer file.Close()
		data, err = io.ReadAll(io.LimitReader(file, config.MaxImageBytes+1))
		if err != nil {
			h.respond(w, s, fmt.Errorf("read upload: %w", err))
			return
		}
		fileName = header.Filename
		contentType = header.Header.Get("Content-Type")
	}

	_, err = s.Editor.PickImage(r.Context(), h.staging.Picker(s.ID, fileName, contentType, data))
	h.respond(w, s, err)
}

// ClearImage removes the entry's image
// DELETE /api/editor/{id}/image
func (h *EditorHandler) ClearImage(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.ClearImage()
		h.respond(w, s, nil)
	}
}

// ViewImage opens the viewer and returns the image location
// GET /api/editor/{id}/image
func (h *EditorHandler) ViewImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	uri, err := s.Editor.ViewImage()
	if err != nil {
		h.respond(w, s, err)
		return
	}

	v := viewOf(s)
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"url":     uri,
		"staged":  v.State.StagedImage != nil,
		"state":   v.State,
		"notices": v.Notices,
	})
}

// CloseImage closes the viewer
// POST /api/editor/{id}/image/close
func (h *EditorHandler) CloseImage(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.CloseImage()
		h.respond(w, s, nil)
	}
}

// Save persists the session's entry
// POST /api/editor/{id}/save
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		_, err := s.Editor.Save(r.Context())
		h.respond(w, s, err)
	}
}

// RequestDelete asks for delete confirmation
// POST /api/editor/{id}/delete
func (h *EditorHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.RequestDelete()
		h.respond(w, s, nil)
	}
}

// ConfirmDelete deletes the entry after a request
// POST /api/editor/{id}/delete/confirm
func (h *EditorHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		h.respond(w, s, s.Editor.ConfirmDelete(r.Context()))
	}
}

// CancelDelete withdraws a delete request
// POST /api/editor/{id}/delete/cancel
func (h *EditorHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Editor.CancelDelete()
		h.respond(w, s, nil)
	}
}

// Close ends the session
// DELETE /api/editor/{id}
func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Close(httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
