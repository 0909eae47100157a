package handler

import (
	"log/slog"
	"net/http"

	journalSvc "journal/internal/domain/services/journal"
	"journal/internal/httputil"
)

// JournalHandler exposes stateless entry reads and writes
type JournalHandler struct {
	entries journalSvc.EntryService
	logger  *slog.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(entries journalSvc.EntryService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{entries: entries, logger: logger}
}

// entryResponse is the persisted document plus its key
type entryResponse struct {
	DateKey  string `json:"dateKey"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl"`
}

// GetEntry returns the entry for a date
// GET /api/journals/{date}
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := dateParam(w, r)
	if !ok {
		return
	}

	entry, err := h.entries.GetEntry(r.Context(), key)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entryResponse{
		DateKey:  entry.DateKey.String(),
		Title:    entry.Title,
		Content:  entry.Content,
		Date:     entry.Date,
		ImageURL: entry.ImageURL,
	})
}

// PutEntry replaces the entry for a date. Images can only be referenced by URL here.
// PUT /api/journals/{date}
func (h *JournalHandler) PutEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req journalSvc.SaveEntryRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.DateKey = key
	req.Image = nil

	entry, err := h.entries.SaveEntry(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("entry replaced", "date_key", key, "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusOK, entryResponse{
		DateKey:  entry.DateKey.String(),
		Title:    entry.Title,
		Content:  entry.Content,
		Date:     entry.Date,
		ImageURL: entry.ImageURL,
	})
}

// DeleteEntry removes the entry for a date
// DELETE /api/journals/{date}
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := h.entries.DeleteEntry(r.Context(), key); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
