package handler

import (
	"net/http"

	"journal/internal/httputil"
)

// HealthHandler reports liveness and the configured backends
type HealthHandler struct {
	documentStore string
	blobStore     string
}

// NewHealthHandler creates a health handler
func NewHealthHandler(documentStore, blobStore string) *HealthHandler {
	return &HealthHandler{documentStore: documentStore, blobStore: blobStore}
}

// HealthCheck returns the service status
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":         "ok",
		"document_store": h.documentStore,
		"blob_store":     h.blobStore,
	})
}
