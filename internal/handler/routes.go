package handler

import "net/http"

// Handlers groups the route handlers of the API server
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Journal *JournalHandler
	Editor  *EditorHandler
	Icons   *IconHandler

	// Files serves locally stored blobs; nil when blobs live elsewhere
	Files http.Handler
}

// Register mounts every route on mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	if h.Auth != nil {
		mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	}

	mux.HandleFunc("GET /api/journals/{date}", h.Journal.GetEntry)
	mux.HandleFunc("PUT /api/journals/{date}", h.Journal.PutEntry)
	mux.HandleFunc("DELETE /api/journals/{date}", h.Journal.DeleteEntry)

	mux.HandleFunc("POST /api/editor", h.Editor.Open)
	mux.HandleFunc("GET /api/editor/{id}", h.Editor.Get)
	mux.HandleFunc("PATCH /api/editor/{id}", h.Editor.Update)
	mux.HandleFunc("DELETE /api/editor/{id}", h.Editor.Close)
	mux.HandleFunc("POST /api/editor/{id}/load", h.Editor.Load)
	mux.HandleFunc("POST /api/editor/{id}/edit", h.Editor.Edit)
	mux.HandleFunc("POST /api/editor/{id}/undo", h.Editor.Undo)
	mux.HandleFunc("POST /api/editor/{id}/image", h.Editor.PickImage)
	mux.HandleFunc("GET /api/editor/{id}/image", h.Editor.ViewImage)
	mux.HandleFunc("DELETE /api/editor/{id}/image", h.Editor.ClearImage)
	mux.HandleFunc("POST /api/editor/{id}/image/close", h.Editor.CloseImage)
	mux.HandleFunc("POST /api/editor/{id}/save", h.Editor.Save)
	mux.HandleFunc("POST /api/editor/{id}/delete", h.Editor.RequestDelete)
	mux.HandleFunc("POST /api/editor/{id}/delete/confirm", h.Editor.ConfirmDelete)
	mux.HandleFunc("POST /api/editor/{id}/delete/cancel", h.Editor.CancelDelete)

	mux.HandleFunc("GET /api/icons/{name}", h.Icons.GetIcon)

	if h.Files != nil {
		mux.Handle("GET /files/images/{name}", h.Files)
	}
}
