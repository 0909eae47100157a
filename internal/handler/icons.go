package handler

import (
	"net/http"
	"strconv"

	"journal/internal/httputil"
	"journal/internal/icons"
)

// IconHandler serves rendered SVG icons
type IconHandler struct {
	registry *icons.Registry
}

// NewIconHandler creates a new icon handler
func NewIconHandler(registry *icons.Registry) *IconHandler {
	return &IconHandler{registry: registry}
}

// GetIcon renders an icon; color, stroke_width and size are optional query parameters
// GET /api/icons/{name}
func (h *IconHandler) GetIcon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := icons.Options{Color: q.Get("color")}

	if v := q.Get("stroke_width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "stroke_width must be a number")
			return
		}
		opts.StrokeWidth = f
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "size must be an integer")
			return
		}
		opts.Size = n
	}

	svg, err := h.registry.Render(r.PathValue("name"), opts)
	if err != nil {
		handleError(w, nil, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}
