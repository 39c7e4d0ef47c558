package chart

import (
	"encoding/json"
	"net/http"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

type Handler struct{}

// Request is a chart call: the sizing request plus which curve and image
// format to render.
type Request struct {
	Sizing sizing.Request `json:"sizing"`
	Kind   string         `json:"kind"`
	Format string         `json:"format"`
}

var contentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

// Generate runs the requested sizing and streams the chart image back.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := req.Format
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, "unknown chart format", http.StatusBadRequest)
		return
	}
	in, err := req.Sizing.ToInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := sizing.SizeLine(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if err := WriteImage(w, FromResult(res), kind, format); err != nil {
		http.Error(w, "Chart generation error", http.StatusInternalServerError)
		return
	}
}
