package report

import (
	"encoding/json"
	"net/http"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

type Handler struct{}

func (h *Handler) size(w http.ResponseWriter, r *http.Request) (Input, sizing.Result, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Input{}, sizing.Result{}, false
	}
	in, err := input.Sizing.ToInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Input{}, sizing.Result{}, false
	}
	res, err := sizing.SizeLine(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return Input{}, sizing.Result{}, false
	}
	return input, res, true
}

// Generate runs the requested sizing and streams it back as a PDF.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input, res, ok := h.size(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing-report.pdf\"")
	if err := WritePDF(w, input, res); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Export runs the requested sizing and streams it back as a workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.size(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing.xlsx\"")
	if err := WriteXLSX(w, res); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
