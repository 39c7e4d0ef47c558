package importer

import (
	"encoding/json"
	"net/http"

	batch "github.com/00001120-alt/refrigerante/internal/calc/batch"
)

type Handler struct{}

type SizingImportResult struct {
	Count   int                     `json:"count"`
	Skipped int                     `json:"skipped"`
	Items   []batch.SizingBatchItem `json:"items"`
}

// Sizing takes an XLSX or CSV upload and runs every usable row through
// the engine. Item indexes refer to parse order; rows dropped as
// malformed are only counted.
func (h *Handler) Sizing(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reqs, skipped, err := parseUpload(header.Filename, file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	out, err := batch.CalculateSizing(batch.SizingBatchInput{Items: reqs})
	if err != nil {
		http.Error(w, "No usable rows", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SizingImportResult{
		Count:   out.Count,
		Skipped: skipped,
		Items:   out.Items,
	})
}
