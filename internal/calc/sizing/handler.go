package sizing

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Handler struct{}

// Request is the wire form of a sizing call. The line type arrives as a
// free string and is normalized through ParseLineType.
type Request struct {
	Refrigerant        string  `json:"refrigerant"`
	LineType           string  `json:"line_type"`
	CapacityBTUH       float64 `json:"capacity_btu_h"`
	EquivalentLengthFt float64 `json:"equivalent_length_ft"`
	VerticalRiseFt     float64 `json:"vertical_rise_ft"`
	EvaporatingTempF   float64 `json:"evaporating_temp_f"`
	CondensingTempF    float64 `json:"condensing_temp_f"`
	LiquidTempF        float64 `json:"liquid_temp_f"`
}

// ToInput validates the request fields the engine does not re-check and
// returns the engine input.
func (r Request) ToInput() (Input, error) {
	line, err := ParseLineType(r.LineType)
	if err != nil {
		return Input{}, err
	}
	if r.CapacityBTUH <= 0 {
		return Input{}, fmt.Errorf("capacity must be positive, got %.2f BTU/h", r.CapacityBTUH)
	}
	if r.VerticalRiseFt < 0 {
		return Input{}, fmt.Errorf("vertical rise cannot be negative, got %.2f ft", r.VerticalRiseFt)
	}
	return Input{
		Refrigerant:        r.Refrigerant,
		Line:               line,
		CapacityBTUH:       r.CapacityBTUH,
		EquivalentLengthFt: r.EquivalentLengthFt,
		VerticalRiseFt:     r.VerticalRiseFt,
		EvaporatingTempF:   r.EvaporatingTempF,
		CondensingTempF:    r.CondensingTempF,
		LiquidTempF:        r.LiquidTempF,
	}, nil
}

// Response wraps the engine result with the advisory callers show when no
// stocked size qualifies.
type Response struct {
	Result
	Advisory string `json:"advisory,omitempty"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := SizeLine(in)
	if err != nil {
		// Unsupported refrigerant or a bad property row: blocking for
		// this request, nothing partial to show.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	out := Response{Result: res}
	if res.SelectedIndex < 0 {
		out.Advisory = AdvisoryNoSelection
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) Refrigerants(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Refrigerants())
}

func (h *Handler) Tubes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CopperTubes())
}
