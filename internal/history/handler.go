package history

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
	repo "github.com/00001120-alt/refrigerante/internal/repo"
)

// DefaultLimit caps history listings unless the query narrows it.
const DefaultLimit = 50

type Handler struct {
	Repo  repo.Repository
	Limit int
}

func (h *Handler) pageLimit(r *http.Request) int {
	limit := h.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	return limit
}

func userID(r *http.Request) (int, bool) {
	idVal := r.Context().Value("userID")
	id, ok := idVal.(int)
	return id, ok && id != 0
}

// SaveResponse is a stored run's id plus the freshly computed result.
type SaveResponse struct {
	ID int `json:"id"`
	sizing.Response
}

// Save recomputes the posted sizing request and stores the engine's own
// result, so history never holds client-fabricated numbers.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req sizing.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := sizing.SizeLine(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	out := sizing.Response{Result: res}
	if res.SelectedIndex < 0 {
		out.Advisory = sizing.AdvisoryNoSelection
	}

	doc, err := json.Marshal(out)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	run := repo.Run{
		Refrigerant: in.Refrigerant,
		LineType:    string(in.Line),
		Result:      doc,
	}
	if res.Selected != nil {
		run.SelectedNominal = res.Selected.Tube.Nominal
	}
	id, err := h.Repo.SaveRun(r.Context(), uid, run)
	if err != nil {
		log.Error("SaveRun: ", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveResponse{ID: id, Response: out})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	runs, err := h.Repo.ListRuns(r.Context(), uid, h.pageLimit(r))
	if err != nil {
		log.Error("ListRuns: ", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repo.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	run, err := h.Repo.GetRun(r.Context(), uid, id)
	if err == sql.ErrNoRows {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("GetRun: ", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	err = h.Repo.DeleteRun(r.Context(), uid, id)
	if err == sql.ErrNoRows {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("DeleteRun: ", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
