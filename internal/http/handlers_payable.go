package http

import (
	"net/http"

	"finor/internal/core"
)

func (s *Server) handleListPayables(w http.ResponseWriter, r *http.Request) {
	showPaid := r.URL.Query().Get("paid") == "true"
	writeJSON(w, r, http.StatusOK, s.payables.List(showPaid))
}

func (s *Server) handleCreatePayables(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description   string           `json:"description"`
		IsFixed       bool             `json:"isFixed"`
		Amount        core.Money       `json:"amount"`
		StartDate     core.Date        `json:"startDate"`
		Count         int              `json:"count"`
		Periodicity   core.Periodicity `json:"periodicity"`
		MarkFirstPaid bool             `json:"markFirstPaid"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	batch, err := s.payables.CreateBatch(r.Context(), core.RecurrenceTemplate{
		Description:   req.Description,
		IsFixed:       req.IsFixed,
		Amount:        req.Amount,
		StartDate:     req.StartDate,
		Count:         req.Count,
		Periodicity:   req.Periodicity,
		MarkFirstPaid: req.MarkFirstPaid,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, batch)
}

func (s *Server) handleTogglePayable(w http.ResponseWriter, r *http.Request) {
	p, err := s.payables.ToggleStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleDeletePayable(w http.ResponseWriter, r *http.Request) {
	if err := s.payables.Delete(r.Context(), r.PathValue("id"), confirmed(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
