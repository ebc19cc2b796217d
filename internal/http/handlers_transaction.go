package http

import (
	"net/http"
	"time"

	"finor/internal/calendar"
	"finor/internal/core"
	"finor/internal/export"
	applog "finor/internal/log"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.transactions.Stats())
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := core.FilterAll
	if v := q.Get("status"); v != "" {
		filter = core.StatusFilter(v)
	}
	order := core.SortDesc
	if v := q.Get("sort"); v != "" {
		order = core.SortOrder(v)
	}

	ts := s.transactions.Filtered(q.Get("search"), filter, order)

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Transactions listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldQuery, r.URL.RawQuery,
		applog.FieldCount, len(ts))
	writeJSON(w, r, http.StatusOK, ts)
}

func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !readJSON(w, r, &t) {
		return
	}

	saved, err := s.transactions.Save(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.transactions.Delete(r.Context(), id, confirmed(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	removed, err := s.transactions.BulkDelete(r.Context(), req.IDs, confirmed(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) handleDebtors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.transactions.Debtors())
}

// handleReceipt returns the per-pix-key split of a transaction's paid
// value plus a prefilled calendar link for the session.
func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := struct {
		Transaction  core.Transaction `json:"transaction"`
		Distribution []core.Share     `json:"distribution"`
		CalendarURL  string           `json:"calendarUrl"`
	}{
		Transaction:  t,
		Distribution: core.Distribution(s.settings.Get().PixKeys, t.PaidValue),
		CalendarURL:  calendar.EventLink(t),
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	data, err := export.Transactions(s.transactions.All())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := "finor-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
