package http

import (
	"net/http"

	"finor/internal/core"
	applog "finor/internal/log"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.settings.Get())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.Settings
	if !readJSON(w, r, &settings) {
		return
	}

	if err := s.settings.Update(r.Context(), settings); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.settings.Get())
}

// handlePrice resolves a category's price with the configured discount
// optionally applied. Unknown categories price at zero, never an error.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	applyDiscount := q.Get("discount") == "true"

	price := s.settings.PriceFor(category, applyDiscount)

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Price resolved",
		applog.FieldCategory, category,
		applog.FieldAmountCents, price.Cents)
	writeJSON(w, r, http.StatusOK, map[string]core.Money{"price": price})
}
