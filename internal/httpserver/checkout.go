package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"savora-storefront/internal/checkout"
	"savora-storefront/internal/middleware"
	"savora-storefront/internal/utils"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	var draft checkout.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quote, err := s.checkout.Quote(r.Context(), shopper, draft)
	if err != nil {
		utils.WriteJSONError(w, "could not compute totals", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quote)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	var draft checkout.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.checkout.Submit(r.Context(), shopper, draft)
	if errors.Is(err, checkout.ErrSubmitInFlight) {
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "could not submit order", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if result.State == checkout.StateFailed {
		status = http.StatusUnprocessableEntity
	}
	if len(result.FieldErrors) > 0 {
		status = http.StatusBadRequest
	}
	utils.WriteJSON(w, status, result)
}

// handleConfirmation hands the pending confirmation to the frontend once. A
// revisit after it was consumed redirects home instead of rendering stale data.
func (s *Server) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	conf, ok := s.checkout.Confirmation(shopper)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	utils.WriteJSON(w, http.StatusOK, conf)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, s.stats.Snapshot())
}
