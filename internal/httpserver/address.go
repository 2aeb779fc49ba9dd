package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"savora-storefront/internal/address"
	"savora-storefront/internal/middleware"
	"savora-storefront/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	saved, err := s.addresses.Saved(r.Context(), shopper)
	if err != nil {
		utils.WriteJSONError(w, "could not load addresses", http.StatusInternalServerError)
		return
	}
	if saved == nil {
		saved = []address.Address{}
	}
	utils.WriteJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSaveAddress(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	var addr address.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := s.addresses.Save(r.Context(), shopper, addr)
	switch {
	case errors.Is(err, address.ErrDuplicate):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, address.ErrInvalid):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		utils.WriteJSONError(w, "could not save address", http.StatusInternalServerError)
	default:
		utils.WriteJSON(w, http.StatusCreated, saved)
	}
}

func (s *Server) handleGetSelected(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	sel, err := s.addresses.Selected(r.Context(), shopper)
	if err != nil {
		utils.WriteJSONError(w, "could not load selected address", http.StatusInternalServerError)
		return
	}
	if sel == nil {
		utils.WriteJSON(w, http.StatusOK, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sel)
}

func (s *Server) handleSetSelected(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	var addr address.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.addresses.SetSelected(r.Context(), shopper, addr); err != nil {
		if errors.Is(err, address.ErrInvalid) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.WriteJSONError(w, "could not set address", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenameAddress(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = s.addresses.Rename(r.Context(), shopper, id, body.Name)
	switch {
	case errors.Is(err, address.ErrEmptyName):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, address.ErrNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case err != nil:
		utils.WriteJSONError(w, "could not rename address", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	err = s.addresses.Delete(r.Context(), shopper, id)
	switch {
	case errors.Is(err, address.ErrNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case err != nil:
		utils.WriteJSONError(w, "could not delete address", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	err = s.addresses.SetDefault(r.Context(), shopper, id)
	switch {
	case errors.Is(err, address.ErrNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case err != nil:
		utils.WriteJSONError(w, "could not set default address", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGeoSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.WriteJSONError(w, "missing query", http.StatusBadRequest)
		return
	}

	res, err := s.geo.Search(r.Context(), query)
	if err != nil {
		// Lookup failure leaves prior selection untouched; the customer just
		// sees a message and can retry.
		utils.WriteJSONError(w, "location lookup is unavailable right now", http.StatusBadGateway)
		return
	}
	if res == nil {
		utils.WriteJSONError(w, "no location found for that search", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleGeoReverse(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.WriteJSONError(w, "lat and lng are required", http.StatusBadRequest)
		return
	}

	res, err := s.geo.Reverse(r.Context(), lat, lng)
	if err != nil {
		utils.WriteJSONError(w, "location lookup is unavailable right now", http.StatusBadGateway)
		return
	}
	if res == nil {
		utils.WriteJSONError(w, "no address found at that location", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
