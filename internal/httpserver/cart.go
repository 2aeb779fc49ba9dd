package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"savora-storefront/internal/cart"
	"savora-storefront/internal/middleware"
	"savora-storefront/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	c, err := s.carts.Get(r.Context(), shopper)
	if err != nil {
		utils.WriteJSONError(w, "could not load cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	var line cart.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(line.ID) == "" || line.Price < 0 {
		utils.WriteJSONError(w, "line needs an id and a non-negative price", http.StatusBadRequest)
		return
	}

	c, err := s.carts.AddLine(r.Context(), shopper, line)
	if err != nil {
		utils.WriteJSONError(w, "could not update cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleIncrease(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	c, err := s.carts.IncreaseQuantity(r.Context(), shopper, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "could not update cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleDecrease(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	c, err := s.carts.DecreaseQuantity(r.Context(), shopper, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "could not update cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	c, err := s.carts.RemoveLine(r.Context(), shopper, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "could not update cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	if err := s.carts.Clear(r.Context(), shopper); err != nil {
		utils.WriteJSONError(w, "could not clear cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart.Cart{Lines: []cart.Line{}})
}
