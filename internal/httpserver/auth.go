package httpserver

import (
	"encoding/json"
	"net/http"

	"savora-storefront/internal/auth"
	"savora-storefront/internal/middleware"
	"savora-storefront/internal/platform"
	"savora-storefront/internal/utils"
)

// Sessions are keyed by the platform user id, not the anonymous device or ip
// key the login request arrived under. The bearer token the frontend sends on
// every later request resolves to the same key.
func userShopperKey(id string) string {
	return "user:" + id
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Phone == "" || body.Password == "" {
		utils.WriteJSONError(w, "phone and password are required", http.StatusBadRequest)
		return
	}

	creds, err := s.platform.Login(r.Context(), body.Phone, body.Password)
	if err != nil {
		utils.WriteJSONError(w, "invalid phone or password", http.StatusUnauthorized)
		return
	}

	sess := auth.Session{Token: creds.Token, User: creds.User}
	if err := s.sessions.Login(r.Context(), userShopperKey(creds.User.ID), sess); err != nil {
		utils.WriteJSONError(w, "could not store session", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input platform.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Password == "" {
		utils.WriteJSONError(w, "name and password are required", http.StatusBadRequest)
		return
	}
	if !utils.ValidPhone(input.Phone) {
		utils.WriteJSONError(w, "phone must be 10 to 11 digits", http.StatusBadRequest)
		return
	}
	if input.Email != "" && !utils.ValidEmail(input.Email) {
		utils.WriteJSONError(w, "invalid email address", http.StatusBadRequest)
		return
	}

	creds, err := s.platform.Register(r.Context(), input)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sess := auth.Session{Token: creds.Token, User: creds.User}
	if err := s.sessions.Login(r.Context(), userShopperKey(creds.User.ID), sess); err != nil {
		utils.WriteJSONError(w, "could not store session", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	if err := s.sessions.Logout(r.Context(), shopper); err != nil {
		utils.WriteJSONError(w, "could not log out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckPhone(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !utils.ValidPhone(body.Phone) {
		utils.WriteJSONError(w, "phone must be 10 to 11 digits", http.StatusBadRequest)
		return
	}

	exists, err := s.platform.PhoneExists(r.Context(), body.Phone)
	if err != nil {
		utils.WriteJSONError(w, "could not check phone", http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	shopper := middleware.ShopperFrom(r.Context())

	sess, err := s.sessions.Session(r.Context(), shopper)
	if err != nil {
		utils.WriteJSONError(w, "could not load session", http.StatusInternalServerError)
		return
	}
	if sess == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sess.User,
	})
}
