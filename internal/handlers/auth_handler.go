package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"freight-backend/internal/models"
	"freight-backend/internal/services"
)

// AuthHandler handles login
type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Login checks credentials and issues a JWT
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Users.Login(&req)
	if err != nil {
		// Wrong credentials always come back 401, never 400, so the
		// client cannot distinguish unknown user from wrong password
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
