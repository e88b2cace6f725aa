package handlers

import (
	"encoding/json"
	"net/http"

	"freight-backend/internal/middleware"
	"freight-backend/internal/models"
	"freight-backend/internal/services"

	"github.com/gorilla/mux"
)

// UserHandler handles account management endpoints (admin only)
type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// List returns all accounts
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List()
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Redacted()
	}
	respondJSON(w, http.StatusOK, out)
}

// Create adds a new account
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Create(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user.Redacted())
}

// Delete removes an account. Deleting your own account is rejected.
// DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Users.Delete(mux.Vars(r)["id"], requesterID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
