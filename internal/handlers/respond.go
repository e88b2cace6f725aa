package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"freight-backend/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps service errors onto HTTP statuses. Validation failures
// are the caller's fault, missing records are 404, everything else is a
// server error and gets logged.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": notFoundErr.Error()})
		return
	}

	log.Printf("[HTTP] internal error: %v", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
