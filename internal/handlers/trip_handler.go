package handlers

import (
	"encoding/json"
	"net/http"

	"freight-backend/internal/models"
	"freight-backend/internal/services"

	"github.com/gorilla/mux"
)

// TripHandler handles trip ledger endpoints
type TripHandler struct {
	Trips *services.TripService
}

func NewTripHandler(trips *services.TripService) *TripHandler {
	return &TripHandler{Trips: trips}
}

// List returns all trips, most recent first
// GET /api/trips
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Trips.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// Get returns a single trip with its computed totals
// GET /api/trips/{id}
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Trips.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	response := map[string]interface{}{
		"trip":   trip,
		"totals": services.ComputeTotals(trip),
	}
	respondJSON(w, http.StatusOK, response)
}

// Create registers a new trip with its shipment snapshots
// POST /api/trips
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.Trips.Create(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

// Update replaces the editable fields of a trip
// PUT /api/trips/{id}
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.Trips.Update(mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// Delete moves a trip to the trash
// DELETE /api/trips/{id}
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Trips.SoftDelete(mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AvailableShipments returns the shipments eligible for attaching to a trip
// GET /api/trips/available-shipments
func (h *TripHandler) AvailableShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.Trips.AvailableShipments()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}
