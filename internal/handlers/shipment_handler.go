package handlers

import (
	"encoding/json"
	"net/http"

	"freight-backend/internal/models"
	"freight-backend/internal/services"

	"github.com/gorilla/mux"
)

// ShipmentHandler handles shipment ledger endpoints
type ShipmentHandler struct {
	Shipments *services.ShipmentService
}

func NewShipmentHandler(shipments *services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{Shipments: shipments}
}

// List returns shipments matching the query parameters
// GET /api/shipments?q=&status=&start_date=&end_date=
func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ShipmentFilter{
		Query:     q.Get("q"),
		Status:    models.ShipmentStatus(q.Get("status")),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	shipments, err := h.Shipments.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}

// Get returns a single shipment by id
// GET /api/shipments/{id}
func (h *ShipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.Shipments.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

// Create registers a new shipment
// POST /api/shipments
func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shipment, err := h.Shipments.Create(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, shipment)
}

// Update replaces the editable fields of a shipment
// PUT /api/shipments/{id}
func (h *ShipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shipment, err := h.Shipments.Update(mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

// UpdateStatus moves a shipment through the delivery workflow
// PATCH /api/shipments/{id}/status
func (h *ShipmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shipment, err := h.Shipments.UpdateStatus(mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

// Delete moves a shipment to the trash
// DELETE /api/shipments/{id}
func (h *ShipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Shipments.SoftDelete(mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
