package handlers

import (
	"net/http"

	"freight-backend/internal/services"
	"freight-backend/internal/store"

	"github.com/gorilla/mux"
)

// TrashHandler handles the soft-delete trash views for shipments and trips
type TrashHandler struct {
	Trash *services.TrashService
}

func NewTrashHandler(trash *services.TrashService) *TrashHandler {
	return &TrashHandler{Trash: trash}
}

func trashCollection(r *http.Request) (string, bool) {
	switch mux.Vars(r)["kind"] {
	case "shipments":
		return store.CollectionDeletedShipments, true
	case "trips":
		return store.CollectionDeletedTrips, true
	}
	return "", false
}

// List sweeps expired records and returns the remaining trash with
// countdowns plus the purge count for the one-time notification
// GET /api/trash/{kind}
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	collection, ok := trashCollection(r)
	if !ok {
		http.Error(w, "Unknown trash collection", http.StatusNotFound)
		return
	}

	sweep, err := h.Trash.Sweep(collection)
	if err != nil {
		respondError(w, err)
		return
	}

	response := map[string]interface{}{
		"purged_count": sweep.PurgedCount,
	}
	switch collection {
	case store.CollectionDeletedShipments:
		items, err := h.Trash.ListShipments()
		if err != nil {
			respondError(w, err)
			return
		}
		response["items"] = items
	case store.CollectionDeletedTrips:
		items, err := h.Trash.ListTrips()
		if err != nil {
			respondError(w, err)
			return
		}
		response["items"] = items
	}

	respondJSON(w, http.StatusOK, response)
}

// Restore moves a record back to its ledger
// POST /api/trash/{kind}/{id}/restore
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	collection, ok := trashCollection(r)
	if !ok {
		http.Error(w, "Unknown trash collection", http.StatusNotFound)
		return
	}
	if err := h.Trash.Restore(collection, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// Purge removes a record permanently
// DELETE /api/trash/{kind}/{id}
func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	collection, ok := trashCollection(r)
	if !ok {
		http.Error(w, "Unknown trash collection", http.StatusNotFound)
		return
	}
	if err := h.Trash.Purge(collection, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}
