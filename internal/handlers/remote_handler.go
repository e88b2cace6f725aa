package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"freight-backend/internal/cache"
	"freight-backend/internal/remote"

	"github.com/gorilla/mux"
)

// RemoteHandler fronts one auxiliary postgres table with row CRUD. One
// instance per table; when the database is down or unconfigured the client
// is nil and every endpoint answers 503.
type RemoteHandler struct {
	Client *remote.RowClient
}

func NewRemoteHandler(client *remote.RowClient) *RemoteHandler {
	return &RemoteHandler{Client: client}
}

func (h *RemoteHandler) available(w http.ResponseWriter) bool {
	if h.Client == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Remote database not available"})
		return false
	}
	return true
}

func rowID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid row ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// List returns all rows, served from the short-lived redis cache when warm
// GET /api/remote/{table}
func (h *RemoteHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	key := cache.RemoteListKey(h.Client.Table())
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	rows, err := h.Client.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if data, err := json.Marshal(rows); err == nil {
		cache.SetCached(r.Context(), key, data, time.Minute)
	}
	respondJSON(w, http.StatusOK, rows)
}

// Get returns a single row
// GET /api/remote/{table}/{id}
func (h *RemoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}

	row, err := h.Client.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

// Create inserts a row
// POST /api/remote/{table}
func (h *RemoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var payload remote.Row
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.Client.Insert(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	cache.InvalidateKeys(r.Context(), cache.RemoteListKey(h.Client.Table()))
	respondJSON(w, http.StatusCreated, row)
}

// Update overwrites columns of a row
// PUT /api/remote/{table}/{id}
func (h *RemoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}

	var payload remote.Row
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.Client.Update(r.Context(), id, payload)
	if err != nil {
		respondError(w, err)
		return
	}
	cache.InvalidateKeys(r.Context(), cache.RemoteListKey(h.Client.Table()))
	respondJSON(w, http.StatusOK, row)
}

// Delete removes a row
// DELETE /api/remote/{table}/{id}
func (h *RemoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}

	if err := h.Client.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	cache.InvalidateKeys(r.Context(), cache.RemoteListKey(h.Client.Table()))
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
