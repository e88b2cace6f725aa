package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight-backend/internal/models"
	"freight-backend/internal/services"
	"freight-backend/internal/store"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShipmentTestRouter() (*mux.Router, *services.ShipmentService) {
	svc := services.NewShipmentService(store.NewMemStore(), nil)
	h := NewShipmentHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/shipments", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/shipments", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/shipments/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/shipments/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/shipments/{id}/status", h.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/shipments/{id}", h.Delete).Methods(http.MethodDelete)
	return r, svc
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateShipmentEndpoint(t *testing.T) {
	r, _ := newShipmentTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/shipments", models.CreateShipmentRequest{
		Sender:       models.Party{Name: "Ali Hassan", Phone: "07701111111"},
		Receiver:     models.Party{Name: "Sara Ahmed", Phone: "07702222222"},
		Amount:       150,
		Weight:       12,
		ReceivedDate: "2026-03-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Shipment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.TrackingNumber)
	assert.Equal(t, models.StatusPending, created.Status)
}

func TestCreateShipmentEndpointValidation(t *testing.T) {
	r, _ := newShipmentTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/shipments", models.CreateShipmentRequest{
		Receiver:     models.Party{Name: "Sara Ahmed"},
		Amount:       150,
		ReceivedDate: "2026-03-05",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, body["field"])
}

func TestCreateShipmentEndpointRejectsBadJSON(t *testing.T) {
	r, _ := newShipmentTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/shipments", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetShipmentEndpointNotFound(t *testing.T) {
	r, _ := newShipmentTestRouter()

	rec := doJSON(t, r, http.MethodGet, "/api/shipments/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, svc := newShipmentTestRouter()

	sh, err := svc.Create(&models.CreateShipmentRequest{
		Sender:       models.Party{Name: "Ali Hassan", Phone: "07701111111"},
		Receiver:     models.Party{Name: "Sara Ahmed", Phone: "07702222222"},
		Amount:       150,
		Weight:       12,
		ReceivedDate: "2026-03-05",
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPatch, "/api/shipments/"+sh.ID+"/status",
		models.UpdateStatusRequest{Status: models.StatusInTransit})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Shipment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, models.StatusInTransit, updated.Status)
}

func TestDeleteShipmentEndpointMovesToTrash(t *testing.T) {
	r, svc := newShipmentTestRouter()

	sh, err := svc.Create(&models.CreateShipmentRequest{
		Sender:       models.Party{Name: "Ali Hassan", Phone: "07701111111"},
		Receiver:     models.Party{Name: "Sara Ahmed", Phone: "07702222222"},
		Amount:       150,
		Weight:       12,
		ReceivedDate: "2026-03-05",
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodDelete, "/api/shipments/"+sh.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/shipments/"+sh.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	deleted, err := svc.ListDeleted()
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, sh.ID, deleted[0].ID)
}
