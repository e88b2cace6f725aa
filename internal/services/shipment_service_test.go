package services

import (
	"regexp"
	"testing"

	"freight-backend/internal/models"
	"freight-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipmentService() *ShipmentService {
	return NewShipmentService(store.NewMemStore(), nil)
}

func createRequest(amount float64, date string) *models.CreateShipmentRequest {
	return &models.CreateShipmentRequest{
		Sender:       models.Party{Name: "Ali Hassan", Phone: "07701111111"},
		Receiver:     models.Party{Name: "Sara Ahmed", Phone: "07702222222"},
		Description:  "boxes",
		Amount:       amount,
		Weight:       12.5,
		ReceivedDate: date,
	}
}

func TestCreateShipmentDefaults(t *testing.T) {
	svc := newTestShipmentService()

	sh, err := svc.Create(createRequest(150, "2026-03-10"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, sh.Status)
	assert.Equal(t, models.PaymentCash, sh.PaymentMethod)
	assert.Equal(t, models.PaymentAtSender, sh.PaymentLocation)
	assert.NotEmpty(t, sh.ID)
	assert.Nil(t, sh.DeletedAt)
}

func TestCreateShipmentValidation(t *testing.T) {
	svc := newTestShipmentService()

	cases := []struct {
		name   string
		mutate func(*models.CreateShipmentRequest)
	}{
		{"missing sender name", func(r *models.CreateShipmentRequest) { r.Sender.Name = " " }},
		{"missing receiver name", func(r *models.CreateShipmentRequest) { r.Receiver.Name = "" }},
		{"zero amount", func(r *models.CreateShipmentRequest) { r.Amount = 0 }},
		{"negative weight", func(r *models.CreateShipmentRequest) { r.Weight = -1 }},
		{"missing date", func(r *models.CreateShipmentRequest) { r.ReceivedDate = "" }},
		{"malformed date", func(r *models.CreateShipmentRequest) { r.ReceivedDate = "10/03/2026" }},
		{"unknown status", func(r *models.CreateShipmentRequest) { r.Status = "shipped" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequest(100, "2026-03-10")
			tc.mutate(req)
			_, err := svc.Create(req)
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestTrackingNumberFormat(t *testing.T) {
	svc := newTestShipmentService()

	sh, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^SH\d{11}$`), sh.TrackingNumber)
}

func TestTrackingNumbersUniqueUnderBurst(t *testing.T) {
	svc := newTestShipmentService()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		sh, err := svc.Create(createRequest(100, "2026-03-10"))
		require.NoError(t, err)
		require.False(t, seen[sh.TrackingNumber], "duplicate tracking number %s", sh.TrackingNumber)
		seen[sh.TrackingNumber] = true
	}
}

func TestDeliveredFlipsOnDeliveryToCash(t *testing.T) {
	svc := newTestShipmentService()

	req := createRequest(100, "2026-03-10")
	req.PaymentMethod = models.PaymentOnDelivery
	sh, err := svc.Create(req)
	require.NoError(t, err)
	require.Equal(t, models.PaymentOnDelivery, sh.PaymentMethod)

	// Non-terminal transition keeps the method
	sh, err = svc.UpdateStatus(sh.ID, models.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOnDelivery, sh.PaymentMethod)

	sh, err = svc.UpdateStatus(sh.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCash, sh.PaymentMethod)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc := newTestShipmentService()

	_, err := svc.UpdateStatus("nope", models.StatusDelivered)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	svc := newTestShipmentService()

	sh, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)

	updated, err := svc.Update(sh.ID, &models.UpdateShipmentRequest{
		Sender:          models.Party{Name: "New Sender"},
		Receiver:        models.Party{Name: "New Receiver"},
		Amount:          250,
		Weight:          3,
		Status:          models.StatusDelivered,
		PaymentMethod:   models.PaymentOnDelivery,
		PaymentLocation: models.PaymentAtReceiver,
		ReceivedDate:    "2026-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, sh.ID, updated.ID)
	assert.Equal(t, sh.TrackingNumber, updated.TrackingNumber)
	assert.True(t, sh.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, 250.0, updated.Amount)
	// Coupling applies to full edits too
	assert.Equal(t, models.PaymentCash, updated.PaymentMethod)
}

func TestListFilterAndOrder(t *testing.T) {
	svc := newTestShipmentService()

	older, err := svc.Create(createRequest(100, "2026-01-05"))
	require.NoError(t, err)
	newer, err := svc.Create(createRequest(200, "2026-02-20"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(older.ID, models.StatusDelivered)
	require.NoError(t, err)

	all, err := svc.List(models.ShipmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest received date first")

	delivered, err := svc.List(models.ShipmentFilter{Status: models.StatusDelivered})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, older.ID, delivered[0].ID)

	byQuery, err := svc.List(models.ShipmentFilter{Query: newer.TrackingNumber})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, newer.ID, byQuery[0].ID)

	byRange, err := svc.List(models.ShipmentFilter{StartDate: "2026-02-01", EndDate: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, newer.ID, byRange[0].ID)
}

func TestListQueryMatchesPhoneCaseInsensitive(t *testing.T) {
	svc := newTestShipmentService()

	_, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)

	byPhone, err := svc.List(models.ShipmentFilter{Query: "07702"})
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	byName, err := svc.List(models.ShipmentFilter{Query: "sara"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	none, err := svc.List(models.ShipmentFilter{Query: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSoftDeleteRoundTrip(t *testing.T) {
	svc := newTestShipmentService()

	sh, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(sh.ID))

	primary, err := svc.List(models.ShipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, primary)

	trashed, err := svc.ListDeleted()
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, sh.ID, trashed[0].ID)
	require.NotNil(t, trashed[0].DeletedAt)

	require.NoError(t, svc.Restore(sh.ID))

	primary, err = svc.List(models.ShipmentFilter{})
	require.NoError(t, err)
	require.Len(t, primary, 1)
	assert.Nil(t, primary[0].DeletedAt)

	trashed, err = svc.ListDeleted()
	require.NoError(t, err)
	assert.Empty(t, trashed)
}

func TestSoftDeleteMissingIsNoOp(t *testing.T) {
	svc := newTestShipmentService()

	require.NoError(t, svc.SoftDelete("ghost"))
	require.NoError(t, svc.Restore("ghost"))
}

func TestRestoreAppendsToPrimary(t *testing.T) {
	svc := newTestShipmentService()

	first, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	_, err = svc.Create(createRequest(200, "2026-03-11"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(first.ID))
	require.NoError(t, svc.Restore(first.ID))

	var raw []models.Shipment
	require.NoError(t, svc.Store.Load(store.CollectionShipments, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, first.ID, raw[len(raw)-1].ID, "restored record lands at the end")
}

func TestPurgeRemovesPermanently(t *testing.T) {
	svc := newTestShipmentService()

	sh, err := svc.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(sh.ID))
	require.NoError(t, svc.Purge(sh.ID))

	trashed, err := svc.ListDeleted()
	require.NoError(t, err)
	assert.Empty(t, trashed)

	primary, err := svc.List(models.ShipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, primary)
}
