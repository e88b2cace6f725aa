package services

import (
	"testing"

	"freight-backend/internal/models"
	"freight-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTripService() (*TripService, *ShipmentService) {
	memStore := store.NewMemStore()
	shipments := NewShipmentService(memStore, nil)
	trips := NewTripService(memStore, shipments, nil)
	return trips, shipments
}

func tripRequest(date string, lines ...models.TripShipmentInput) *models.CreateTripRequest {
	return &models.CreateTripRequest{
		Date:           date,
		Shipments:      lines,
		NumberOfPeople: 3,
		NumberOfBags:   10,
		TobaccoRevenue: 500,
		OtherRevenue:   120,
	}
}

func TestCreateTripSnapshotsShipments(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(300, "2026-03-10"))
	require.NoError(t, err)

	trip, err := trips.Create(tripRequest("2026-03-12", models.TripShipmentInput{ShipmentID: sh.ID, DeliveryCost: 25}))
	require.NoError(t, err)

	require.Len(t, trip.Shipments, 1)
	line := trip.Shipments[0]
	assert.Equal(t, sh.ID, line.ShipmentID)
	assert.Equal(t, sh.TrackingNumber, line.TrackingNumber)
	assert.Equal(t, "Ali Hassan", line.SenderName)
	assert.Equal(t, "Sara Ahmed", line.RecipientName)
	assert.Equal(t, 300.0, line.Amount)
	assert.Equal(t, 25.0, line.DeliveryCost)
}

func TestTripSnapshotDoesNotLiveSync(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(300, "2026-03-10"))
	require.NoError(t, err)
	trip, err := trips.Create(tripRequest("2026-03-12", models.TripShipmentInput{ShipmentID: sh.ID, DeliveryCost: 25}))
	require.NoError(t, err)

	// Edit the source shipment after attaching
	_, err = shipments.Update(sh.ID, &models.UpdateShipmentRequest{
		Sender:          models.Party{Name: "Changed Sender"},
		Receiver:        models.Party{Name: "Changed Receiver"},
		Amount:          999,
		Weight:          1,
		PaymentMethod:   models.PaymentCash,
		PaymentLocation: models.PaymentAtSender,
		ReceivedDate:    "2026-03-10",
	})
	require.NoError(t, err)

	stored, err := trips.Get(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, stored.Shipments[0].Amount, "snapshot keeps the attach-time amount")
	assert.Equal(t, "Ali Hassan", stored.Shipments[0].SenderName)
}

func TestSerialNumbersIncreaseOverPrimaryTrips(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	line := models.TripShipmentInput{ShipmentID: sh.ID, DeliveryCost: 10}

	first, err := trips.Create(tripRequest("2026-03-11", line))
	require.NoError(t, err)
	second, err := trips.Create(tripRequest("2026-03-12", line))
	require.NoError(t, err)

	assert.Equal(t, 1, first.SerialNumber)
	assert.Equal(t, 2, second.SerialNumber)

	// A trip sitting in the trash no longer reserves its serial
	require.NoError(t, trips.SoftDelete(second.ID))
	third, err := trips.Create(tripRequest("2026-03-13", line))
	require.NoError(t, err)
	assert.Equal(t, 2, third.SerialNumber)
}

func TestCreateTripValidation(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	line := models.TripShipmentInput{ShipmentID: sh.ID, DeliveryCost: 10}

	cases := []struct {
		name   string
		mutate func(*models.CreateTripRequest)
	}{
		{"missing date", func(r *models.CreateTripRequest) { r.Date = "" }},
		{"no shipments", func(r *models.CreateTripRequest) { r.Shipments = nil }},
		{"negative delivery cost", func(r *models.CreateTripRequest) { r.Shipments[0].DeliveryCost = -5 }},
		{"duplicate shipment", func(r *models.CreateTripRequest) { r.Shipments = append(r.Shipments, line) }},
		{"zero people", func(r *models.CreateTripRequest) { r.NumberOfPeople = 0 }},
		{"zero bags", func(r *models.CreateTripRequest) { r.NumberOfBags = 0 }},
		{"negative tobacco revenue", func(r *models.CreateTripRequest) { r.TobaccoRevenue = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tripRequest("2026-03-12", line)
			tc.mutate(req)
			_, err := trips.Create(req)
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestCreateTripRejectsVanishedShipment(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	require.NoError(t, shipments.SoftDelete(sh.ID))

	_, err = trips.Create(tripRequest("2026-03-12", models.TripShipmentInput{ShipmentID: sh.ID}))
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateTripPreservesSerialAndSnapshots(t *testing.T) {
	trips, shipments := newTestTripService()

	shA, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	shB, err := shipments.Create(createRequest(200, "2026-03-10"))
	require.NoError(t, err)

	trip, err := trips.Create(tripRequest("2026-03-12", models.TripShipmentInput{ShipmentID: shA.ID, DeliveryCost: 10}))
	require.NoError(t, err)

	// Change the source shipment so a re-snapshot would be visible
	_, err = shipments.Update(shA.ID, &models.UpdateShipmentRequest{
		Sender:          models.Party{Name: "Renamed"},
		Receiver:        models.Party{Name: "Renamed Too"},
		Amount:          700,
		Weight:          2,
		PaymentMethod:   models.PaymentCash,
		PaymentLocation: models.PaymentAtSender,
		ReceivedDate:    "2026-03-10",
	})
	require.NoError(t, err)

	req := tripRequest("2026-03-13",
		models.TripShipmentInput{ShipmentID: shA.ID, DeliveryCost: 40},
		models.TripShipmentInput{ShipmentID: shB.ID, DeliveryCost: 15},
	)
	updated, err := trips.Update(trip.ID, req)
	require.NoError(t, err)

	assert.Equal(t, trip.SerialNumber, updated.SerialNumber)
	require.Len(t, updated.Shipments, 2)

	// Already-attached line keeps its snapshot, only the cost moves
	assert.Equal(t, 100.0, updated.Shipments[0].Amount)
	assert.Equal(t, "Ali Hassan", updated.Shipments[0].SenderName)
	assert.Equal(t, 40.0, updated.Shipments[0].DeliveryCost)

	// New line is snapshotted fresh
	assert.Equal(t, 200.0, updated.Shipments[1].Amount)
	assert.Equal(t, 15.0, updated.Shipments[1].DeliveryCost)
}

func TestComputeTotals(t *testing.T) {
	trip := &models.Trip{
		Shipments: []models.TripShipment{
			{Amount: 300, DeliveryCost: 25},
			{Amount: 150, DeliveryCost: 10},
		},
		TobaccoRevenue: 500,
		OtherRevenue:   120,
		AdditionalCosts: models.AdditionalCosts{
			BridgeDelivery: 30,
			Tickets:        45,
			PorterFees:     20,
			Other:          5,
		},
	}

	totals := ComputeTotals(trip)
	assert.Equal(t, 1070.0, totals.TotalRevenue) // 300+150+500+120
	assert.Equal(t, 135.0, totals.TotalCost)     // 25+10+30+45+20+5
	assert.Equal(t, 935.0, totals.NetProfit)
}

func TestAvailableShipmentsExcludesDelivered(t *testing.T) {
	trips, shipments := newTestTripService()

	pending, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	delivered, err := shipments.Create(createRequest(200, "2026-03-10"))
	require.NoError(t, err)
	_, err = shipments.UpdateStatus(delivered.ID, models.StatusDelivered)
	require.NoError(t, err)

	available, err := trips.AvailableShipments()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, pending.ID, available[0].ID)
}

func TestTripSoftDeleteRoundTrip(t *testing.T) {
	trips, shipments := newTestTripService()

	sh, err := shipments.Create(createRequest(100, "2026-03-10"))
	require.NoError(t, err)
	trip, err := trips.Create(tripRequest("2026-03-12", models.TripShipmentInput{ShipmentID: sh.ID, DeliveryCost: 10}))
	require.NoError(t, err)

	require.NoError(t, trips.SoftDelete(trip.ID))

	primary, err := trips.List()
	require.NoError(t, err)
	assert.Empty(t, primary)

	trashed, err := trips.ListDeleted()
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	require.NotNil(t, trashed[0].DeletedAt)

	require.NoError(t, trips.Restore(trip.ID))

	primary, err = trips.List()
	require.NoError(t, err)
	require.Len(t, primary, 1)
	assert.Nil(t, primary[0].DeletedAt)
	assert.Equal(t, trip.SerialNumber, primary[0].SerialNumber)
}
