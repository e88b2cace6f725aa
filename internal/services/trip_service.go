package services

import (
	"strconv"
	"strings"

	"freight-backend/internal/models"
	"freight-backend/internal/notify"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"
)

// TripService owns the trips and deletedTrips collections. Trip shipment
// lines are display snapshots taken from the shipment ledger at attach time.
type TripService struct {
	Store     store.Store
	Shipments *ShipmentService
	Hub       *notify.Hub
}

func NewTripService(s store.Store, shipments *ShipmentService, hub *notify.Hub) *TripService {
	return &TripService{Store: s, Shipments: shipments, Hub: hub}
}

func validateTripFields(req *models.CreateTripRequest) error {
	if strings.TrimSpace(req.Date) == "" {
		return models.NewValidationError("date", "trip date is required")
	}
	if _, err := timeutil.ParseDate(req.Date); err != nil {
		return models.NewValidationError("date", "trip date must be YYYY-MM-DD")
	}
	if len(req.Shipments) == 0 {
		return models.NewValidationError("shipments", "at least one shipment must be selected")
	}
	seen := make(map[string]bool, len(req.Shipments))
	for _, line := range req.Shipments {
		if line.DeliveryCost < 0 {
			return models.NewValidationError("shipments", "delivery cost cannot be negative")
		}
		if seen[line.ShipmentID] {
			return models.NewValidationError("shipments", "shipment is already attached to this trip")
		}
		seen[line.ShipmentID] = true
	}
	if req.NumberOfPeople <= 0 {
		return models.NewValidationError("number_of_people", "number of people must be greater than zero")
	}
	if req.NumberOfBags <= 0 {
		return models.NewValidationError("number_of_bags", "number of bags must be greater than zero")
	}
	if req.TobaccoRevenue < 0 {
		return models.NewValidationError("tobacco_revenue", "tobacco revenue cannot be negative")
	}
	if req.OtherRevenue < 0 {
		return models.NewValidationError("other_revenue", "other revenue cannot be negative")
	}
	return nil
}

// snapshot copies the display fields of the referenced shipment.
func (s *TripService) snapshot(line models.TripShipmentInput) (models.TripShipment, error) {
	sh, err := s.Shipments.Get(line.ShipmentID)
	if err != nil {
		return models.TripShipment{}, models.NewValidationError("shipments", "selected shipment no longer exists")
	}
	return models.TripShipment{
		ShipmentID:     sh.ID,
		TrackingNumber: sh.TrackingNumber,
		SenderName:     sh.Sender.Name,
		RecipientName:  sh.Receiver.Name,
		Amount:         sh.Amount,
		DeliveryCost:   line.DeliveryCost,
	}, nil
}

// Create validates the trip form, assigns the next serial number
// (1 + max over the primary collection), snapshots the selected shipments
// and prepends the trip.
func (s *TripService) Create(req *models.CreateTripRequest) (*models.Trip, error) {
	if err := validateTripFields(req); err != nil {
		return nil, err
	}

	lines := make([]models.TripShipment, 0, len(req.Shipments))
	for _, input := range req.Shipments {
		line, err := s.snapshot(input)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	trips, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}

	serial := 0
	for _, t := range trips {
		if t.SerialNumber > serial {
			serial = t.SerialNumber
		}
	}

	trip := models.Trip{
		ID:              strconv.FormatInt(nextStamp(), 10),
		SerialNumber:    serial + 1,
		Date:            req.Date,
		Shipments:       lines,
		NumberOfPeople:  req.NumberOfPeople,
		NumberOfBags:    req.NumberOfBags,
		TobaccoRevenue:  req.TobaccoRevenue,
		OtherRevenue:    req.OtherRevenue,
		AdditionalCosts: req.AdditionalCosts,
		CreatedAt:       timeutil.Now(),
	}

	trips = append([]models.Trip{trip}, trips...)
	if err := s.Store.Save(store.CollectionTrips, trips); err != nil {
		return nil, err
	}

	s.Hub.Publish(store.CollectionTrips, timeutil.Now())
	return &trip, nil
}

// Update re-validates like Create but preserves the stored serial number and
// created_at. Lines already attached to the trip keep their original
// snapshot (only the delivery cost is taken from the request); lines new to
// the trip are snapshotted fresh.
func (s *TripService) Update(id string, req *models.UpdateTripRequest) (*models.Trip, error) {
	if err := validateTripFields(req); err != nil {
		return nil, err
	}

	trips, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}

	for i := range trips {
		if trips[i].ID != id {
			continue
		}

		existing := make(map[string]models.TripShipment, len(trips[i].Shipments))
		for _, line := range trips[i].Shipments {
			existing[line.ShipmentID] = line
		}

		lines := make([]models.TripShipment, 0, len(req.Shipments))
		for _, input := range req.Shipments {
			if prev, ok := existing[input.ShipmentID]; ok {
				prev.DeliveryCost = input.DeliveryCost
				lines = append(lines, prev)
				continue
			}
			line, err := s.snapshot(input)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}

		trips[i].Date = req.Date
		trips[i].Shipments = lines
		trips[i].NumberOfPeople = req.NumberOfPeople
		trips[i].NumberOfBags = req.NumberOfBags
		trips[i].TobaccoRevenue = req.TobaccoRevenue
		trips[i].OtherRevenue = req.OtherRevenue
		trips[i].AdditionalCosts = req.AdditionalCosts

		if err := s.Store.Save(store.CollectionTrips, trips); err != nil {
			return nil, err
		}
		s.Hub.Publish(store.CollectionTrips, timeutil.Now())
		updated := trips[i]
		return &updated, nil
	}
	return nil, models.NewNotFoundError("trip", id)
}

// Get returns a trip from the primary collection by id.
func (s *TripService) Get(id string) (*models.Trip, error) {
	trips, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].ID == id {
			return &trips[i], nil
		}
	}
	return nil, models.NewNotFoundError("trip", id)
}

// List returns the primary collection, most recent first as stored.
func (s *TripService) List() ([]models.Trip, error) {
	return s.loadPrimary()
}

// ListDeleted returns the deleted collection as-is.
func (s *TripService) ListDeleted() ([]models.Trip, error) {
	return s.loadDeleted()
}

// SoftDelete moves a trip to the deleted collection. Same semantics as the
// shipment ledger: silent no-op on a missing id, two non-atomic Saves.
func (s *TripService) SoftDelete(id string) error {
	trips, err := s.loadPrimary()
	if err != nil {
		return err
	}

	for i := range trips {
		if trips[i].ID != id {
			continue
		}
		deleted := trips[i]
		now := timeutil.Now()
		deleted.DeletedAt = &now

		trashed, err := s.loadDeleted()
		if err != nil {
			return err
		}
		trashed = append(trashed, deleted)
		if err := s.Store.Save(store.CollectionDeletedTrips, trashed); err != nil {
			return err
		}

		trips = append(trips[:i], trips[i+1:]...)
		if err := s.Store.Save(store.CollectionTrips, trips); err != nil {
			return err
		}

		s.Hub.Publish(store.CollectionTrips, now)
		s.Hub.Publish(store.CollectionDeletedTrips, now)
		return nil
	}
	return nil
}

// Restore moves a trip back from the deleted collection, appending to the
// primary collection (not prepending; see the shipment ledger note).
func (s *TripService) Restore(id string) error {
	trashed, err := s.loadDeleted()
	if err != nil {
		return err
	}

	for i := range trashed {
		if trashed[i].ID != id {
			continue
		}
		restored := trashed[i]
		restored.DeletedAt = nil

		trips, err := s.loadPrimary()
		if err != nil {
			return err
		}
		trips = append(trips, restored)
		if err := s.Store.Save(store.CollectionTrips, trips); err != nil {
			return err
		}

		trashed = append(trashed[:i], trashed[i+1:]...)
		if err := s.Store.Save(store.CollectionDeletedTrips, trashed); err != nil {
			return err
		}

		now := timeutil.Now()
		s.Hub.Publish(store.CollectionTrips, now)
		s.Hub.Publish(store.CollectionDeletedTrips, now)
		return nil
	}
	return nil
}

// Purge removes a trip permanently from the deleted collection.
func (s *TripService) Purge(id string) error {
	trashed, err := s.loadDeleted()
	if err != nil {
		return err
	}
	for i := range trashed {
		if trashed[i].ID != id {
			continue
		}
		trashed = append(trashed[:i], trashed[i+1:]...)
		if err := s.Store.Save(store.CollectionDeletedTrips, trashed); err != nil {
			return err
		}
		s.Hub.Publish(store.CollectionDeletedTrips, timeutil.Now())
		return nil
	}
	return nil
}

// ComputeTotals derives the trip's revenue, cost and net profit. Totals are
// re-derived on every read and never stored, so edits to a constituent
// number can never leave a stale total behind.
func ComputeTotals(trip *models.Trip) models.TripTotals {
	var revenue, cost float64
	for _, line := range trip.Shipments {
		revenue += line.Amount
		cost += line.DeliveryCost
	}
	revenue += trip.TobaccoRevenue + trip.OtherRevenue
	cost += trip.AdditionalCosts.Sum()
	return models.TripTotals{
		TotalRevenue: revenue,
		TotalCost:    cost,
		NetProfit:    revenue - cost,
	}
}

// AvailableShipments returns the attachable pool for trip forms: shipments
// not yet delivered. A delivered shipment can no longer be added to a trip
// but stays attached to any trip that already carries it.
func (s *TripService) AvailableShipments() ([]models.Shipment, error) {
	shipments, err := s.Shipments.List(models.ShipmentFilter{})
	if err != nil {
		return nil, err
	}
	available := make([]models.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if sh.Status != models.StatusDelivered {
			available = append(available, sh)
		}
	}
	return available, nil
}

func (s *TripService) loadPrimary() ([]models.Trip, error) {
	var trips []models.Trip
	if err := s.Store.Load(store.CollectionTrips, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *TripService) loadDeleted() ([]models.Trip, error) {
	var trips []models.Trip
	if err := s.Store.Load(store.CollectionDeletedTrips, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}
