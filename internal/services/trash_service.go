package services

import (
	"fmt"
	"time"

	"freight-backend/internal/metrics"
	"freight-backend/internal/models"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"
)

// TrashRetention is how long soft-deleted records survive before the sweep
// purges them. The retention policy was ambiguous between calendar-month and
// day-count arithmetic; a fixed 30-day window is used for both the purge
// decision and the countdown display so the two can never disagree at the
// boundary.
const TrashRetention = 30 * 24 * time.Hour

// SweepResult reports how many records a sweep purged, for the one-time
// "N items auto-purged" notification.
type SweepResult struct {
	PurgedCount int `json:"purged_count"`
}

// TrashService applies the uniform retention policy to the deleted-shipments
// and deleted-trips collections and fronts restore/purge for the trash views.
type TrashService struct {
	Store     store.Store
	Shipments *ShipmentService
	Trips     *TripService
}

func NewTrashService(s store.Store, shipments *ShipmentService, trips *TripService) *TrashService {
	return &TrashService{Store: s, Shipments: shipments, Trips: trips}
}

// expired reports whether a record deleted at deletedAt is past retention.
func expired(deletedAt *time.Time, now time.Time) bool {
	if deletedAt == nil {
		// Defensive: a trashed record without a deletion stamp should not
		// occur; treat it as still valid rather than destroying it.
		return false
	}
	return !now.Before(deletedAt.Add(TrashRetention))
}

// DaysRemaining returns the whole days left before a deleted record expires,
// rounded up. It returns <= 0 exactly when Sweep would purge the record.
func DaysRemaining(deletedAt time.Time) int {
	remaining := deletedAt.Add(TrashRetention).Sub(timeutil.Now())
	days := remaining / (24 * time.Hour)
	if remaining > days*24*time.Hour {
		days++
	}
	return int(days)
}

// Sweep partitions the named deleted collection into valid and expired
// records, persists only the valid set when anything expired, and reports
// the purge count. Runs on each load of a trash view.
func (s *TrashService) Sweep(collection string) (*SweepResult, error) {
	now := timeutil.Now()

	switch collection {
	case store.CollectionDeletedShipments:
		trashed, err := s.Shipments.ListDeleted()
		if err != nil {
			return nil, err
		}
		valid := trashed[:0:0]
		for _, sh := range trashed {
			if !expired(sh.DeletedAt, now) {
				valid = append(valid, sh)
			}
		}
		purged := len(trashed) - len(valid)
		if purged > 0 {
			if err := s.Store.Save(store.CollectionDeletedShipments, valid); err != nil {
				return nil, err
			}
			metrics.TrashPurgesTotal.WithLabelValues(collection).Add(float64(purged))
		}
		return &SweepResult{PurgedCount: purged}, nil

	case store.CollectionDeletedTrips:
		trashed, err := s.Trips.ListDeleted()
		if err != nil {
			return nil, err
		}
		valid := trashed[:0:0]
		for _, t := range trashed {
			if !expired(t.DeletedAt, now) {
				valid = append(valid, t)
			}
		}
		purged := len(trashed) - len(valid)
		if purged > 0 {
			if err := s.Store.Save(store.CollectionDeletedTrips, valid); err != nil {
				return nil, err
			}
			metrics.TrashPurgesTotal.WithLabelValues(collection).Add(float64(purged))
		}
		return &SweepResult{PurgedCount: purged}, nil
	}

	return nil, fmt.Errorf("unknown trash collection %q", collection)
}

// Restore sends the record back to its owning ledger. No-op on missing ids,
// per the ledger restore semantics.
func (s *TrashService) Restore(collection, id string) error {
	switch collection {
	case store.CollectionDeletedShipments:
		return s.Shipments.Restore(id)
	case store.CollectionDeletedTrips:
		return s.Trips.Restore(id)
	}
	return fmt.Errorf("unknown trash collection %q", collection)
}

// Purge destroys the record permanently via its owning ledger. Irreversible.
func (s *TrashService) Purge(collection, id string) error {
	switch collection {
	case store.CollectionDeletedShipments:
		return s.Shipments.Purge(id)
	case store.CollectionDeletedTrips:
		return s.Trips.Purge(id)
	}
	return fmt.Errorf("unknown trash collection %q", collection)
}

// TrashedShipment decorates a deleted shipment with its countdown for the
// trash view. The countdown is display-only; the purge decision re-derives
// expiry independently at sweep time.
type TrashedShipment struct {
	models.Shipment
	DaysRemaining int `json:"days_remaining"`
}

type TrashedTrip struct {
	models.Trip
	DaysRemaining int `json:"days_remaining"`
}

// ListShipments returns the deleted shipments with countdowns.
func (s *TrashService) ListShipments() ([]TrashedShipment, error) {
	trashed, err := s.Shipments.ListDeleted()
	if err != nil {
		return nil, err
	}
	result := make([]TrashedShipment, 0, len(trashed))
	for _, sh := range trashed {
		item := TrashedShipment{Shipment: sh}
		if sh.DeletedAt != nil {
			item.DaysRemaining = DaysRemaining(*sh.DeletedAt)
		}
		result = append(result, item)
	}
	return result, nil
}

// ListTrips returns the deleted trips with countdowns.
func (s *TrashService) ListTrips() ([]TrashedTrip, error) {
	trashed, err := s.Trips.ListDeleted()
	if err != nil {
		return nil, err
	}
	result := make([]TrashedTrip, 0, len(trashed))
	for _, t := range trashed {
		item := TrashedTrip{Trip: t}
		if t.DeletedAt != nil {
			item.DaysRemaining = DaysRemaining(*t.DeletedAt)
		}
		result = append(result, item)
	}
	return result, nil
}
