package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"freight-backend/internal/models"
	"freight-backend/internal/notify"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"
)

// ShipmentService owns the shipments and deletedShipments collections.
type ShipmentService struct {
	Store store.Store
	Hub   *notify.Hub
}

func NewShipmentService(s store.Store, hub *notify.Hub) *ShipmentService {
	return &ShipmentService{Store: s, Hub: hub}
}

// lastStamp makes creation timestamps strictly increasing within the process
// so ids and tracking numbers stay distinct across a rapid burst of creates.
var lastStamp int64

func nextStamp() int64 {
	for {
		now := timeutil.Now().UnixMilli()
		last := atomic.LoadInt64(&lastStamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastStamp, last, now) {
			return now
		}
	}
}

// newTrackingNumber builds "SH" + 8-digit timestamp suffix + 3 random digits.
func newTrackingNumber(stamp int64) string {
	return fmt.Sprintf("SH%08d%03d", stamp%100000000, rand.Intn(1000))
}

func validateShipmentFields(sender, receiver models.Party, amount, weight float64, receivedDate string, status models.ShipmentStatus) error {
	if strings.TrimSpace(sender.Name) == "" {
		return models.NewValidationError("sender.name", "sender name is required")
	}
	if strings.TrimSpace(receiver.Name) == "" {
		return models.NewValidationError("receiver.name", "receiver name is required")
	}
	if amount <= 0 {
		return models.NewValidationError("amount", "amount must be greater than zero")
	}
	if weight <= 0 {
		return models.NewValidationError("weight", "weight must be greater than zero")
	}
	if strings.TrimSpace(receivedDate) == "" {
		return models.NewValidationError("received_date", "received date is required")
	}
	if _, err := timeutil.ParseDate(receivedDate); err != nil {
		return models.NewValidationError("received_date", "received date must be YYYY-MM-DD")
	}
	if status != "" && !status.Valid() {
		return models.NewValidationError("status", "unknown status")
	}
	return nil
}

// Create validates the intake form, generates id and tracking number, and
// prepends the shipment (most-recent-first ordering).
func (s *ShipmentService) Create(req *models.CreateShipmentRequest) (*models.Shipment, error) {
	if err := validateShipmentFields(req.Sender, req.Receiver, req.Amount, req.Weight, req.ReceivedDate, req.Status); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	location := req.PaymentLocation
	if location == "" {
		location = models.PaymentAtSender
	}

	stamp := nextStamp()
	shipment := models.Shipment{
		ID:              strconv.FormatInt(stamp, 10),
		TrackingNumber:  newTrackingNumber(stamp),
		Sender:          req.Sender,
		Receiver:        req.Receiver,
		Description:     req.Description,
		Amount:          req.Amount,
		Weight:          req.Weight,
		Status:          status,
		PaymentMethod:   method,
		PaymentLocation: location,
		ReceivedDate:    req.ReceivedDate,
		Location:        req.Location,
		CreatedAt:       timeutil.Now(),
	}

	shipments, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}
	shipments = append([]models.Shipment{shipment}, shipments...)
	if err := s.Store.Save(store.CollectionShipments, shipments); err != nil {
		return nil, err
	}

	s.Hub.Publish(store.CollectionShipments, timeutil.Now())
	return &shipment, nil
}

// UpdateStatus moves a shipment to a new workflow state. When the new state
// is delivered and payment was on-delivery, the payment method flips to cash:
// payment is collected at delivery, so the pending method no longer applies.
func (s *ShipmentService) UpdateStatus(id string, status models.ShipmentStatus) (*models.Shipment, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("status", "unknown status")
	}

	shipments, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}

	for i := range shipments {
		if shipments[i].ID != id {
			continue
		}
		shipments[i].Status = status
		if status == models.StatusDelivered && shipments[i].PaymentMethod == models.PaymentOnDelivery {
			shipments[i].PaymentMethod = models.PaymentCash
		}
		if err := s.Store.Save(store.CollectionShipments, shipments); err != nil {
			return nil, err
		}
		s.Hub.Publish(store.CollectionShipments, timeutil.Now())
		updated := shipments[i]
		return &updated, nil
	}
	return nil, models.NewNotFoundError("shipment", id)
}

// Update replaces the editable fields of a shipment. Identity, tracking
// number and created_at are preserved. The delivered/on-delivery coupling
// also applies here so a full edit cannot bypass it.
func (s *ShipmentService) Update(id string, req *models.UpdateShipmentRequest) (*models.Shipment, error) {
	if err := validateShipmentFields(req.Sender, req.Receiver, req.Amount, req.Weight, req.ReceivedDate, req.Status); err != nil {
		return nil, err
	}

	shipments, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}

	for i := range shipments {
		if shipments[i].ID != id {
			continue
		}
		shipments[i].Sender = req.Sender
		shipments[i].Receiver = req.Receiver
		shipments[i].Description = req.Description
		shipments[i].Amount = req.Amount
		shipments[i].Weight = req.Weight
		if req.Status != "" {
			shipments[i].Status = req.Status
		}
		shipments[i].PaymentMethod = req.PaymentMethod
		shipments[i].PaymentLocation = req.PaymentLocation
		shipments[i].ReceivedDate = req.ReceivedDate
		shipments[i].Location = req.Location
		if shipments[i].Status == models.StatusDelivered && shipments[i].PaymentMethod == models.PaymentOnDelivery {
			shipments[i].PaymentMethod = models.PaymentCash
		}
		if err := s.Store.Save(store.CollectionShipments, shipments); err != nil {
			return nil, err
		}
		s.Hub.Publish(store.CollectionShipments, timeutil.Now())
		updated := shipments[i]
		return &updated, nil
	}
	return nil, models.NewNotFoundError("shipment", id)
}

// Get returns a shipment from the primary collection by id.
func (s *ShipmentService) Get(id string) (*models.Shipment, error) {
	shipments, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}
	for i := range shipments {
		if shipments[i].ID == id {
			return &shipments[i], nil
		}
	}
	return nil, models.NewNotFoundError("shipment", id)
}

// SoftDelete moves a shipment to the deleted collection, stamping deleted_at.
// A missing id is a silent no-op: the UI calls this from a row it just
// rendered, so absence means the state is already consistent.
//
// The move is two independent Saves with no atomicity between them.
func (s *ShipmentService) SoftDelete(id string) error {
	shipments, err := s.loadPrimary()
	if err != nil {
		return err
	}

	for i := range shipments {
		if shipments[i].ID != id {
			continue
		}
		deleted := shipments[i]
		now := timeutil.Now()
		deleted.DeletedAt = &now

		trashed, err := s.loadDeleted()
		if err != nil {
			return err
		}
		trashed = append(trashed, deleted)
		if err := s.Store.Save(store.CollectionDeletedShipments, trashed); err != nil {
			return err
		}

		shipments = append(shipments[:i], shipments[i+1:]...)
		if err := s.Store.Save(store.CollectionShipments, shipments); err != nil {
			return err
		}

		s.Hub.Publish(store.CollectionShipments, now)
		s.Hub.Publish(store.CollectionDeletedShipments, now)
		return nil
	}
	return nil
}

// Restore moves a shipment back from the deleted collection, stripping
// deleted_at. Restored records are appended to the primary collection, so
// they do not reappear most-recent-first the way created ones do.
// A missing id is a silent no-op, mirroring SoftDelete.
func (s *ShipmentService) Restore(id string) error {
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

		shipments, err := s.loadPrimary()
		if err != nil {
			return err
		}
		shipments = append(shipments, restored)
		if err := s.Store.Save(store.CollectionShipments, shipments); err != nil {
			return err
		}

		trashed = append(trashed[:i], trashed[i+1:]...)
		if err := s.Store.Save(store.CollectionDeletedShipments, trashed); err != nil {
			return err
		}

		now := timeutil.Now()
		s.Hub.Publish(store.CollectionShipments, now)
		s.Hub.Publish(store.CollectionDeletedShipments, now)
		return nil
	}
	return nil
}

// Purge removes a shipment permanently from the deleted collection.
func (s *ShipmentService) Purge(id string) error {
	trashed, err := s.loadDeleted()
	if err != nil {
		return err
	}
	for i := range trashed {
		if trashed[i].ID != id {
			continue
		}
		trashed = append(trashed[:i], trashed[i+1:]...)
		if err := s.Store.Save(store.CollectionDeletedShipments, trashed); err != nil {
			return err
		}
		s.Hub.Publish(store.CollectionDeletedShipments, timeutil.Now())
		return nil
	}
	return nil
}

// List filters the primary collection in memory and sorts by received date
// descending. See models.ShipmentFilter for the match rules.
func (s *ShipmentService) List(filter models.ShipmentFilter) ([]models.Shipment, error) {
	shipments, err := s.loadPrimary()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]models.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if query != "" && !matchesQuery(sh, query) {
			continue
		}
		if filter.Status != "" && sh.Status != filter.Status {
			continue
		}
		if !timeutil.InDateRange(sh.ReceivedDate, filter.StartDate, filter.EndDate) {
			continue
		}
		result = append(result, sh)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ReceivedDate > result[j].ReceivedDate
	})
	return result, nil
}

// ListDeleted returns the deleted collection as-is.
func (s *ShipmentService) ListDeleted() ([]models.Shipment, error) {
	return s.loadDeleted()
}

func matchesQuery(sh models.Shipment, query string) bool {
	for _, field := range []string{
		sh.TrackingNumber,
		sh.Sender.Name, sh.Receiver.Name,
		sh.Sender.Phone, sh.Receiver.Phone,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (s *ShipmentService) loadPrimary() ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := s.Store.Load(store.CollectionShipments, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (s *ShipmentService) loadDeleted() ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := s.Store.Load(store.CollectionDeletedShipments, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}
