package models

import "time"

// ShipmentStatus is the workflow state of a shipment
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusProcessing     ShipmentStatus = "processing"
	StatusInTransit      ShipmentStatus = "in-transit"
	StatusOutForDelivery ShipmentStatus = "out-for-delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
	StatusReturned       ShipmentStatus = "returned"
)

// Valid reports whether s is one of the known workflow states
func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentOnDelivery PaymentMethod = "on-delivery"
)

type PaymentLocation string

const (
	PaymentAtSender   PaymentLocation = "sender"
	PaymentAtReceiver PaymentLocation = "receiver"
)

// Party is one side of a shipment (sender or receiver). Only the name is required.
type Party struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// Location is an optional freeform coordinate tag on a shipment.
// No geospatial semantics are enforced.
type Location struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type Shipment struct {
	ID              string          `json:"id"`
	TrackingNumber  string          `json:"tracking_number"`
	Sender          Party           `json:"sender"`
	Receiver        Party           `json:"receiver"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	Weight          float64         `json:"weight"`
	Status          ShipmentStatus  `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentLocation PaymentLocation `json:"payment_location"`
	ReceivedDate    string          `json:"received_date"` // date-only, YYYY-MM-DD
	Location        *Location       `json:"location,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
}

// CreateShipmentRequest represents the request body for creating a shipment
type CreateShipmentRequest struct {
	Sender          Party           `json:"sender"`
	Receiver        Party           `json:"receiver"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	Weight          float64         `json:"weight"`
	Status          ShipmentStatus  `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentLocation PaymentLocation `json:"payment_location"`
	ReceivedDate    string          `json:"received_date"`
	Location        *Location       `json:"location,omitempty"`
}

// UpdateShipmentRequest replaces the editable fields of a shipment.
// Identity, tracking number and created_at are never touched by an update.
type UpdateShipmentRequest struct {
	Sender          Party           `json:"sender"`
	Receiver        Party           `json:"receiver"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	Weight          float64         `json:"weight"`
	Status          ShipmentStatus  `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentLocation PaymentLocation `json:"payment_location"`
	ReceivedDate    string          `json:"received_date"`
	Location        *Location       `json:"location,omitempty"`
}

// UpdateStatusRequest represents the request body for a status-only update
type UpdateStatusRequest struct {
	Status ShipmentStatus `json:"status"`
}

// ShipmentFilter narrows List results. Query matches case-insensitively
// against tracking number, party names and party phones. Date bounds are
// inclusive and date-only; empty bounds are open.
type ShipmentFilter struct {
	Query     string         `json:"query"`
	Status    ShipmentStatus `json:"status"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
}
