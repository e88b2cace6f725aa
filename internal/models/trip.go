package models

import "time"

// TripShipment is a display snapshot of a shipment attached to a trip.
// Fields are copied from the shipment ledger at attach time and do not
// live-sync if the source shipment later changes. The shipment itself
// stays owned by the shipment ledger.
type TripShipment struct {
	ShipmentID     string  `json:"shipment_id"`
	TrackingNumber string  `json:"tracking_number"`
	SenderName     string  `json:"sender_name"`
	RecipientName  string  `json:"recipient_name"`
	Amount         float64 `json:"amount"`
	DeliveryCost   float64 `json:"delivery_cost"`
}

// AdditionalCosts is the fixed record of named per-trip cost fields.
type AdditionalCosts struct {
	BridgeDelivery        float64 `json:"bridge_delivery"`
	Tickets               float64 `json:"tickets"`
	PorterFees            float64 `json:"porter_fees"`
	EmployeeFees          float64 `json:"employee_fees"`
	PermitFees            float64 `json:"permit_fees"`
	AccommodationExpenses float64 `json:"accommodation_expenses"`
	Other                 float64 `json:"other"`
}

// Sum returns the total of all named cost fields.
func (c AdditionalCosts) Sum() float64 {
	return c.BridgeDelivery + c.Tickets + c.PorterFees + c.EmployeeFees +
		c.PermitFees + c.AccommodationExpenses + c.Other
}

type Trip struct {
	ID              string          `json:"id"`
	SerialNumber    int             `json:"serial_number"`
	Date            string          `json:"date"` // date-only, YYYY-MM-DD
	Shipments       []TripShipment  `json:"shipments"`
	NumberOfPeople  int             `json:"number_of_people"`
	NumberOfBags    int             `json:"number_of_bags"`
	TobaccoRevenue  float64         `json:"tobacco_revenue"`
	OtherRevenue    float64         `json:"other_revenue"`
	AdditionalCosts AdditionalCosts `json:"additional_costs"`
	CreatedAt       time.Time       `json:"created_at"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
}

// TripShipmentInput selects a shipment for a trip and sets its delivery cost.
type TripShipmentInput struct {
	ShipmentID   string  `json:"shipment_id"`
	DeliveryCost float64 `json:"delivery_cost"`
}

// CreateTripRequest represents the request body for creating a trip
type CreateTripRequest struct {
	Date            string              `json:"date"`
	Shipments       []TripShipmentInput `json:"shipments"`
	NumberOfPeople  int                 `json:"number_of_people"`
	NumberOfBags    int                 `json:"number_of_bags"`
	TobaccoRevenue  float64             `json:"tobacco_revenue"`
	OtherRevenue    float64             `json:"other_revenue"`
	AdditionalCosts AdditionalCosts     `json:"additional_costs"`
}

// UpdateTripRequest carries the same fields as create. Serial number and
// created_at of the stored trip are preserved across edits.
type UpdateTripRequest = CreateTripRequest

// TripTotals are derived on every read and never stored.
type TripTotals struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	NetProfit    float64 `json:"net_profit"`
}
