// models.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the tracking projection of one order. The fulfillment
// backend owns it; this service holds read-only snapshots and never writes
// status itself. Any copy in memory is stale the moment it is received.
type OrderRecord struct {
	ID     string `bson:"order_id" json:"id"`
	Status string `bson:"status" json:"status"`

	CustomerID          string       `bson:"customer_id" json:"customerID"`
	CustomerName        string       `bson:"customer_name,omitempty" json:"customerName,omitempty"`
	CustomerEmail       string       `bson:"customer_email,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone       string       `bson:"customer_phone,omitempty" json:"customerPhone,omitempty"`
	CustomerLocation    string       `bson:"customer_location,omitempty" json:"customerLocation,omitempty"`
	CustomerCoordinates *Coordinates `bson:"customer_coordinates,omitempty" json:"customerCoordinates,omitempty"`

	VendorID          string       `bson:"vendor_id" json:"vendorID"`
	VendorName        string       `bson:"vendor_name,omitempty" json:"vendorName,omitempty"`
	VendorEmail       string       `bson:"vendor_email,omitempty" json:"vendorEmail,omitempty"`
	VendorPhone       string       `bson:"vendor_phone,omitempty" json:"vendorPhone,omitempty"`
	VendorLocation    string       `bson:"vendor_location,omitempty" json:"vendorLocation,omitempty"`
	VendorCoordinates *Coordinates `bson:"vendor_coordinates,omitempty" json:"vendorCoordinates,omitempty"`

	// Driver fields stay empty until the backend assigns a driver.
	DriverID    string `bson:"driver_id,omitempty" json:"driverID,omitempty"`
	DriverName  string `bson:"driver_name,omitempty" json:"driverName,omitempty"`
	DriverPhone string `bson:"driver_phone,omitempty" json:"driverPhone,omitempty"`

	LineItems []LineItem `bson:"line_items" json:"lineItems"`
	Amount    Amount     `bson:"amount" json:"amount"`

	CreatedAt         time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt         *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
	EstimatedDelivery *time.Time `bson:"estimated_delivery,omitempty" json:"estimatedDelivery,omitempty"`

	PaymentIntentID string `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	PaymentStatus   string `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`

	CancelledReason string     `bson:"cancelled_reason,omitempty" json:"cancelledReason,omitempty"`
	CancelledAt     *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`

	SpecialInstructions string        `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	DeliveryInfo        *DeliveryInfo `bson:"delivery_info,omitempty" json:"deliveryInfo,omitempty"`
}

// Coordinates is a geocoded point. Both vendor and customer coordinates are
// optional; a route can only be drawn once both are present.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type LineItem struct {
	ItemID   string          `bson:"item_id" json:"itemID"`
	Name     string          `bson:"name" json:"name"`
	Quantity int             `bson:"quantity" json:"quantity"`
	Price    decimal.Decimal `bson:"price" json:"price"`
	Barcode  string          `bson:"barcode,omitempty" json:"barcode,omitempty"`
}

// Amount carries the checkout totals. The backend guarantees
// total = subtotal + tax + serviceFee + deliveryFee + tip; this service
// renders the figures without re-deriving them.
type Amount struct {
	Subtotal    decimal.Decimal  `bson:"subtotal" json:"subtotal"`
	Tax         decimal.Decimal  `bson:"tax" json:"tax"`
	ServiceFee  decimal.Decimal  `bson:"service_fee" json:"serviceFee"`
	DeliveryFee decimal.Decimal  `bson:"delivery_fee" json:"deliveryFee"`
	Tip         *decimal.Decimal `bson:"tip,omitempty" json:"tip,omitempty"`
	Total       decimal.Decimal  `bson:"total" json:"total"`
}

// DeliveryInfo is present only once the backend has computed a delivery path.
type DeliveryInfo struct {
	DistanceInKm    float64  `bson:"distance_in_km" json:"distanceInKm"`
	DistanceInMiles *float64 `bson:"distance_in_miles,omitempty" json:"distanceInMiles,omitempty"`
	EstimatedTime   int      `bson:"estimated_time" json:"estimatedTime"` // minutes
}

func (o *OrderRecord) HasVendorCoordinates() bool {
	return o.VendorCoordinates != nil
}

func (o *OrderRecord) HasCustomerCoordinates() bool {
	return o.CustomerCoordinates != nil
}

func (o *OrderRecord) DriverAssigned() bool {
	return o.DriverID != ""
}

// ItemCount sums line-item quantities for the panel header.
func (o *OrderRecord) ItemCount() int {
	n := 0
	for _, it := range o.LineItems {
		n += it.Quantity
	}
	return n
}
