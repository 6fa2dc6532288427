// Package route decides whether the delivery route visualization may render
// and formats the distance/ETA facts shown under it. Rendering itself is an
// external collaborator; this package only answers "should we" and "with
// which endpoints".
package route

import (
	"fmt"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
	"github.com/killua200817/Bhopal-Bazaar/internal/status"
)

// NotAvailable marks a missing optional value. Rendering zero instead would
// read as a real measurement.
const NotAvailable = "N/A"

// Endpoint is one end of the delivery path handed to the external renderer.
type Endpoint struct {
	Address     string             `json:"address"`
	Coordinates *model.Coordinates `json:"coordinates,omitempty"`
}

// ShowRoute reports whether the route visualization should render: both
// endpoints geocoded and a driver in motion or done. A route before pickup
// would be meaningless, and one ungeocoded endpoint makes it undrawable.
func ShowRoute(o *model.OrderRecord) bool {
	if !o.HasVendorCoordinates() || !o.HasCustomerCoordinates() {
		return false
	}
	switch status.Parse(o.Status) {
	case status.PickingUp, status.Delivering, status.Delivered:
		return true
	}
	return false
}

// Endpoints returns the vendor (source) and customer (destination) endpoints
// supplied to the renderer. Call only when ShowRoute is true; addresses may
// still be empty strings.
func Endpoints(o *model.OrderRecord) (source, destination Endpoint) {
	source = Endpoint{Address: o.VendorLocation, Coordinates: o.VendorCoordinates}
	destination = Endpoint{Address: o.CustomerLocation, Coordinates: o.CustomerCoordinates}
	return source, destination
}

// FormatDistance renders the trip distance, preferring miles when the
// backend computed them, else kilometers. Nil info yields NotAvailable.
func FormatDistance(info *model.DeliveryInfo) string {
	if info == nil {
		return NotAvailable
	}
	if info.DistanceInMiles != nil && *info.DistanceInMiles > 0 {
		return fmt.Sprintf("%.1f miles", *info.DistanceInMiles)
	}
	return fmt.Sprintf("%.1f km", info.DistanceInKm)
}

// FormatMinutes renders an ETA in minutes as "N min" under an hour and
// "Hh Mm" above it.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatETA renders the estimated delivery time from the delivery info, or
// NotAvailable when no path has been computed yet.
func FormatETA(info *model.DeliveryInfo) string {
	if info == nil {
		return NotAvailable
	}
	return FormatMinutes(info.EstimatedTime)
}
