package route

import (
	"testing"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

func eligibleOrder() *model.OrderRecord {
	return &model.OrderRecord{
		ID:                  "ord-1",
		Status:              "driver delivering",
		VendorLocation:      "New Market, Bhopal",
		VendorCoordinates:   &model.Coordinates{Latitude: 23.25, Longitude: 77.41},
		CustomerLocation:    "Arera Colony, Bhopal",
		CustomerCoordinates: &model.Coordinates{Latitude: 23.26, Longitude: 77.40},
	}
}

func TestShowRouteRequiresAllThreeConditions(t *testing.T) {
	t.Parallel()

	o := eligibleOrder()
	if !ShowRoute(o) {
		t.Fatal("expected route to show for delivering order with both coordinates")
	}

	// Toggling any one condition off flips the result.
	noVendor := eligibleOrder()
	noVendor.VendorCoordinates = nil
	if ShowRoute(noVendor) {
		t.Error("expected no route without vendor coordinates")
	}

	noCustomer := eligibleOrder()
	noCustomer.CustomerCoordinates = nil
	if ShowRoute(noCustomer) {
		t.Error("expected no route without customer coordinates")
	}

	wrongStatus := eligibleOrder()
	wrongStatus.Status = "waiting for a driver to be assigned"
	if ShowRoute(wrongStatus) {
		t.Error("expected no route before a driver is in motion")
	}
}

func TestShowRouteByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   bool
	}{
		{"pending_payment", false},
		{"preparing", false},
		{"waiting for a driver to be assigned", false},
		{"driver coming to pickup", true},
		{"driver delivering", true},
		{"delivered", true},
		{"cancelled", false},
		{"something_new", false},
	}

	for _, tt := range tests {
		o := eligibleOrder()
		o.Status = tt.status
		if got := ShowRoute(o); got != tt.want {
			t.Errorf("status %q: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	o := eligibleOrder()
	source, destination := Endpoints(o)

	if source.Address != "New Market, Bhopal" || source.Coordinates == nil {
		t.Errorf("unexpected source endpoint: %+v", source)
	}
	if destination.Address != "Arera Colony, Bhopal" || destination.Coordinates == nil {
		t.Errorf("unexpected destination endpoint: %+v", destination)
	}
	if source.Coordinates.Latitude != 23.25 {
		t.Errorf("expected vendor latitude 23.25, got %v", source.Coordinates.Latitude)
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	miles := 4.97
	zeroMiles := 0.0

	tests := []struct {
		name string
		info *model.DeliveryInfo
		want string
	}{
		{"nil info", nil, "N/A"},
		{"km only", &model.DeliveryInfo{DistanceInKm: 8.0}, "8.0 km"},
		{"miles preferred", &model.DeliveryInfo{DistanceInKm: 8.0, DistanceInMiles: &miles}, "5.0 miles"},
		{"zero miles falls back to km", &model.DeliveryInfo{DistanceInKm: 8.0, DistanceInMiles: &zeroMiles}, "8.0 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.info); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{60, "1h 0m"},
		{95, "1h 35m"},
		{125, "2h 5m"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("%d: expected %q, got %q", tt.minutes, tt.want, got)
		}
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()

	if got := FormatETA(nil); got != "N/A" {
		t.Errorf("expected N/A for nil info, got %q", got)
	}
	if got := FormatETA(&model.DeliveryInfo{EstimatedTime: 25}); got != "25 min" {
		t.Errorf("expected 25 min, got %q", got)
	}
}
