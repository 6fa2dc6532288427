// dto.go
package dto

import "github.com/killua200817/Bhopal-Bazaar/internal/model"

// IngestOrderRequest carries one whole order snapshot through the API ingest
// path, mirroring what the broker consumer receives.
type IngestOrderRequest struct {
	Order model.OrderRecord `json:"order" binding:"required"`
}

// RefreshResponse reports the outcome of a manual refresh. A failed fetch is
// not an error to the caller, just the absence of an update.
type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

// OrderSummary is one row in a customer's order list.
type OrderSummary struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
	VendorName  string `json:"vendorName"`
	Total       string `json:"total"`
	ItemCount   int    `json:"itemCount"`
	PlacedOn    string `json:"placedOn"`
}
