// Package view assembles the order detail panel: one view model carrying
// every presentation fact the panel needs, derived fresh from a snapshot.
// Anything optional that is absent renders as an explicit "N/A", never as a
// zero that could read as a real value.
package view

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/contact"
	"github.com/killua200817/Bhopal-Bazaar/internal/live"
	"github.com/killua200817/Bhopal-Bazaar/internal/model"
	"github.com/killua200817/Bhopal-Bazaar/internal/route"
	"github.com/killua200817/Bhopal-Bazaar/internal/status"
)

// RouteRenderer draws the visual path between the two endpoints. It is an
// external collaborator; this package only decides whether to invoke it.
type RouteRenderer interface {
	Render(source, destination route.Endpoint) (json.RawMessage, error)
}

const dateLayout = "Mon, Jan 2, 2006, 3:04 PM"

// DetailPanel is the rendered order panel.
type DetailPanel struct {
	OrderID           string             `json:"orderId"`
	Status            StatusBadge        `json:"status"`
	PlacedOn          string             `json:"placedOn"`
	Total             string             `json:"total"`
	ItemCount         int                `json:"itemCount"`
	EstimatedDelivery string             `json:"estimatedDelivery"`
	Progress          *ProgressBlock     `json:"progress,omitempty"`
	Route             *RouteBlock        `json:"route,omitempty"`
	DeliverTo         PartyBlock         `json:"deliverTo"`
	Vendor            PartyBlock         `json:"vendor"`
	Driver            *DriverBlock       `json:"driver,omitempty"`
	Items             []ItemRow          `json:"items"`
	Payment           PaymentBlock       `json:"payment"`
	Instructions      string             `json:"specialInstructions,omitempty"`
	Cancellation      *CancellationBlock `json:"cancellation,omitempty"`
	Contacts          []ContactControl   `json:"contacts"`
}

type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Value string `json:"value"`
}

type ProgressBlock struct {
	Percent int    `json:"percent"`
	Caption string `json:"caption,omitempty"`
}

type RouteBlock struct {
	Map      json.RawMessage `json:"map,omitempty"`
	Distance string          `json:"distance"`
	ETA      string          `json:"estimatedTime"`
}

type PartyBlock struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type DriverBlock struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type ItemRow struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode,omitempty"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type PaymentBlock struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	ServiceFee  string `json:"serviceFee"`
	Tax         string `json:"tax"`
	Tip         string `json:"tip,omitempty"`
	Total       string `json:"total"`
	Reference   string `json:"reference"`
}

type CancellationBlock struct {
	Reason        string `json:"reason,omitempty"`
	CancelledOn   string `json:"cancelledOn"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	PaymentNote   string `json:"paymentNote,omitempty"`
}

type ContactControl struct {
	Role   contact.Role   `json:"role"`
	Action contact.Action `json:"action"`
}

// Builder assembles detail panels. The renderer may be nil, in which case
// the route block carries only distance/ETA text.
type Builder struct {
	renderer RouteRenderer
	log      *zap.Logger
}

func NewBuilder(renderer RouteRenderer, log *zap.Logger) *Builder {
	return &Builder{renderer: renderer, log: log}
}

// DetailPanel builds the panel for one snapshot and its derived facts.
func (b *Builder) DetailPanel(o *model.OrderRecord, facts live.Facts) DetailPanel {
	p := DetailPanel{
		OrderID: o.ID,
		Status: StatusBadge{
			Label: facts.Label,
			Color: facts.Color,
			Value: facts.Status.Wire(),
		},
		PlacedOn:          formatTime(&o.CreatedAt),
		Total:             money(o.Amount.Total),
		ItemCount:         o.ItemCount(),
		EstimatedDelivery: formatTime(o.EstimatedDelivery),
		DeliverTo: PartyBlock{
			Name:     o.CustomerName,
			Location: o.CustomerLocation,
			Phone:    contact.FormatPhone(o.CustomerPhone),
			Email:    o.CustomerEmail,
		},
		Vendor: PartyBlock{
			Name:     o.VendorName,
			Location: o.VendorLocation,
			Phone:    contact.FormatPhone(o.VendorPhone),
			Email:    o.VendorEmail,
		},
		Items:        b.items(o),
		Payment:      b.payment(o),
		Instructions: o.SpecialInstructions,
	}

	if facts.Active {
		p.Progress = &ProgressBlock{Percent: facts.Progress, Caption: facts.Caption}
	}

	if facts.ShowRoute {
		p.Route = b.routeBlock(o)
	}

	if o.DriverAssigned() &&
		(facts.Status == status.PickingUp || facts.Status == status.Delivering) {
		name := o.DriverName
		if name == "" {
			name = "Driver"
		}
		p.Driver = &DriverBlock{Name: name, Phone: contact.FormatPhone(o.DriverPhone)}
	}

	if facts.Status == status.Cancelled {
		p.Cancellation = b.cancellation(o)
	}

	p.Contacts = b.contacts(o, facts)

	return p
}

func (b *Builder) routeBlock(o *model.OrderRecord) *RouteBlock {
	block := &RouteBlock{
		Distance: route.FormatDistance(o.DeliveryInfo),
		ETA:      route.FormatETA(o.DeliveryInfo),
	}
	if b.renderer == nil {
		return block
	}

	source, destination := route.Endpoints(o)
	payload, err := b.renderer.Render(source, destination)
	if err != nil {
		// The panel survives without the map; distance text still shows.
		b.log.Warn("route renderer failed",
			zap.String("order_id", o.ID),
			zap.Error(err))
		return block
	}
	block.Map = payload
	return block
}

func (b *Builder) items(o *model.OrderRecord) []ItemRow {
	rows := make([]ItemRow, 0, len(o.LineItems))
	for _, it := range o.LineItems {
		rows = append(rows, ItemRow{
			Name:     it.Name,
			Barcode:  it.Barcode,
			Quantity: it.Quantity,
			Price:    money(it.Price),
			Total:    money(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))),
		})
	}
	return rows
}

func (b *Builder) payment(o *model.OrderRecord) PaymentBlock {
	block := PaymentBlock{
		Subtotal:    money(o.Amount.Subtotal),
		DeliveryFee: money(o.Amount.DeliveryFee),
		ServiceFee:  money(o.Amount.ServiceFee),
		Tax:         money(o.Amount.Tax),
		Total:       money(o.Amount.Total),
	}
	if o.Amount.Tip != nil && o.Amount.Tip.IsPositive() {
		block.Tip = money(*o.Amount.Tip)
	}
	if o.PaymentIntentID != "" {
		ref := o.PaymentIntentID
		if len(ref) > 8 {
			ref = ref[:8] + "..."
		}
		block.Reference = "Payment ID: " + ref
	} else {
		block.Reference = "Pending payment confirmation"
	}
	return block
}

func (b *Builder) cancellation(o *model.OrderRecord) *CancellationBlock {
	block := &CancellationBlock{
		Reason:        o.CancelledReason,
		CancelledOn:   formatTime(o.CancelledAt),
		PaymentStatus: o.PaymentStatus,
	}
	switch o.PaymentStatus {
	case "":
	case "authorization_released":
		block.PaymentNote = "Payment authorization has been released. No charge will appear on your statement."
	default:
		block.PaymentNote = "Payment status: " + o.PaymentStatus
	}
	return block
}

// contacts lists the actions the panel offers. Vendor and support controls
// only appear while the order is still in flight; the driver control rides
// with the driver block.
func (b *Builder) contacts(o *model.OrderRecord, facts live.Facts) []ContactControl {
	var out []ContactControl
	if facts.Active {
		if a, ok := contact.Resolve(contact.RoleVendor, o); ok {
			out = append(out, ContactControl{Role: contact.RoleVendor, Action: a})
		}
		if a, ok := contact.Resolve(contact.RoleSupport, o); ok {
			out = append(out, ContactControl{Role: contact.RoleSupport, Action: a})
		}
	}
	if o.DriverAssigned() &&
		(facts.Status == status.PickingUp || facts.Status == status.Delivering) {
		if a, ok := contact.Resolve(contact.RoleDriver, o); ok {
			out = append(out, ContactControl{Role: contact.RoleDriver, Action: a})
		}
	}
	return out
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return route.NotAvailable
	}
	return t.Format(dateLayout)
}
