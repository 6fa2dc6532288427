package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/contact"
	"github.com/killua200817/Bhopal-Bazaar/internal/dto"
	"github.com/killua200817/Bhopal-Bazaar/internal/live"
	"github.com/killua200817/Bhopal-Bazaar/internal/model"
	"github.com/killua200817/Bhopal-Bazaar/internal/repository"
	"github.com/killua200817/Bhopal-Bazaar/internal/status"
	"github.com/killua200817/Bhopal-Bazaar/internal/view"
)

// OrderStore is the slice of the repository the controller needs.
type OrderStore interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.OrderRecord, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*model.OrderRecord, error)
	Save(ctx context.Context, o *model.OrderRecord) error
}

type OrderController struct {
	Store  OrderStore
	Panels *live.Registry
	Hub    *live.Hub
	Views  *view.Builder
	Log    *zap.Logger

	// IngestToken, when set, is required in the X-Ingest-Token header on
	// the ingest route.
	IngestToken string
}

func NewOrderController(store OrderStore, panels *live.Registry, hub *live.Hub, views *view.Builder, log *zap.Logger) *OrderController {
	return &OrderController{Store: store, Panels: panels, Hub: hub, Views: views, Log: log}
}

// canView: the order's customer, vendor, and driver see it, plus support.
func canView(c *gin.Context, o *model.OrderRecord) bool {
	if c.GetBool("userSupport") {
		return true
	}
	actorID := c.GetString("userID")
	return o.CustomerID == actorID || o.VendorID == actorID ||
		(o.DriverID != "" && o.DriverID == actorID)
}

// POST /orders/:orderId/panel — open a live panel for the order. Ownership
// is checked before any panel state is allocated, so a forbidden open leaves
// nothing behind.
func (ctl *OrderController) OpenPanel(c *gin.Context) {
	orderID := c.Param("orderId")

	o, err := ctl.Store.FindByOrderID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !canView(c, o) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot view another user's order"})
		return
	}

	rec, err := ctl.Panels.Open(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record, facts := rec.Snapshot()
	c.JSON(http.StatusOK, ctl.Views.DetailPanel(record, facts))
}

// GET /orders/:orderId — detail panel. Served from the live copy when a
// panel is open, otherwise from a one-shot store read.
func (ctl *OrderController) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	var (
		record *model.OrderRecord
		facts  live.Facts
	)
	if rec, ok := ctl.Panels.Get(orderID); ok {
		record, facts = rec.Snapshot()
	} else {
		o, err := ctl.Store.FindByOrderID(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		record, facts = o, live.DeriveFacts(o)
	}

	if !canView(c, record) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot view another user's order"})
		return
	}

	c.JSON(http.StatusOK, ctl.Views.DetailPanel(record, facts))
}

// POST /orders/:orderId/refresh — manual refresh of the live copy.
func (ctl *OrderController) RefreshOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	rec, ok := ctl.Panels.Get(orderID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open panel for order"})
		return
	}

	record, _ := rec.Snapshot()
	if !canView(c, record) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot view another user's order"})
		return
	}

	if err := rec.Refresh(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, live.ErrRefreshInFlight):
			c.JSON(http.StatusConflict, dto.RefreshResponse{Refreshed: false})
		case errors.Is(err, live.ErrClosed):
			c.JSON(http.StatusNotFound, gin.H{"error": "no open panel for order"})
		default:
			// Fetch failure keeps the last known record; not an error to
			// the viewer.
			c.JSON(http.StatusOK, dto.RefreshResponse{Refreshed: false})
		}
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{Refreshed: true})
}

// DELETE /orders/:orderId/panel — tear the live panel down. Only the
// order's own viewers may close it; closing an order with no open panel
// succeeds.
func (ctl *OrderController) ClosePanel(c *gin.Context) {
	orderID := c.Param("orderId")

	if rec, ok := ctl.Panels.Get(orderID); ok {
		record, _ := rec.Snapshot()
		if !canView(c, record) {
			c.JSON(http.StatusForbidden, gin.H{"error": "you cannot view another user's order"})
			return
		}
		ctl.Panels.Close(orderID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "panel closed"})
}

// GET /orders/:orderId/contact/:role — resolved contact action for the
// vendor, driver, or support target. 204 when none is offered.
func (ctl *OrderController) GetContact(c *gin.Context) {
	orderID := c.Param("orderId")
	role := contact.Role(c.Param("role"))

	switch role {
	case contact.RoleVendor, contact.RoleDriver, contact.RoleSupport:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown contact role"})
		return
	}

	o, err := ctl.Store.FindByOrderID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canView(c, o) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot view another user's order"})
		return
	}

	action, ok := contact.Resolve(role, o)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, action)
}

func summaries(orders []*model.OrderRecord) []dto.OrderSummary {
	out := make([]dto.OrderSummary, 0, len(orders))
	for _, o := range orders {
		st := status.Parse(o.Status)
		out = append(out, dto.OrderSummary{
			OrderID:     o.ID,
			Status:      st.Wire(),
			StatusLabel: st.Label(),
			StatusColor: st.Color(),
			VendorName:  o.VendorName,
			Total:       "$" + o.Amount.Total.StringFixed(2),
			ItemCount:   o.ItemCount(),
			PlacedOn:    o.CreatedAt.Format("Mon, Jan 2, 2006, 3:04 PM"),
		})
	}
	return out
}

// GET /orders/mine — the caller's orders as list rows.
func (ctl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetString("userID")

	orders, err := ctl.Store.FindByCustomerID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries(orders))
}

// GET /support/orders/:customerId — any customer's orders as list rows, for
// staff. Routed behind the support gate.
func (ctl *OrderController) GetCustomerOrders(c *gin.Context) {
	orders, err := ctl.Store.FindByCustomerID(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries(orders))
}

// POST /orders/ingest — API ingest path for order snapshots, mirroring the
// broker sink for environments without one.
func (ctl *OrderController) IngestOrder(c *gin.Context) {
	if ctl.IngestToken != "" && c.GetHeader("X-Ingest-Token") != ctl.IngestToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ingest token"})
		return
	}

	var req dto.IngestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Order.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id is required"})
		return
	}

	if err := ctl.Store.Save(c.Request.Context(), &req.Order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.Hub.Broadcast(&req.Order)

	c.JSON(http.StatusCreated, gin.H{"message": "snapshot ingested"})
}
