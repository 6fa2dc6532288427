package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/live"
	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

// SnapshotStore persists pushed order snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, o *model.OrderRecord) error
}

// OrderUpdateConsumer ingests order snapshots pushed by the fulfillment
// backend: persist first, then fan out to any open panels.
type OrderUpdateConsumer struct {
	Store SnapshotStore
	Hub   *live.Hub
	Log   *zap.Logger
}

func NewOrderUpdateConsumer(store SnapshotStore, hub *live.Hub, log *zap.Logger) *OrderUpdateConsumer {
	return &OrderUpdateConsumer{Store: store, Hub: hub, Log: log}
}

// OrderUpdatedMessage is the broker envelope. The payload is a whole
// OrderRecord snapshot, not a delta.
type OrderUpdatedMessage struct {
	CorrelationID string            `json:"correlation_id"`
	Exchange      string            `json:"exchange"`
	RoutingKey    string            `json:"routing_key"`
	Message       model.OrderRecord `json:"message"`
}

var errMissingOrderID = errors.New("order snapshot without order id")

func (c *OrderUpdateConsumer) Handle(body []byte) error {
	var event OrderUpdatedMessage
	if err := json.Unmarshal(body, &event); err != nil {
		c.Log.Warn("dropping malformed order update", zap.Error(err))
		return err
	}

	rec := event.Message
	if rec.ID == "" {
		c.Log.Warn("dropping order update without id",
			zap.String("correlation_id", event.CorrelationID))
		return errMissingOrderID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Store.Save(ctx, &rec); err != nil {
		// Open panels still get the snapshot; the store catches up on the
		// next push or refresh.
		c.Log.Error("failed to persist order snapshot",
			zap.String("order_id", rec.ID),
			zap.Error(err))
	}

	c.Hub.Broadcast(&rec)

	c.Log.Info("order snapshot applied",
		zap.String("order_id", rec.ID),
		zap.String("status", rec.Status))
	return nil
}
