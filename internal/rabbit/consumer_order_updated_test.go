package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/live"
	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

type memoryStore struct {
	saved []*model.OrderRecord
	err   error
}

func (s *memoryStore) Save(ctx context.Context, o *model.OrderRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, o)
	return nil
}

func envelope(t *testing.T, rec model.OrderRecord) []byte {
	t.Helper()
	body, err := json.Marshal(OrderUpdatedMessage{
		CorrelationID: "corr-1",
		Exchange:      "order_updated",
		Message:       rec,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func TestHandlePersistsAndBroadcasts(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	hub := live.NewHub()
	sink := hub.Subscribe("ord-5")
	c := NewOrderUpdateConsumer(store, hub, zap.NewNop())

	body := envelope(t, model.OrderRecord{ID: "ord-5", Status: "driver delivering"})
	if err := c.Handle(body); err != nil {
		t.Fatalf("unexpected handle error: %v", err)
	}

	if len(store.saved) != 1 || store.saved[0].ID != "ord-5" {
		t.Fatalf("expected snapshot persisted, got %+v", store.saved)
	}

	select {
	case rec := <-sink.Updates():
		if rec.Status != "driver delivering" {
			t.Errorf("unexpected snapshot status %q", rec.Status)
		}
	default:
		t.Error("expected snapshot fanned out to the open panel")
	}
}

func TestHandleDropsMalformedMessage(t *testing.T) {
	t.Parallel()

	c := NewOrderUpdateConsumer(&memoryStore{}, live.NewHub(), zap.NewNop())
	if err := c.Handle([]byte("{not json")); err == nil {
		t.Error("expected an error for malformed payload")
	}
}

func TestHandleRejectsSnapshotWithoutID(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	c := NewOrderUpdateConsumer(store, live.NewHub(), zap.NewNop())

	if err := c.Handle(envelope(t, model.OrderRecord{Status: "preparing"})); err == nil {
		t.Error("expected an error for snapshot without id")
	}
	if len(store.saved) != 0 {
		t.Error("expected nothing persisted")
	}
}

func TestHandleBroadcastsEvenWhenStoreFails(t *testing.T) {
	t.Parallel()

	store := &memoryStore{err: errors.New("mongo down")}
	hub := live.NewHub()
	sink := hub.Subscribe("ord-5")
	c := NewOrderUpdateConsumer(store, hub, zap.NewNop())

	if err := c.Handle(envelope(t, model.OrderRecord{ID: "ord-5", Status: "preparing"})); err != nil {
		t.Fatalf("store failure must not fail the hand-off: %v", err)
	}

	select {
	case <-sink.Updates():
	default:
		t.Error("expected open panels to still receive the snapshot")
	}
}
