package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

// sequenceFetcher serves one status after another, repeating the last.
type sequenceFetcher struct {
	mu   sync.Mutex
	recs []string
	i    int
}

func (f *sequenceFetcher) GetOrder(ctx context.Context, orderID string) (*model.OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := orderFixture(orderID, f.recs[f.i])
	if f.i < len(f.recs)-1 {
		f.i++
	}
	return rec, nil
}

func TestRegistryOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	g := NewRegistry(&stubFetcher{rec: orderFixture("ord-1", "preparing")}, NewHub(), zap.NewNop(), 0)
	defer g.CloseAll()

	first, err := g.Open(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	second, err := g.Open(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	if first != second {
		t.Error("expected one reconciler per open order panel")
	}
}

func TestRegistryOpenPropagatesFetchError(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("order not found")
	g := NewRegistry(&stubFetcher{err: fetchErr}, NewHub(), zap.NewNop(), 0)

	if _, err := g.Open(context.Background(), "ord-404"); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if _, ok := g.Get("ord-404"); ok {
		t.Error("expected no panel after failed open")
	}
}

func TestRegistryPanelReceivesBroadcasts(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	g := NewRegistry(&stubFetcher{rec: orderFixture("ord-1", "preparing")}, hub, zap.NewNop(), 0)
	defer g.CloseAll()

	rec, err := g.Open(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}

	hub.Broadcast(orderFixture("ord-1", "driver delivering"))
	waitFor(t, func() bool {
		_, facts := rec.Snapshot()
		return facts.Progress == 80
	})
}

func TestRegistryCloseStopsUpdates(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	g := NewRegistry(&stubFetcher{rec: orderFixture("ord-1", "preparing")}, hub, zap.NewNop(), 0)

	rec, err := g.Open(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	g.Close("ord-1")
	g.Close("ord-1") // idempotent

	if _, ok := g.Get("ord-1"); ok {
		t.Error("expected panel gone after close")
	}

	before, _ := rec.Snapshot()
	hub.Broadcast(orderFixture("ord-1", "delivered"))
	time.Sleep(20 * time.Millisecond)
	after, _ := rec.Snapshot()
	if before != after {
		t.Error("expected no mutation after panel close")
	}
}

func TestRegistryPollingFeedsPanel(t *testing.T) {
	t.Parallel()

	f := &sequenceFetcher{recs: []string{"preparing", "driver delivering"}}
	g := NewRegistry(f, NewHub(), zap.NewNop(), 10*time.Millisecond)
	defer g.CloseAll()

	rec, err := g.Open(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	if held, _ := rec.Snapshot(); held.Status != "preparing" {
		t.Fatalf("expected initial snapshot, got %s", held.Status)
	}

	// The status advances through polling alone, no broker involved.
	waitFor(t, func() bool {
		held, _ := rec.Snapshot()
		return held.Status == "driver delivering"
	})
}
