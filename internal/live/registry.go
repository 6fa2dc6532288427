package live

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry owns one reconciler per open order panel. Opening a panel
// subscribes it to pushed updates; closing it cancels the subscription and
// the consuming goroutine on every path, so nothing leaks and no late
// delivery mutates a discarded instance.
type Registry struct {
	fetcher Fetcher
	hub     *Hub
	log     *zap.Logger

	// pollInterval > 0 adds a store-polling source per panel, for
	// deployments where no broker pushes snapshots.
	pollInterval time.Duration

	mu     sync.Mutex
	panels map[string]*panel
}

type panel struct {
	rec    *Reconciler
	src    *ChanSource
	cancel context.CancelFunc
}

func NewRegistry(fetcher Fetcher, hub *Hub, log *zap.Logger, pollInterval time.Duration) *Registry {
	return &Registry{
		fetcher:      fetcher,
		hub:          hub,
		log:          log,
		pollInterval: pollInterval,
		panels:       make(map[string]*panel),
	}
}

// Open creates (or returns the already open) live panel for an order. The
// initial record is read from the store; afterwards pushed snapshots keep it
// current.
func (g *Registry) Open(ctx context.Context, orderID string) (*Reconciler, error) {
	g.mu.Lock()
	if p, ok := g.panels[orderID]; ok {
		g.mu.Unlock()
		return p.rec, nil
	}
	g.mu.Unlock()

	initial, err := g.fetcher.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.panels[orderID]; ok {
		// Lost the race to another open; the fetched record is discarded.
		return p.rec, nil
	}

	rec := New(initial, g.fetcher, g.log)
	src := g.hub.Subscribe(orderID)
	runCtx, cancel := context.WithCancel(context.Background())
	g.panels[orderID] = &panel{rec: rec, src: src, cancel: cancel}

	go rec.Run(runCtx, src)

	if g.pollInterval > 0 {
		// Polled snapshots enter through the hub so they follow the exact
		// same path as broker pushes.
		poll := NewPollSource(orderID, g.fetcher, g.pollInterval, g.log)
		go poll.Run(runCtx)
		go func() {
			for snap := range poll.Updates() {
				g.hub.Broadcast(snap)
			}
		}()
	}

	g.log.Info("order panel opened", zap.String("order_id", orderID))
	return rec, nil
}

// Get returns the open panel's reconciler, if any.
func (g *Registry) Get(orderID string) (*Reconciler, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.panels[orderID]
	if !ok {
		return nil, false
	}
	return p.rec, true
}

// Close tears the panel down: unsubscribe, stop the run loop, drop the
// reconciler. Idempotent.
func (g *Registry) Close(orderID string) {
	g.mu.Lock()
	p, ok := g.panels[orderID]
	if ok {
		delete(g.panels, orderID)
	}
	g.mu.Unlock()
	if !ok {
		return
	}

	g.hub.Unsubscribe(orderID, p.src)
	p.cancel()
	p.rec.Close()
	g.log.Info("order panel closed", zap.String("order_id", orderID))
}

// CloseAll tears down every open panel, used on shutdown.
func (g *Registry) CloseAll() {
	g.mu.Lock()
	ids := make([]string, 0, len(g.panels))
	for id := range g.panels {
		ids = append(ids, id)
	}
	g.mu.Unlock()
	for _, id := range ids {
		g.Close(id)
	}
}
