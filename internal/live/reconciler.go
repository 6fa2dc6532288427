// Package live owns the "live copy" of an order: the locally held, possibly
// stale projection of the backend record shown on an open order panel. One
// Reconciler is created per open panel and torn down with it; nothing else
// mutates the record it holds.
package live

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
	"github.com/killua200817/Bhopal-Bazaar/internal/route"
	"github.com/killua200817/Bhopal-Bazaar/internal/status"
)

var (
	// ErrRefreshInFlight rejects a manual refresh while one is already
	// running. The loading flag is the backpressure that keeps duplicate
	// triggers from overlapping.
	ErrRefreshInFlight = errors.New("refresh already in flight")

	// ErrClosed is returned by Refresh after teardown.
	ErrClosed = errors.New("reconciler closed")
)

// Fetcher is the order store read used by Refresh.
type Fetcher interface {
	GetOrder(ctx context.Context, orderID string) (*model.OrderRecord, error)
}

// Facts are the presentation values derived from the held record. They are
// recomputed on every apply, never cached across updates.
type Facts struct {
	Status    status.Status
	Label     string
	Progress  int
	Color     string
	Caption   string
	Active    bool
	ShowRoute bool
}

// DeriveFacts computes the presentation facts for one snapshot.
func DeriveFacts(o *model.OrderRecord) Facts {
	st := status.Parse(o.Status)
	return Facts{
		Status:    st,
		Label:     st.Label(),
		Progress:  st.Progress(),
		Color:     st.Color(),
		Caption:   st.Caption(),
		Active:    st.Active(),
		ShowRoute: route.ShowRoute(o),
	}
}

// Reconciler holds exactly one current order record and keeps it consistent
// across externally pushed replacements and manual refreshes. Pushes are
// last-write-wins. A refresh result is dropped when anything else applied
// while the fetch was in flight, so a slow fetch can never roll the panel
// back behind a push it already displayed.
type Reconciler struct {
	orderID string
	fetcher Fetcher
	log     *zap.Logger

	mu      sync.Mutex
	current *model.OrderRecord
	facts   Facts
	loading bool
	gen     uint64
	closed  bool
}

// New builds a reconciler seeded with the record the panel opened on.
func New(initial *model.OrderRecord, fetcher Fetcher, log *zap.Logger) *Reconciler {
	return &Reconciler{
		orderID: initial.ID,
		fetcher: fetcher,
		log:     log,
		current: initial,
		facts:   DeriveFacts(initial),
	}
}

// apply overwrites the held record and recomputes facts. Callers hold r.mu.
func (r *Reconciler) apply(rec *model.OrderRecord) {
	r.current = rec
	r.facts = DeriveFacts(rec)
	r.gen++
}

// ApplyPush replaces the held record with an externally pushed snapshot.
// No merge and no timestamp comparison: the push source decides ordering.
// Pushes arriving after Close are dropped.
func (r *Reconciler) ApplyPush(rec *model.OrderRecord) {
	if rec == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.apply(rec)
}

// Refresh fetches a fresh record from the store and applies it. On failure
// the held record and its facts stay untouched and only the loading flag is
// cleared; the caller sees the absence of an update, not a broken panel.
func (r *Reconciler) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	if r.loading {
		r.mu.Unlock()
		return ErrRefreshInFlight
	}
	r.loading = true
	startGen := r.gen
	r.mu.Unlock()

	rec, err := r.fetcher.GetOrder(ctx, r.orderID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.log.Warn("order refresh failed, keeping last known record",
			zap.String("order_id", r.orderID),
			zap.Error(err))
		return err
	}
	if r.closed {
		return ErrClosed
	}
	if r.gen != startGen {
		// Something newer was observed while we were fetching.
		r.log.Debug("refresh result stale, dropped",
			zap.String("order_id", r.orderID))
		return nil
	}
	r.apply(rec)
	return nil
}

// Loading reports whether a manual refresh is in flight.
func (r *Reconciler) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Snapshot returns the held record and its derived facts. The record is
// shared, not copied; callers must treat it as read-only.
func (r *Reconciler) Snapshot() (*model.OrderRecord, Facts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.facts
}

// Run consumes a subscription source until the context is cancelled or the
// source closes its channel, then closes the reconciler. Teardown is
// deterministic: after Run returns, no late delivery can touch this instance.
func (r *Reconciler) Run(ctx context.Context, src Source) {
	defer r.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-src.Updates():
			if !ok {
				return
			}
			r.ApplyPush(rec)
		}
	}
}

// Close marks the reconciler as torn down. Subsequent pushes are dropped and
// refreshes rejected. Safe to call more than once.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}
