package live

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

// Source is a subscription delivering order snapshots for one order. The
// reconciler does not care about the transport: the broker-backed source and
// the polling fallback both satisfy it.
type Source interface {
	Updates() <-chan *model.OrderRecord
}

// ChanSource adapts a plain channel to a Source. The broker consumer feeds
// one of these per open panel; tests do too.
type ChanSource struct {
	ch chan *model.OrderRecord
}

func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{ch: make(chan *model.OrderRecord, buffer)}
}

func (s *ChanSource) Updates() <-chan *model.OrderRecord { return s.ch }

// Push hands a snapshot to the subscriber, dropping it when the buffer is
// full. A panel that cannot keep up only ever misses intermediate snapshots,
// and the next one supersedes them anyway.
func (s *ChanSource) Push(rec *model.OrderRecord) {
	select {
	case s.ch <- rec:
	default:
	}
}

// Stop closes the channel, ending any Run loop consuming it.
func (s *ChanSource) Stop() { close(s.ch) }

// PollSource is the fallback subscription for deployments without a broker:
// it re-reads the order store on a fixed interval and emits each result as a
// pushed snapshot.
type PollSource struct {
	orderID  string
	fetcher  Fetcher
	interval time.Duration
	log      *zap.Logger
	ch       chan *model.OrderRecord
}

func NewPollSource(orderID string, fetcher Fetcher, interval time.Duration, log *zap.Logger) *PollSource {
	return &PollSource{
		orderID:  orderID,
		fetcher:  fetcher,
		interval: interval,
		log:      log,
		ch:       make(chan *model.OrderRecord, 1),
	}
}

func (p *PollSource) Updates() <-chan *model.OrderRecord { return p.ch }

// Run polls until the context is cancelled, then closes the channel. Fetch
// errors are logged and skipped; the subscriber simply sees no update.
func (p *PollSource) Run(ctx context.Context) {
	defer close(p.ch)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rec, err := p.fetcher.GetOrder(ctx, p.orderID)
			if err != nil {
				p.log.Warn("poll fetch failed",
					zap.String("order_id", p.orderID),
					zap.Error(err))
				continue
			}
			select {
			case p.ch <- rec:
			case <-ctx.Done():
				return
			}
		}
	}
}
