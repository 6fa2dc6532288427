package live

import (
	"sync"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

// Hub fans pushed order snapshots out to the reconcilers of open panels.
// The broker consumer is its only producer; transports never talk to a
// reconciler directly.
type Hub struct {
	mu   sync.Mutex
	subs map[string][]*ChanSource
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]*ChanSource)}
}

// Subscribe registers a new sink for one order. The caller must Unsubscribe
// on teardown, on every exit path.
func (h *Hub) Subscribe(orderID string) *ChanSource {
	s := NewChanSource(8)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[orderID] = append(h.subs[orderID], s)
	return s
}

// Unsubscribe removes the sink and closes its channel. After it returns no
// further snapshot is delivered to that sink.
func (h *Hub) Unsubscribe(orderID string, s *ChanSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.subs[orderID]
	for i, cur := range list {
		if cur == s {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(h.subs, orderID)
			} else {
				h.subs[orderID] = list
			}
			s.Stop()
			return
		}
	}
}

// Broadcast delivers a snapshot to every sink subscribed to its order.
func (h *Hub) Broadcast(rec *model.OrderRecord) {
	if rec == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs[rec.ID] {
		s.Push(rec)
	}
}
