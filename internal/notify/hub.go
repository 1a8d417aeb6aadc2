// Package notify fans order-change events out to in-process subscribers.
// Events carry only the order ID; every subscriber reconciles by re-fetching
// current state, so duplicate or dropped events are harmless.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event signals that an order changed in some way.
type Event struct {
	OrderID uuid.UUID
}

// Hub is a broadcast registry for order-change subscribers. Subscriber
// channels are buffered; when a subscriber falls behind, events for it are
// dropped rather than blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	logger zerolog.Logger
}

// subscriberBuffer is sized so a briefly-stalled SSE client does not lose
// events during normal load.
const subscriberBuffer = 16

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]chan Event),
		logger: logger.With().Str("component", "notify-hub").Logger(),
	}
}

// Subscribe registers a new subscriber. The returned cancel function removes
// the subscription and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// Publish delivers an event to every current subscriber.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn().
				Int("subscriber", id).
				Str("order_id", ev.OrderID.String()).
				Msg("subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
