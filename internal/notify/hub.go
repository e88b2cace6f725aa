// Package notify carries change notifications from the ledgers to
// interested parties (cache invalidation, websocket clients). Callers that
// mutate a collection publish its name; subscribers re-fetch what they need.
package notify

import (
	"sync"
	"time"
)

// Event signals that a collection was mutated.
type Event struct {
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

type Hub struct {
	mu   sync.RWMutex
	subs map[int]func(Event)
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(Event))}
}

// Subscribe registers a callback for every published event and returns an
// unsubscribe function. Callbacks run synchronously on the publishing
// goroutine and must not block.
func (h *Hub) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish notifies all subscribers that the named collection changed.
// A nil hub is valid and publishes nothing, so services can run without one.
func (h *Hub) Publish(collection string, at time.Time) {
	if h == nil {
		return
	}
	ev := Event{Collection: collection, At: at}

	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
