package notify

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the connection and forwards every hub event to the
// client until it disconnects. Events are buffered per connection; a client
// that cannot keep up loses the connection rather than blocking publishers.
func (h *Hub) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Notify] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	events := make(chan Event, 16)
	unsubscribe := h.Subscribe(func(ev Event) {
		select {
		case events <- ev:
		default:
			// Client too slow, drop the event; it will resync on next load
		}
	})
	defer unsubscribe()

	// Reader goroutine detects disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
