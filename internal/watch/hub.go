package watch

import (
	"github.com/gorilla/websocket"
	"log"
	"net/http"
	"sync"
	"time"
)

// Event notifies that a result file changed on the server.
type Event struct {
	Op   string `json:"op"`
	File string `json:"file"` // Base name, relative to the solve directory
}

const writeTimeout = 5 * time.Second

// Hub broadcasts events to every connected websocket client.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan Event
}

// NewHub builds an empty hub. It accepts connections from any origin.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]chan Event{},
	}
}

// ServeHTTP upgrades the connection and streams events until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[SolveServer] Websocket upgrade failed:", err)
		return
	}
	events := make(chan Event, 16)
	h.mu.Lock()
	h.clients[conn] = events
	h.mu.Unlock()
	log.Println("[SolveServer] Client connected:", conn.RemoteAddr())

	done := make(chan struct{})
	go func() { // Reader: only needed to notice disconnections
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
loop:
	for {
		select {
		case <-done:
			break loop
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				break loop
			}
		}
	}
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
	log.Println("[SolveServer] Client disconnected:", conn.RemoteAddr())
}

// Broadcast queues ev for every client. Slow clients drop events instead of blocking the others.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, events := range h.clients {
		select {
		case events <- ev:
		default:
			log.Println("[SolveServer] Dropping event for slow client", conn.RemoteAddr())
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
