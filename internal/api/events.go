package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/screenglance/screenglance/pkg/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	// sendBuffer is the per-listener event backlog; a listener that falls
	// further behind is dropped.
	sendBuffer = 16
	// writeTimeout bounds a single socket write to a stalled listener
	writeTimeout = 5 * time.Second
)

// Hub fans answer events out to connected WebSocket listeners. Listeners
// are monitoring tools; each gets a buffered send channel drained by its
// own writer goroutine, so Broadcast never blocks on a slow or dead
// connection and the analyze path is never stalled by one.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]chan models.AnswerEvent
}

// NewHub creates an empty event hub
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]chan models.AnswerEvent)}
}

// HandleEvents upgrades GET /events to a WebSocket and streams answer
// events until the client disconnects or stops keeping up.
func (h *Hub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("event listener upgrade failed: %v", err)
		return
	}

	send := make(chan models.AnswerEvent, sendBuffer)
	h.mu.Lock()
	h.conns[conn] = send
	h.mu.Unlock()
	log.Printf("event listener connected (%d total)", h.Listeners())

	go h.writeLoop(conn, send)

	// Read loop only detects disconnect; inbound messages are ignored.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast queues the event for every connected listener. Non-blocking:
// a listener whose backlog is full is dropped on the spot.
func (h *Hub) Broadcast(ev models.AnswerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.conns {
		select {
		case send <- ev:
		default:
			delete(h.conns, conn)
			close(send)
			conn.Close()
		}
	}
}

// Listeners reports the number of connected event listeners
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// writeLoop drains one listener's backlog onto its socket. Exits when the
// send channel closes or a write fails or times out.
func (h *Hub) writeLoop(conn *websocket.Conn, send <-chan models.AnswerEvent) {
	for ev := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			h.drop(conn)
			return
		}
	}
}

// drop removes a listener; safe to call more than once per conn
func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if send, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}
