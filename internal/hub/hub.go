// Package hub exposes the simulation to read-only websocket observers.
// Observers receive a JSON snapshot per tick; they never send commands,
// and a slow observer is dropped rather than allowed to stall the
// broadcast.
package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"puppet-master/sim/logging"
)

const (
	writeWait      = 5 * time.Second
	sendBufferSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans simulation snapshots out to connected observers.
type Hub struct {
	mu        sync.Mutex
	clients   map[*client]struct{}
	publisher logging.Publisher
}

func New(publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		clients:   make(map[*client]struct{}),
		publisher: publisher,
	}
}

// ServeWS upgrades an HTTP request into an observer connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Broadcast serializes the snapshot once and queues it to every observer.
// Observers whose send buffer is full are disconnected.
func (h *Hub) Broadcast(snapshot any) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
	h.mu.Unlock()
}

// ObserverCount reports the number of connected observers.
func (h *Hub) ObserverCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// readLoop exists only to notice the peer going away; inbound payloads
// are discarded.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
