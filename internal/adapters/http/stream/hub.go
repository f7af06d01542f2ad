// Package stream broadcasts post change events to WebSocket clients.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/model"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/metrics"
	"github.com/gorilla/websocket"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins — the API carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Source supplies the hub with the current collection for connect-time
// snapshots and with the stream of changes to broadcast.
type Source interface {
	Posts(ctx context.Context) []post.Post
	Changes(ctx context.Context) <-chan model.Change
}

// snapshotMessage is the first frame every client receives.
type snapshotMessage struct {
	Event string      `json:"event"`
	Posts []post.Post `json:"posts"`
}

// Hub manages WebSocket client connections and fans change events out to
// all of them. Delivery is best effort: a client that cannot keep up with
// the feed is disconnected.
type Hub struct {
	source Source

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub that reads snapshots and changes from source.
func NewHub(source Source) *Hub {
	return &Hub{
		source:  source,
		clients: make(map[*client]struct{}),
	}
}

// Run consumes the change feed and broadcasts each event to every
// connected client. It blocks until ctx is cancelled or the feed closes,
// then closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	changes := h.source.Changes(ctx)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case change, ok := <-changes:
			if !ok {
				h.closeAll()
				return
			}
			if data, err := json.Marshal(change); err == nil {
				h.broadcast(data)
			}
		}
	}
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the
// client. The current collection is sent immediately as a snapshot frame,
// then every change broadcast by Run follows. Blocks until the connection
// closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.register(c)
	defer h.unregister(c)

	// Send the current collection immediately so clients start from a
	// consistent view before applying change events.
	if data, err := json.Marshal(snapshotMessage{Event: "snapshot", Posts: h.source.Posts(r.Context())}); err == nil {
		h.trySend(c, data)
	}

	go c.writePump()
	c.readPump() // blocks until connection closes
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	metrics.UpdateFeedClients(len(h.clients))
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		metrics.UpdateFeedClients(len(h.clients))
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !h.trySend(c, data) {
			// Client's outgoing buffer is full — disconnect it.
			h.unregister(c)
		}
	}
}

// trySend queues data for c if it is still registered and has buffer
// room. Sends happen under the read lock and unregister closes under the
// write lock, so a send channel is never closed mid-send.
func (h *Hub) trySend(c *client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	metrics.UpdateFeedClients(0)
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its
// own goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads frames from the connection to process control messages
// (pong, close) and detect disconnects. Blocks until the connection
// closes.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
