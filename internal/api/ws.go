package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/veldtworks/marchlands/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans drained tick events out to every connected websocket client.
// Writes to a single connection are serialized by a per-connection mutex.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*sync.Mutex)}
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away. The feed is one-directional; inbound frames are
// read only to detect disconnects.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.register(conn)
	defer h.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &sync.Mutex{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

type tickMessage struct {
	Tick   uint64         `json:"tick"`
	Events []engine.Event `json:"events"`
}

// BroadcastTick sends the tick's drained events to all clients. Clients
// that fail a write are dropped.
func (h *Hub) BroadcastTick(tick uint64, events []engine.Event) {
	if len(events) == 0 {
		return
	}
	data, err := json.Marshal(tickMessage{Tick: tick, Events: events})
	if err != nil {
		slog.Error("marshal tick message", "error", err)
		return
	}

	h.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, mu := range h.clients {
		conns[conn] = mu
	}
	h.mu.Unlock()

	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		mu.Unlock()
		if err != nil {
			h.unregister(conn)
		}
	}
}
