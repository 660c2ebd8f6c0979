package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSClient is one connected viewer.
type WSClient struct {
	Session *ViewSession
	Conn    *websocket.Conn
}

// RealtimeHub tracks live view connections so they can be counted and closed
// on shutdown.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*WSClient
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uuid.UUID]*WSClient)}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c.Session.ID] = c
	h.mu.Unlock()
}

// Unregister drops the client and closes its connection. Calling it twice is
// harmless.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c.Session.ID)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll sends a going-away close frame to every viewer. The read loops
// then fail and unregister themselves.
func (h *RealtimeHub) CloseAll() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.Conn.WriteControl(websocket.CloseMessage, msg, deadline)
	}
}
