// Package realtime fans grocery list change notifications out to connected
// websocket clients.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/ghuser/grocerylists/pkg/logger"
)

// Message is one notification pushed to clients. Data carries the event
// payload as published on the event bus.
type Message struct {
	Type   string          `json:"type"`
	ListID string          `json:"list_id"`
	Data   json.RawMessage `json:"data"`
}

// Hub maintains the set of active websocket clients and broadcasts messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     logger.Logger
}

// NewHub creates a new Hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends msg to every client watching all lists or msg.ListID.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("realtime: marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.watches(msg.ListID) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("realtime: client buffer full, dropping message", "list_id", msg.ListID)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
