package ws

import (
	"encoding/json"
	"sync"

	"tierlist_backend/internal/logger"
)

// Event is one live update pushed to connected clients.
type Event struct {
	Type     string `json:"type"` // player_updated | player_deleted | tier_updated | tier_deleted
	PlayerID int64  `json:"player_id,omitempty"`
}

// Hub fans tier-list changes out to every connected client. Delivery is
// best-effort: a client that cannot keep up is dropped.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client connected", "clients", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		logger.Error("ws: marshal event", "error", err)
		return
	}

	h.mu.RLock()
	var slow []*Client
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.unregister(c)
	}
}
