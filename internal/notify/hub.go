package notify

import (
	"encoding/json"
	"log"
	"sync"
)

// ChangeSignal is the payload broadcast after every mutation. It carries
// just enough for consumers to refetch; deltas are never delivered over
// the channel, so duplicates and reordering are harmless.
type ChangeSignal struct {
	Type   string `json:"type"` // Always ENTITY_CHANGED
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
	Event  string `json:"event"` // created, updated, completed, deleted
}

// Hub maintains the set of active clients and broadcasts change signals
type Hub struct {
	// Registered clients map: ClientID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Outbound signals fanned out to every client
	broadcast chan []byte

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				close(old.send)
				delete(h.clients, client.ID)
			}
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("📱 Notify client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("📴 Notify client disconnected: %s", client.ID)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead; drop, delivery is best-effort
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast fans a change signal out to all connected clients. It never
// blocks the caller and never fails the mutation that triggered it.
func (h *Hub) Broadcast(entity string, id uint, event string) {
	msg, err := json.Marshal(ChangeSignal{
		Type:   "ENTITY_CHANGED",
		Entity: entity,
		ID:     id,
		Event:  event,
	})
	if err != nil {
		log.Printf("Error marshaling change signal: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// Hub saturated; signals are refetch hints, losing one is safe
	}
}
