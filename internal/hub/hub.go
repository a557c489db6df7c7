package hub

import (
	"context"
	"log/slog"
	"sync"
)

// Hub manages WebSocket clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client.
func (h *Hub) Broadcast(msg []byte) {
	h.send(msg, func(*Client) bool { return true })
}

// BroadcastToDevice sends a message to clients following all devices or
// the given one.
func (h *Hub) BroadcastToDevice(msg []byte, deviceIndex int) {
	h.send(msg, func(c *Client) bool { return c.Follows(deviceIndex) })
}

func (h *Hub) send(msg []byte, want func(*Client) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !want(client) {
			continue
		}
		if !client.trySend(msg) {
			// Client send buffer full, disconnect
			go h.Unregister(client)
		}
	}
}

// Run starts the hub's main loop and returns when ctx is done, closing
// every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.mu.Unlock()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "client", client.id, "total", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "client", client.id, "total", n)
		}
	}
}
