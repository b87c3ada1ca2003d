package web

import (
	"sync"

	"github.com/codefionn/rechenschnell/internal/logger"
)

// Hub tracks the connected websocket clients
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run starts the hub. It returns after Stop, closing every client.
func (h *Hub) Run() {
	logger.Info("WebSocket hub started")
	defer logger.Info("WebSocket hub stopped")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debug("Client registered: %s", client.ID)

		case client := <-h.unregister:
			h.remove(client)
			logger.Debug("Client unregistered: %s", client.ID)

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
	}
	client.close()
}

// Stop stops the hub; safe to call more than once
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Register registers a new client. It reports false once the hub stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.quit:
		return false
	}
}

// Unregister unregisters a client
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
