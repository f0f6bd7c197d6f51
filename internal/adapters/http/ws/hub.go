// Package ws pushes refreshed scoreboard snapshots to connected browsers over
// websockets. The hub fans one broadcast out to every registered client;
// clients that cannot keep up are dropped rather than allowed to stall the
// refresh loop.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nosata/ligalive/pkg/logger"
	"github.com/nosata/ligalive/pkg/metrics"
)

// Message is the envelope sent to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Message types pushed by the refresh loop.
const (
	TypeScoreboard = "scoreboard"
	TypeLeague     = "league"
	TypeStatus     = "status"
)

// Hub tracks connected clients and fans broadcasts out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        logger.Logger
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        logger.Named("ws"),
	}
}

// Run processes registrations and broadcasts until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetWSClients(n)
			h.log.Debug(ctx, "client registered",
				logger.String("client_id", client.id),
				logger.Int("total", n))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetWSClients(n)
			h.log.Debug(ctx, "client unregistered",
				logger.String("client_id", client.id),
				logger.Int("total", n))

		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer; drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetWSClients(n)
			metrics.RecordWSBroadcast()
		}
	}
}

// Broadcast marshals a typed message and queues it for every client.
func (h *Hub) Broadcast(msgType string, data any) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.log.Warn(context.Background(), "broadcast marshal failed",
			logger.String("type", msgType),
			logger.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn(context.Background(), "broadcast queue full, dropping message",
			logger.String("type", msgType))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.SetWSClients(0)
}
