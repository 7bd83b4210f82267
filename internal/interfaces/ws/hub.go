// Package ws provides the WebSocket gateway for the legal guidance
// assistant. Each connection runs one chat conversation; turns are
// serialized per connection and answered through the chat service.
package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/legallink/backend/internal/infrastructure/telemetry"
)

// Hub tracks active assistant connections. It exists for connection
// accounting and shutdown, not for broadcast; replies always go to the
// connection that asked.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool

	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewHub creates a new connection hub. metrics may be nil when
// telemetry is disabled.
func NewHub(metrics *telemetry.BusinessMetrics, logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		metrics: metrics,
		logger:  logger,
	}
}

// register adds a client. It returns false when the hub is already
// shut down.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.recordCount()
	return true
}

// unregister removes a client.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	h.recordCount()
}

// Count returns the number of active connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Shutdown closes every active connection and rejects new ones.
func (h *Hub) Shutdown(ctx context.Context) {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// recordCount publishes the active connection gauge. Callers hold h.mu.
func (h *Hub) recordCount() {
	if h.metrics != nil {
		h.metrics.RecordActiveChatConnections(context.Background(), int64(len(h.clients)))
	}
}
