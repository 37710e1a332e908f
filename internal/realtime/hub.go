// Package realtime implements the broadcast hub that keeps connected
// browsers consistent with catalog mutations. Delivery is best-effort and
// at-most-once per connection per event: there is no acknowledgement, no
// retry and no replay of events missed while disconnected. A client that
// cannot keep up is dropped rather than allowed to stall the fan-out.
package realtime

import (
	"sort"
	"sync"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/logging"
	"github.com/light-bringer/catalog-service/internal/metrics"
)

// Message is the wire frame pushed to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub owns the registry of live client connections. No other component may
// touch the registry; all access goes through Register, Unregister and
// Broadcast, which are safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// Register adds a client to the registry. The *Client value is the handle
// later passed to Unregister.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.ConnectedClients.Set(float64(total))
	logging.Info().Uint64("client_id", c.id).Int("total_clients", total).Msg("realtime client connected")
}

// Unregister removes a client and closes its send channel. Idempotent: a
// second call for the same handle is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.ConnectedClients.Set(float64(total))
		logging.Info().Uint64("client_id", c.id).Int("total_clients", total).Msg("realtime client disconnected")
	}
}

// Broadcast delivers an event to every client registered at the moment of
// the call. The registry is snapshotted under the lock, so a concurrent
// register never receives the in-flight event and a concurrent unregister
// never races the iteration. Clients are visited in id order to keep
// delivery deterministic. A client whose buffer is full or whose channel is
// closed is dropped; one slow consumer never blocks the others, and the
// failure is invisible to the mutation that triggered the event.
func (h *Hub) Broadcast(event domain.Event) {
	msg := Message{Type: event.EventType(), Data: eventPayload(event)}

	h.mu.Lock()
	snapshot := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].id < snapshot[j].id
	})

	var dropped []*Client
	for _, c := range snapshot {
		select {
		case c.send <- msg:
		default:
			dropped = append(dropped, c)
		}
	}

	for _, c := range dropped {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.EventsBroadcast.WithLabelValues(msg.Type).Inc()
	if len(dropped) > 0 {
		metrics.ClientsDropped.Add(float64(len(dropped)))
		metrics.ConnectedClients.Set(float64(total))
		logging.Warn().
			Str("event_type", msg.Type).
			Int("dropped", len(dropped)).
			Msg("dropped stalled realtime clients during broadcast")
	}
	logging.Debug().
		Str("event_type", msg.Type).
		Str("entry_id", event.EntryID()).
		Int("clients", total).
		Msg("broadcast domain event")
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll drops every client. Called on graceful shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	metrics.ConnectedClients.Set(0)
	logging.Info().Msg("closed all realtime clients")
}

// eventPayload unwraps the event for the wire: created/updated carry the
// entry snapshot, deleted carries only the id.
func eventPayload(event domain.Event) interface{} {
	switch e := event.(type) {
	case *domain.EntryCreatedEvent:
		return e.Entry
	case *domain.EntryUpdatedEvent:
		return e.Entry
	case *domain.EntryDeletedEvent:
		return e
	default:
		return event
	}
}
