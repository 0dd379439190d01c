package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"
)

// Hub fans change events out to connected dashboard clients. Delivery is
// best-effort: there is no durable queue and no replay buffer, so a
// disconnected subscriber misses events and is expected to re-fetch the
// authoritative list when it reconnects.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates a new hub with no subscribers.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// Handler returns the websocket upgrade handler for the live channel
// endpoint.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *Hub) serve(conn *websocket.Conn) {
	h.register(conn)
	defer h.unregister(conn)

	slog.Info("Live channel subscriber connected", "remote", conn.Request().RemoteAddr)

	// The read loop exists to notice disconnects. Inbound frames carry no
	// meaning on this channel; malformed ones are logged and dropped, never
	// fatal.
	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if err != io.EOF {
				slog.Debug("Live channel read ended", "error", err)
			}
			return
		}

		var probe map[string]any
		if err := json.Unmarshal([]byte(raw), &probe); err != nil {
			slog.Warn("Ignoring malformed live channel frame", "remote", conn.Request().RemoteAddr)
		}
	}
}

// Broadcast sends event to every connected subscriber. Within a single
// connection frames go out in call order; subscribers whose send fails are
// dropped and expected to reconnect.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal live event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := websocket.Message.Send(conn, string(payload)); err != nil {
			slog.Debug("Dropping unreachable live subscriber", "error", err)
			h.unregister(conn)
			_ = conn.Close()
		}
	}
}

// Shutdown closes every subscriber connection. Websocket connections are
// hijacked, so http.Server.Shutdown never touches them; the server calls
// this on its way down and clients redial when it returns.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// SubscriberCount reports how many clients are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}
