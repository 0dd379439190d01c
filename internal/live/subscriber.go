package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

// Subscriber maintains a client connection to the live channel, redialing
// with a fixed delay after every disconnect. It never gives up and never
// leaks a connection across reconnect attempts.
type Subscriber struct {
	url    string
	origin string
	delay  time.Duration

	events chan Event
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewSubscriber creates a subscriber for the channel at url. origin is the
// websocket handshake origin; delay is the fixed reconnect backoff.
func NewSubscriber(url, origin string, delay time.Duration) *Subscriber {
	return &Subscriber{
		url:    url,
		origin: origin,
		delay:  delay,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

// Events returns the stream of received notifications. A synthetic
// resultUpdate is emitted after every successful (re)connect: the channel
// has no replay, so connecting always triggers a full re-fetch instead.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Run dials and reads until Close is called. Blocks; run in a goroutine.
func (s *Subscriber) Run() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		conn, err := websocket.Dial(s.url, "", s.origin)
		if err != nil {
			slog.Warn("Live channel dial failed, retrying", "url", s.url, "delay", s.delay, "error", err)
			if !s.sleep() {
				return
			}
			continue
		}

		s.setConn(conn)
		s.emit(Event{Type: EventResultUpdate})
		s.readLoop(conn)
		s.setConn(nil)
		_ = conn.Close()

		if !s.sleep() {
			return
		}
	}
}

// Close stops the subscriber and unblocks a pending read.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	})
}

func (s *Subscriber) readLoop(conn *websocket.Conn) {
	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			select {
			case <-s.done:
			default:
				slog.Warn("Live channel connection lost", "error", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			slog.Warn("Ignoring malformed live event", "frame", raw)
			continue
		}

		switch event.Type {
		case EventNewResult, EventResultUpdate:
			s.emit(event)
		default:
			slog.Warn("Ignoring unknown live event type", "type", event.Type)
		}
	}
}

// emit drops the event when the consumer lags. Losing a notification is
// harmless: consumers re-fetch the full list on every event anyway, and
// the poll covers the gap.
func (s *Subscriber) emit(event Event) {
	select {
	case s.events <- event:
	default:
	}
}

func (s *Subscriber) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *Subscriber) sleep() bool {
	select {
	case <-s.done:
		return false
	case <-time.After(s.delay):
		return true
	}
}
