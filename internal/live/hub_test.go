package live

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber count = %d, want %d", hub.SubscriberCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receiveEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var raw string
	if err := websocket.Message.Receive(conn, &raw); err != nil {
		t.Fatalf("failed to receive frame: %v", err)
	}

	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("failed to decode frame %q: %v", raw, err)
	}
	return event
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	first := dialHub(t, server)
	second := dialHub(t, server)
	waitForSubscribers(t, hub, 2)

	hub.Broadcast(Event{Type: EventNewResult, Code: "abc"})

	for _, conn := range []*websocket.Conn{first, second} {
		event := receiveEvent(t, conn)
		if event.Type != EventNewResult || event.Code != "abc" {
			t.Errorf("received %+v, want newResult for abc", event)
		}
	}
}

func TestBroadcastPreservesOrder(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	conn := dialHub(t, server)
	waitForSubscribers(t, hub, 1)

	hub.Broadcast(Event{Type: EventNewResult, Code: "a"})
	hub.Broadcast(Event{Type: EventResultUpdate, Code: "a"})

	first := receiveEvent(t, conn)
	second := receiveEvent(t, conn)
	if first.Type != EventNewResult || second.Type != EventResultUpdate {
		t.Errorf("frames out of order: %v then %v", first.Type, second.Type)
	}
}

func TestMalformedInboundFrameIsIgnored(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	conn := dialHub(t, server)
	waitForSubscribers(t, hub, 1)

	if err := websocket.Message.Send(conn, "{not json"); err != nil {
		t.Fatal(err)
	}

	// The connection must survive the garbage frame
	hub.Broadcast(Event{Type: EventResultUpdate, Code: "abc"})
	event := receiveEvent(t, conn)
	if event.Type != EventResultUpdate {
		t.Errorf("event type = %q, want resultUpdate", event.Type)
	}
}

func TestShutdownClosesAllConnections(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	first := dialHub(t, server)
	second := dialHub(t, server)
	waitForSubscribers(t, hub, 2)

	hub.Shutdown()
	waitForSubscribers(t, hub, 0)

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err == nil {
			t.Error("read on a shut-down connection should fail")
		}
	}
}

func TestDisconnectedSubscriberIsRemoved(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	conn := dialHub(t, server)
	waitForSubscribers(t, hub, 1)

	_ = conn.Close()
	waitForSubscribers(t, hub, 0)

	// Broadcasting into an empty hub is a no-op, not a panic
	hub.Broadcast(Event{Type: EventNewResult, Code: "abc"})
}
