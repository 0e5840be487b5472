package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForObservers(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ObserverCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("observer count never reached %d (at %d)", want, h.ObserverCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsSnapshots(t *testing.T) {
	h := New(nil)
	defer h.Close()

	conn, cleanup := dialTestHub(t, h)
	defer cleanup()
	waitForObservers(t, h, 1)

	h.Broadcast(map[string]any{"tick": 42})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["tick"] != float64(42) {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestHubDropsDisconnectedObservers(t *testing.T) {
	h := New(nil)
	defer h.Close()

	conn, cleanup := dialTestHub(t, h)
	waitForObservers(t, h, 1)

	conn.Close()
	cleanup()

	deadline := time.Now().Add(2 * time.Second)
	for h.ObserverCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("closed observer never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
