package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/screenglance/screenglance/internal/ratelimit"
	"github.com/screenglance/screenglance/pkg/models"
)

func TestHubBroadcastReachesListener(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleEvents))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the hub to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Listeners() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	sent := models.AnswerEvent{ID: "ev-1", MachineID: "abc123", Answer: "4", At: time.Now().UTC()}
	hub.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.AnswerEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got.ID != sent.ID || got.Answer != sent.Answer {
		t.Fatalf("got event %+v, want %+v", got, sent)
	}
}

func TestHubDropsClosedListeners(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleEvents))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Listeners() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed listener never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Broadcasting with no listeners must not block or panic.
	hub.Broadcast(models.AnswerEvent{ID: "ev-2", Answer: "x"})
}

func TestBroadcastNeverBlocksOnStalledListener(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleEvents))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Listeners() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The listener never reads. Large payloads fill its socket buffers,
	// then its backlog; every Broadcast must still return promptly.
	payload := strings.Repeat("x", 256<<10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			hub.Broadcast(models.AnswerEvent{ID: "flood", Answer: payload, At: time.Now().UTC()})
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Broadcast blocked on a non-reading listener")
	}

	// The hub stays responsive and sheds the stalled listener.
	deadline = time.Now().Add(3 * time.Second)
	for hub.Listeners() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stalled listener never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRateLimitMiddlewareRejectsBeyondBurst(t *testing.T) {
	hits := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ })

	limited := RateLimitMiddleware(ratelimit.NewLimiter(1, 1))(inner)

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.RemoteAddr = "10.0.0.1:4242"

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("inner handler hit %d times, want 1", hits)
	}
}
