package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/adapter/events"
	"github.com/polkiloo/storefront/internal/adapter/expo"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type expoClientStub struct {
	sent [][]expo.Message
	err  error
}

func (s *expoClientStub) Send(_ context.Context, messages []expo.Message) error {
	s.sent = append(s.sent, messages)
	return s.err
}

func createdEvent() model.OrderEvent {
	return model.OrderEvent{
		Type:    model.EventOrderCreated,
		OrderID: "o1",
		UserID:  "u1",
		Total:   decimal.RequireFromString("12.50"),
		Status:  model.OrderStatusPending,
	}
}

func TestPushNotifierSendsToAdmins(t *testing.T) {
	tokens := &testhelpers.PushTokenRepositoryStub{Admin: []string{"t1", "t2"}}
	client := &expoClientStub{}
	n := NewPushNotifier(tokens, client)

	if err := n.Notify(context.Background(), createdEvent()); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(client.sent) != 1 || len(client.sent[0]) != 2 {
		t.Fatalf("expected one batch of two messages, got %+v", client.sent)
	}
	if client.sent[0][0].Title != "Yeni Sipariş!" {
		t.Fatalf("unexpected title %q", client.sent[0][0].Title)
	}
}

func TestPushNotifierSkips(t *testing.T) {
	client := &expoClientStub{}

	n := NewPushNotifier(&testhelpers.PushTokenRepositoryStub{Admin: []string{"t1"}}, client)
	changed := createdEvent()
	changed.Type = model.EventOrderStatusChanged
	if err := n.Notify(context.Background(), changed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n = NewPushNotifier(&testhelpers.PushTokenRepositoryStub{}, client)
	if err := n.Notify(context.Background(), createdEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.sent) != 0 {
		t.Fatalf("expected nothing sent, got %+v", client.sent)
	}
}

func TestPushNotifierErrors(t *testing.T) {
	tokenErr := errors.New("db down")
	n := NewPushNotifier(&testhelpers.PushTokenRepositoryStub{Err: tokenErr}, &expoClientStub{})
	if err := n.Notify(context.Background(), createdEvent()); !errors.Is(err, tokenErr) {
		t.Fatalf("expected token error, got %v", err)
	}

	n = NewPushNotifier(&testhelpers.PushTokenRepositoryStub{Admin: []string{"t1"}}, &expoClientStub{err: expo.ErrDelivery})
	if err := n.Notify(context.Background(), createdEvent()); !errors.Is(err, expo.ErrDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
}

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r)
	}))
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial failed: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
		server.Close()
	}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.Clients())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcasts(t *testing.T) {
	hub := NewHub(testLogger())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	waitForClients(t, hub, 1)

	if err := hub.Notify(context.Background(), createdEvent()); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var event model.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.OrderID != "o1" || event.Type != model.EventOrderCreated {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestHubForgetsDisconnectedClients(t *testing.T) {
	hub := NewHub(testLogger())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(testLogger())
	_, cleanup := dialHub(t, hub)
	defer cleanup()
	waitForClients(t, hub, 1)

	hub.Close()
	if hub.Clients() != 0 {
		t.Fatalf("expected no clients after close, got %d", hub.Clients())
	}
}

func TestHubServeRejectsPlainHTTP(t *testing.T) {
	hub := NewHub(testLogger())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := hub.Serve(rec, req); err == nil {
		t.Fatal("expected upgrade error")
	}
}

func TestNewNotifiers(t *testing.T) {
	hub := NewHub(testLogger())
	push := NewPushNotifier(&testhelpers.PushTokenRepositoryStub{}, &expoClientStub{})

	got := newNotifiers(hub, push, events.NewPublisher(""))
	if len(got) != 2 {
		t.Fatalf("expected hub and push only, got %d", len(got))
	}
	got = newNotifiers(hub, push, events.NewPublisher("orders", "localhost:9092"))
	if len(got) != 3 || got[2].Name() != "kafka" {
		t.Fatalf("expected kafka publisher appended, got %d", len(got))
	}
}

func TestRegisterLifecycleClosesHub(t *testing.T) {
	hub := NewHub(testLogger())
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, hub)
	lc.RequireStart()
	lc.RequireStop()
}

func TestHubOriginCheck(t *testing.T) {
	check := originChecker([]string{"https://admin.example.com/", "*"})
	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"listed", "https://admin.example.com", true},
		{"listed case", "https://ADMIN.example.com", true},
		{"same host", "http://api.example.com", true},
		{"foreign", "https://evil.example.com", false},
		{"wildcard is not open", "https://anything.example.org", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://api.example.com/api/admin/orders/stream", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if got := check(req); got != tc.want {
				t.Fatalf("origin %q: got %v", tc.origin, got)
			}
		})
	}
}

func TestHubRejectsForeignOriginUpgrade(t *testing.T) {
	hub := newHub(&config.Config{CORSOrigins: []string{"https://admin.example.com"}}, testLogger())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("expected foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}

	header = http.Header{"Origin": []string{"https://admin.example.com"}}
	conn, _, err = websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("expected listed origin to connect: %v", err)
	}
	conn.Close()
}
