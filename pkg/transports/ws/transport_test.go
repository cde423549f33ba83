package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/alemhq/alem/pkg/crisis"
	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/providers/mock"
	"github.com/alemhq/alem/pkg/reply"
	"github.com/alemhq/alem/pkg/triage"
)

func dialTest(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()
	svc := mock.NewService(mock.ServiceConfig{})
	ident := lang.NewIdentifier(svc, nil)
	classifier := crisis.NewClassifier(crisis.Config{})
	orch := triage.NewOrchestrator(ident, lang.NewSettler(ident), classifier, reply.NewGenerator(svc, classifier, nil), nil)
	tr := NewTransport(":0", orch, nil)

	srv := httptest.NewServer(http.HandlerFunc(tr.handleWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
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

func TestSessionOverSocket(t *testing.T) {
	conn, done := dialTest(t)
	defer done()

	if err := conn.WriteJSON(map[string]string{"message": ""}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res triage.TurnResult
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Response != reply.Greeting {
		t.Fatalf("expected greeting, got %q", res.Response)
	}

	if err := conn.WriteJSON(map[string]string{"message": "I need help"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !res.Escalate {
		t.Fatalf("expected escalation, got %+v", res)
	}

	// Escalation wipes the in-socket session; the next turn starts fresh.
	if err := conn.WriteJSON(map[string]string{"message": ""}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Response != reply.Greeting {
		t.Fatalf("expected fresh greeting after escalation, got %q", res.Response)
	}
}
