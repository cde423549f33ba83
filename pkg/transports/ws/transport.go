package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/alemhq/alem/pkg/triage"
)

// Transport serves the conversation over a websocket: one connection is one
// session, messages are JSON frames. Session state lives with the connection
// and is dropped when it closes, so nothing persists beyond the socket.
type Transport struct {
	orch *triage.Orchestrator
	log  *slog.Logger
	srv  *http.Server

	upgrader websocket.Upgrader
}

type inboundFrame struct {
	Message string `json:"message"`
}

func NewTransport(addr string, orch *triage.Orchestrator, log *slog.Logger) *Transport {
	if log == nil {
		log = slog.Default()
	}
	t := &Transport{
		orch: orch,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", t.handleWS)
	t.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return t
}

func (t *Transport) Name() string { return "ws" }

func (t *Transport) Start(ctx context.Context) error {
	t.log.Info("ws transport listening", "addr", t.srv.Addr)
	err := t.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (t *Transport) Stop(ctx context.Context) error {
	return t.srv.Shutdown(ctx)
}

func (t *Transport) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.log.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	sess := triage.NewSession()
	t.log.Info("websocket session opened", "session_id", id)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.log.Warn("websocket read failed", "session_id", id, "err", err)
			}
			return
		}

		res := t.orch.Turn(r.Context(), id, sess, frame.Message)
		if err := conn.WriteJSON(res); err != nil {
			t.log.Warn("websocket write failed", "session_id", id, "err", err)
			return
		}
		if res.Escalate {
			// Orchestrator already wiped the session; the next message starts
			// a fresh conversation on the same socket.
			t.log.Info("websocket session escalated", "session_id", id)
		}
	}
}
