package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/store"
	"github.com/alemhq/alem/pkg/triage"
)

const sessionCookie = "alem_session"

// Server exposes the conversation API over HTTP: POST /api/chat runs one
// turn, DELETE /api/session wipes the caller's stored state. Sessions are
// identified by an opaque cookie; turns for the same session are serialized
// so concurrent requests cannot interleave their read-modify-write cycles.
type Server struct {
	orch  *triage.Orchestrator
	store store.Store
	log   *slog.Logger
	srv   *http.Server

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is refcounted so idle entries can be dropped from the lock map
// once the last in-flight request for a session releases it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewServer(addr string, orch *triage.Orchestrator, st store.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		orch:  orch,
		store: st,
		log:   log,
		locks: make(map[string]*sessionLock),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Name() string { return "httpapi" }

// Start blocks serving until the listener fails or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("http transport listening", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop drains in-flight requests and closes the listener.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the routed handler, exposed separately for tests.
func (s *Server) Handler() http.Handler {
	return withCORS(http.HandlerFunc(s.route))
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/chat" && r.Method == http.MethodPost:
		s.handleChat(w, r)
	case r.URL.Path == "/api/session" && r.Method == http.MethodDelete:
		s.handleClearSession(w, r)
	case r.URL.Path == "/healthz" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id := s.sessionID(w, r)
	unlock := s.lockSession(id)
	defer unlock()

	sess, err := s.store.Load(r.Context(), id)
	if err != nil {
		// A broken store never breaks the conversation; start fresh.
		s.log.Error("session load failed", "session_id", id, "reason", errorsx.Reason(err), "err", err)
		sess = nil
	}
	if sess == nil {
		sess = triage.NewSession()
	}

	res := s.orch.Turn(r.Context(), id, sess, req.Message)

	switch {
	case res.Escalate:
		if err := s.store.Clear(r.Context(), id); err != nil {
			s.log.Error("session clear failed", "session_id", id, "err", err)
		}
	case res.Mutated:
		if err := s.store.Save(r.Context(), id, sess); err != nil {
			s.log.Error("session save failed", "session_id", id, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		unlock := s.lockSession(cookie.Value)
		err := s.store.Clear(r.Context(), cookie.Value)
		unlock()
		if err != nil {
			s.log.Error("session clear failed", "session_id", cookie.Value, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not clear session"})
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session cleared"})
}

// sessionID reads the session cookie, minting a fresh one when absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// lockSession serializes turns per session id. The returned release func
// removes the map entry once no request holds or waits on it, keeping the
// map bounded by in-flight requests rather than by session ids ever seen.
func (s *Server) lockSession(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sessionLock{}
		s.locks[id] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		} else {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions,
		}, ", "))
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
