package store

import (
	"context"
	"sync"

	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/triage"
)

// MemoryStore keeps sessions in a process-local map. Suitable for tests and
// single-instance deployments; state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*triage.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*triage.Session)}
}

// Load implements Store. The returned session is a copy: callers mutate it
// freely and persist through Save.
func (s *MemoryStore) Load(ctx context.Context, id string) (*triage.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(sess), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, id string, sess *triage.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions == nil {
		s.sessions = make(map[string]*triage.Session)
	}
	s.sessions[id] = cloneSession(sess)
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}

func cloneSession(sess *triage.Session) *triage.Session {
	if sess == nil {
		return nil
	}
	out := &triage.Session{
		History:         append([]string(nil), sess.History...),
		Language:        sess.Language,
		LanguageSettled: sess.LanguageSettled,
	}
	if sess.Detections != nil {
		out.Detections = make(map[string]lang.Code, len(sess.Detections))
		for k, v := range sess.Detections {
			out.Detections[k] = v
		}
	}
	return out
}
