package triage

import "github.com/alemhq/alem/pkg/lang"

// Session is the per-conversation state. It is an explicit value owned by
// the orchestrator for the duration of one turn and persisted by the calling
// layer between turns; nothing below the orchestrator keeps cross-turn state.
type Session struct {
	// History alternates user/bot entries, user turns at even indexes,
	// capped to the most recent maxHistory entries after each turn.
	History []string `json:"history"`

	// Language is the working language once assigned. Empty until the first
	// detection of the session.
	Language lang.Code `json:"language,omitempty"`

	// LanguageSettled is monotonic: once true, language detection never runs
	// again for this session.
	LanguageSettled bool `json:"language_settled"`

	// Detections caches per-message detection results for the settlement
	// tracker. Messages are immutable once appended, so entries never expire.
	Detections map[string]lang.Code `json:"detections,omitempty"`
}

// NewSession returns an empty session in the NEW state.
func NewSession() *Session {
	return &Session{Detections: make(map[string]lang.Code)}
}

// State derives the machine state from session contents.
func (s *Session) State() State {
	switch {
	case s == nil || len(s.History) == 0 && !s.LanguageSettled:
		return StateNew
	case s.LanguageSettled:
		return StateSettled
	default:
		return StateActive
	}
}

// clear wipes everything; escalation uses this for privacy.
func (s *Session) clear() {
	s.History = nil
	s.Language = ""
	s.LanguageSettled = false
	s.Detections = make(map[string]lang.Code)
}
