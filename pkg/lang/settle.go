package lang

import "context"

// Settlement policy: a session's working language is considered fixed once
// the three most recent user turns all resolve to the same code.
const settleWindow = 3

// Settler decides whether a conversation's language has settled. History is
// the alternating user/bot transcript; user turns sit at even indexes.
type Settler struct {
	ident *Identifier
}

func NewSettler(ident *Identifier) *Settler {
	return &Settler{ident: ident}
}

// Settle inspects history and reports the settled code, if any. It needs at
// least settleWindow user turns; each one is detected independently through
// the session cache, so previously seen messages cost no external calls.
func (s *Settler) Settle(ctx context.Context, history []string, cache map[string]Code) (Code, bool) {
	if len(history) < settleWindow {
		return "", false
	}
	var userTurns []string
	for i, entry := range history {
		if i%2 == 0 {
			userTurns = append(userTurns, entry)
		}
	}
	if len(userTurns) < settleWindow {
		return "", false
	}
	recent := userTurns[len(userTurns)-settleWindow:]

	first := s.ident.DetectCached(ctx, recent[0], cache)
	for _, msg := range recent[1:] {
		if s.ident.DetectCached(ctx, msg, cache) != first {
			return "", false
		}
	}
	return first, true
}
