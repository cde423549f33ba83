package triage

// State is a session's position in the conversation lifecycle.
type State int

const (
	// StateNew: no stored state yet; the next non-empty message activates.
	StateNew State = iota
	// StateActive: conversation underway, working language still provisional.
	StateActive
	// StateSettled: conversation underway, language fixed for the session.
	StateSettled
	// StateEscalated: handed to a human; terminal, session cleared.
	StateEscalated
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateActive:
		return "ACTIVE"
	case StateSettled:
		return "SETTLED"
	case StateEscalated:
		return "ESCALATED"
	}
	return "UNKNOWN"
}

// Settlement is monotonic and escalation is terminal, which the transition
// table encodes: there is no edge out of SETTLED back to ACTIVE and none out
// of ESCALATED at all.
var validTransitions = map[State][]State{
	StateNew:     {StateActive, StateEscalated},
	StateActive:  {StateActive, StateSettled, StateEscalated},
	StateSettled: {StateSettled, StateEscalated},
}

func transitionValid(from, to State) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports a forbidden state transition attempt.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return "invalid session transition from " + e.From.String() + " to " + e.To.String()
}
