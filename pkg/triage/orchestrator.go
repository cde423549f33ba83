package triage

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alemhq/alem/pkg/crisis"
	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/metrics"
	"github.com/alemhq/alem/pkg/redact"
	"github.com/alemhq/alem/pkg/reply"
)

// History keeps the last three exchanges.
const defaultMaxHistory = 6

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	Response        string    `json:"response"`
	Escalate        bool      `json:"escalate"`
	LanguageSettled bool      `json:"language_settled"`
	CurrentLanguage lang.Code `json:"current_language,omitempty"`

	// Mutated tells the calling layer whether the session changed and needs
	// persisting. Empty-message turns leave the session untouched.
	Mutated bool `json:"-"`

	// Degraded and Reason tag turns where a fallback path fired.
	Degraded bool               `json:"-"`
	Reason   errorsx.ReasonCode `json:"-"`
}

// Orchestrator is the per-session state machine. It owns session state for
// the duration of one turn and decides language settlement, escalation, and
// response routing. Turns within one session must be sequential; callers
// serialize read-modify-write per session.
type Orchestrator struct {
	ident      *lang.Identifier
	settler    *lang.Settler
	classifier *crisis.Classifier
	gen        *reply.Generator
	log        *slog.Logger
	obs        metrics.Observer
	maxHistory int
}

type Option func(*Orchestrator)

// WithMaxHistory overrides the stored-history cap.
func WithMaxHistory(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxHistory = n
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(obs metrics.Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.obs = obs
		}
	}
}

func NewOrchestrator(ident *lang.Identifier, settler *lang.Settler, classifier *crisis.Classifier, gen *reply.Generator, log *slog.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	o := &Orchestrator{
		ident:      ident,
		settler:    settler,
		classifier: classifier,
		gen:        gen,
		log:        log,
		obs:        metrics.NoopObserver{},
		maxHistory: defaultMaxHistory,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Turn processes one user message against sess, mutating it in place. The
// conversation never surfaces an error: every failure inside turn processing
// degrades to a safe reply.
func (o *Orchestrator) Turn(ctx context.Context, sessionID string, sess *Session, message string) (res TurnResult) {
	o.record("turn_start", sessionID, nil)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("turn recovered from panic", "session_id", sessionID, "panic", r)
			res = safeResult(errorsx.ReasonTurnPanic)
		}
		o.record("turn_done", sessionID, map[string]string{
			"escalated": boolTag(res.Escalate),
			"degraded":  boolTag(res.Degraded),
		})
		o.log.Debug("turn complete",
			"session_id", sessionID,
			"state", sess.State().String(),
			"language", res.CurrentLanguage,
			"settled", res.LanguageSettled,
			"escalate", res.Escalate,
			"turn_ms", time.Since(start).Milliseconds(),
		)
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		// Greeting turn: no session mutation at all.
		return TurnResult{Response: reply.Greeting}
	}

	if sess.Detections == nil {
		sess.Detections = make(map[string]lang.Code)
	}
	from := sess.State()
	sess.History = append(sess.History, message)

	working := sess.Language
	if !sess.LanguageSettled {
		detected, derr := o.ident.Detect(ctx, message)
		if derr != nil {
			o.record("detect_degraded", sessionID, map[string]string{"reason": string(errorsx.Reason(derr))})
		} else {
			sess.Detections[message] = detected
		}
		if code, ok := o.settler.Settle(ctx, sess.History, sess.Detections); ok {
			if err := o.transition(from, StateSettled); err != nil {
				o.log.Error("turn aborted", "session_id", sessionID, "err", err)
				return safeResult(errorsx.ReasonUnknown)
			}
			sess.Language = code
			sess.LanguageSettled = true
			working = code
			o.record("language_settled", sessionID, map[string]string{"language": code.String()})
		} else {
			working = detected
			sess.Language = detected
		}
	}
	if working == "" || !lang.Supported(working) {
		working = o.ident.Fallback()
	}

	// Active-emergency messages stay with the scripted emergency resources
	// even when they also contain an escalation keyword; handover text alone
	// would leave the user waiting.
	danger := o.classifier.Detect(message, working).ImmediateDanger
	if !danger && o.classifier.ShouldEscalate(message, working) {
		if err := o.transition(from, StateEscalated); err != nil {
			o.log.Error("turn aborted", "session_id", sessionID, "err", err)
			return safeResult(errorsx.ReasonUnknown)
		}
		settled := sess.LanguageSettled
		sess.clear()
		o.record("escalated", sessionID, map[string]string{"language": working.String()})
		o.log.Info("conversation escalated to human handover", "session_id", sessionID, "language", working)
		return TurnResult{
			Response:        reply.Handover(working),
			Escalate:        true,
			LanguageSettled: settled,
			Mutated:         true,
		}
	}

	gen := o.gen.Generate(ctx, message, working, sess.History)
	if gen.Degraded {
		o.record("reply_degraded", sessionID, map[string]string{"reason": string(gen.Reason)})
	}

	sess.History = append(sess.History, gen.Text)
	if len(sess.History) > o.maxHistory {
		sess.History = sess.History[len(sess.History)-o.maxHistory:]
	}
	o.log.Debug("history updated", "session_id", sessionID, "entries", len(sess.History), "tail", redact.History(sess.History))

	return TurnResult{
		Response:        gen.Text,
		LanguageSettled: sess.LanguageSettled,
		CurrentLanguage: working,
		Mutated:         true,
		Degraded:        gen.Degraded,
		Reason:          gen.Reason,
	}
}

func (o *Orchestrator) transition(from, to State) error {
	if from == to {
		return nil
	}
	if !transitionValid(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

func (o *Orchestrator) record(name string, sessionID string, tags map[string]string) {
	if tags == nil {
		tags = map[string]string{}
	}
	tags["session_id"] = sessionID
	o.obs.RecordEvent(metrics.MetricsEvent{Name: name, Time: time.Now(), Tags: tags})
}

func safeResult(reason errorsx.ReasonCode) TurnResult {
	return TurnResult{
		Response: reply.SafeReply,
		Degraded: true,
		Reason:   reason,
	}
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
