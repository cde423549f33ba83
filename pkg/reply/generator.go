package reply

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/alemhq/alem/pkg/crisis"
	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/llm"
)

// Generated replies shorter than this are treated as unusable and replaced
// by a canned fallback.
const minCompletionRunes = 10

// The prompt context window covers the last two exchanges.
const historyWindow = 4

// Result is the tagged outcome of one generation: either clean text or a
// degraded substitute carrying the reason the fallback fired.
type Result struct {
	Text       string
	Indicators crisis.Indicators
	Degraded   bool
	Reason     errorsx.ReasonCode
}

// Generator produces the next bot utterance: a scripted crisis response, a
// generated empathetic reply, or a canned fallback. External-call failures
// never propagate; they degrade into the fallback path.
type Generator struct {
	svc        llm.Service
	classifier *crisis.Classifier
	log        *slog.Logger
	pick       func(n int) int
}

func NewGenerator(svc llm.Service, classifier *crisis.Classifier, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		svc:        svc,
		classifier: classifier,
		log:        log,
		pick:       rand.Intn,
	}
}

// Generate returns the reply for message in the working language code, given
// the session history (user turns at even indexes).
func (g *Generator) Generate(ctx context.Context, message string, code lang.Code, history []string) Result {
	ind := g.classifier.Detect(message, code)

	if ind.ImmediateDanger {
		return Result{Text: ImmediateDanger(code), Indicators: ind}
	}
	if ind.SuicidalIdeation {
		return Result{Text: SuicidalIdeation(code), Indicators: ind}
	}

	res := g.complete(ctx, message, code, history, ind)
	if seekingHelp(message) && !res.crisisScripted {
		res.Text += "\n\n" + PracticalResources(code)
	}
	return res.Result
}

type completion struct {
	Result
	crisisScripted bool
}

func (g *Generator) complete(ctx context.Context, message string, code lang.Code, history []string, ind crisis.Indicators) completion {
	text, err := g.svc.Complete(ctx, composePrompt(message, code, history, ind))
	if err != nil {
		g.log.Warn("completion degraded", "err", err, "language", code)
		return g.fallback(message, code, ind, reasonOf(err))
	}
	if len([]rune(strings.TrimSpace(text))) < minCompletionRunes {
		return g.fallback(message, code, ind, errorsx.ReasonEmptyCompletion)
	}
	return completion{Result: Result{Text: text, Indicators: ind}}
}

// fallback re-checks the message for crisis signals before settling on a
// canned reply, so a degraded turn still routes danger to the scripted block.
func (g *Generator) fallback(message string, code lang.Code, ind crisis.Indicators, reason errorsx.ReasonCode) completion {
	if g.classifier.Detect(message, code).Any() {
		return completion{
			Result:         Result{Text: ImmediateDanger(code), Indicators: ind, Degraded: true, Reason: reason},
			crisisScripted: true,
		}
	}
	replies := Fallbacks(code)
	return completion{
		Result: Result{Text: replies[g.pick(len(replies))], Indicators: ind, Degraded: true, Reason: reason},
	}
}

func composePrompt(message string, code lang.Code, history []string, ind crisis.Indicators) string {
	persona, ok := personaPrompts[code]
	if !ok {
		persona = personaPrompts[lang.Default]
	}

	var context strings.Builder
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for i, entry := range recent {
		role := "Student"
		if i%2 == 1 {
			role = "Alem"
		}
		fmt.Fprintf(&context, "%s: %s\n", role, entry)
	}

	tone := "Normal conversation"
	if ind.HighDistress {
		tone = "High distress"
	}

	return fmt.Sprintf(`%s

CONVERSATION CONTEXT:
%s
CURRENT SITUATION ANALYSIS:
- Language: %s
- Immediate danger: %t
- Suicidal ideation: %t
- Message tone: %s

RESPONSE REQUIREMENTS:
1. Start with emotional validation
2. Use culturally appropriate expressions of care
3. Maintain hope and empowerment focus
4. End with gentle support statement
5. Keep response length appropriate (2-4 sentences for initial contact, longer for established rapport)

Student's message: %s

Alem's response:`, persona, context.String(), code, ind.ImmediateDanger, ind.SuicidalIdeation, tone, message)
}

func seekingHelp(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range helpSeekingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func reasonOf(err error) errorsx.ReasonCode {
	if reason := errorsx.Reason(err); reason != errorsx.ReasonUnknown {
		return reason
	}
	return errorsx.ReasonCompleteCall
}
