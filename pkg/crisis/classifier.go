package crisis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alemhq/alem/pkg/lang"
)

// Indicators are the three independent per-message crisis flags. They are
// computed fresh for every message and never persisted across turns.
type Indicators struct {
	ImmediateDanger  bool
	SuicidalIdeation bool
	HighDistress     bool
}

// Any reports whether at least one indicator fired.
func (i Indicators) Any() bool {
	return i.ImmediateDanger || i.SuicidalIdeation || i.HighDistress
}

// Config overrides the built-in keyword lists per language. Nil maps keep the
// curated defaults. DefaultLanguage names the list used for codes without
// curated keywords; unset or unsupported values mean lang.Default.
type Config struct {
	EscalationKeywords map[string][]string
	DangerKeywords     map[string][]string
	SuicidalKeywords   map[string][]string
	DistressPhrases    []string
	DefaultLanguage    string
}

// Classifier scans messages for escalation keywords and crisis indicators.
// Escalation matching is whole-word; danger and suicidal matching is
// substring, both against the lower-cased message body.
type Classifier struct {
	escalation map[lang.Code][]string
	danger     map[lang.Code][]string
	suicidal   map[lang.Code][]string
	distress   []string
	fallback   lang.Code
}

func NewClassifier(cfg Config) *Classifier {
	fallback := lang.Code(strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage)))
	if !lang.Supported(fallback) {
		fallback = lang.Default
	}
	return &Classifier{
		escalation: mergeKeywords(defaultEscalationKeywords, cfg.EscalationKeywords),
		danger:     mergeKeywords(defaultDangerKeywords, cfg.DangerKeywords),
		suicidal:   mergeKeywords(defaultSuicidalKeywords, cfg.SuicidalKeywords),
		distress:   mergePhrases(defaultDistressPhrases, cfg.DistressPhrases),
		fallback:   fallback,
	}
}

// ShouldEscalate reports whether message contains a whole-word escalation
// keyword for code. Languages without a curated list fall back to the
// configured default language's list.
func (c *Classifier) ShouldEscalate(message string, code lang.Code) bool {
	keywords := c.escalation[code]
	if len(keywords) == 0 {
		keywords = c.escalation[c.fallback]
	}
	lower := strings.ToLower(message)
	for _, kw := range keywords {
		if containsWord(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Detect evaluates the three crisis indicators for message in code.
func (c *Classifier) Detect(message string, code lang.Code) Indicators {
	lower := strings.ToLower(message)
	return Indicators{
		ImmediateDanger:  containsAny(lower, c.keywordsFor(c.danger, code)),
		SuicidalIdeation: containsAny(lower, c.keywordsFor(c.suicidal, code)),
		HighDistress:     c.highDistress(message, lower),
	}
}

func (c *Classifier) keywordsFor(set map[lang.Code][]string, code lang.Code) []string {
	if kws := set[code]; len(kws) > 0 {
		return kws
	}
	return set[c.fallback]
}

func (c *Classifier) highDistress(message, lower string) bool {
	if strings.Contains(message, "!!!") {
		return true
	}
	if isShouting(message) && utf8.RuneCountInString(message) > 20 {
		return true
	}
	return containsAny(lower, c.distress)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// containsWord finds kw in text with non-word runes (or string edges) on both
// sides. Rune-level boundaries keep this correct for non-Latin scripts.
func containsWord(text, kw string) bool {
	if kw == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(kw)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return !isWordRune(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isShouting reports whether the message has cased letters and none of them
// are lower case.
func isShouting(message string) bool {
	hasUpper := false
	for _, r := range message {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func mergeKeywords(defaults map[lang.Code][]string, overrides map[string][]string) map[lang.Code][]string {
	out := make(map[lang.Code][]string, len(defaults))
	for code, kws := range defaults {
		out[code] = kws
	}
	for raw, kws := range overrides {
		code := lang.Code(strings.ToLower(strings.TrimSpace(raw)))
		if lang.Supported(code) && len(kws) > 0 {
			out[code] = kws
		}
	}
	return out
}

func mergePhrases(defaults, overrides []string) []string {
	if len(overrides) > 0 {
		return overrides
	}
	return defaults
}
