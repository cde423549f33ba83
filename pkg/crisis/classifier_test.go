package crisis

import (
	"testing"

	"github.com/alemhq/alem/pkg/lang"
)

func TestEscalationWholeWordMatch(t *testing.T) {
	c := NewClassifier(Config{})

	if !c.ShouldEscalate("I need help", lang.English) {
		t.Fatalf("expected whole word 'help' to escalate")
	}
	if c.ShouldEscalate("I am helpless", lang.English) {
		t.Fatalf("expected substring 'help' inside a word not to escalate")
	}
	if !c.ShouldEscalate("can I speak to someone please", lang.English) {
		t.Fatalf("expected multi-word keyword to escalate")
	}
	if !c.ShouldEscalate("HUMAN!", lang.English) {
		t.Fatalf("expected case-insensitive match with punctuation boundary")
	}
}

func TestEscalationPerLanguageKeywords(t *testing.T) {
	c := NewClassifier(Config{})

	if !c.ShouldEscalate("እገዛ እፈልጋለሁ", lang.Amharic) {
		t.Fatalf("expected Amharic escalation keyword to match")
	}
	if !c.ShouldEscalate("gargaarsa barbaada", lang.Oromifa) {
		t.Fatalf("expected Oromifa escalation keyword to match")
	}
}

func TestEscalationFallsBackToDefaultList(t *testing.T) {
	c := NewClassifier(Config{EscalationKeywords: map[string][]string{
		"am": nil, // cleared override keeps the curated default
	}})
	// A code with no list of its own uses the default-language list.
	if !c.ShouldEscalate("emergency", lang.Tigrigna) && !c.ShouldEscalate("ሓገዝ", lang.Tigrigna) {
		t.Fatalf("expected tigrigna list or default fallback to match")
	}
}

func TestDetectImmediateDanger(t *testing.T) {
	c := NewClassifier(Config{})

	ind := c.Detect("please HELP ME NOW", lang.English)
	if !ind.ImmediateDanger {
		t.Fatalf("expected immediate danger for substring match")
	}
	ind = c.Detect("ሕጂ እዩ ዘጋጥም ዘሎ", lang.Tigrigna)
	if !ind.ImmediateDanger {
		t.Fatalf("expected Tigrigna danger keyword to match")
	}
}

func TestDetectSuicidalIdeation(t *testing.T) {
	c := NewClassifier(Config{})

	ind := c.Detect("some days I just want to die", lang.English)
	if !ind.SuicidalIdeation {
		t.Fatalf("expected suicidal ideation indicator")
	}
	if ind.ImmediateDanger {
		t.Fatalf("unexpected immediate danger indicator")
	}
}

func TestDetectHighDistress(t *testing.T) {
	c := NewClassifier(Config{})

	if !c.Detect("why is this happening!!!", lang.English).HighDistress {
		t.Fatalf("expected triple exclamation to flag distress")
	}
	if !c.Detect("I CANNOT DO THIS ANYMORE AT ALL", lang.English).HighDistress {
		t.Fatalf("expected long all-caps message to flag distress")
	}
	if c.Detect("HELP", lang.English).HighDistress {
		t.Fatalf("short all-caps message should not flag distress")
	}
	if !c.Detect("this is all too much for me", lang.English).HighDistress {
		t.Fatalf("expected distress phrase to flag")
	}
	if c.Detect("I had an ordinary day", lang.English).HighDistress {
		t.Fatalf("unexpected distress for neutral message")
	}
}

func TestIndicatorsAny(t *testing.T) {
	if (Indicators{}).Any() {
		t.Fatalf("empty indicators should not report Any")
	}
	if !(Indicators{HighDistress: true}).Any() {
		t.Fatalf("expected Any true")
	}
}

func TestDefaultLanguageGovernsFallbackLists(t *testing.T) {
	c := NewClassifier(Config{DefaultLanguage: "om"})

	// A code with no curated list uses the configured default's lists, not
	// the English ones.
	if !c.ShouldEscalate("gargaarsa barbaada", "so") {
		t.Fatalf("expected uncurated code to fall back to the Oromifa escalation list")
	}
	if c.ShouldEscalate("I need help", "so") {
		t.Fatalf("English escalation list must not apply when the default is om")
	}
	if !c.Detect("balaa keessa jira", "so").ImmediateDanger {
		t.Fatalf("expected danger fallback to follow the configured default")
	}
}

func TestDefaultLanguageUnsupportedKeepsEnglish(t *testing.T) {
	c := NewClassifier(Config{DefaultLanguage: "fr"})
	if !c.ShouldEscalate("emergency", "so") {
		t.Fatalf("unsupported default must keep the English fallback list")
	}
}

func TestKeywordOverrides(t *testing.T) {
	c := NewClassifier(Config{EscalationKeywords: map[string][]string{
		"en": {"operator"},
	}})
	if !c.ShouldEscalate("get me an operator", lang.English) {
		t.Fatalf("expected override keyword to escalate")
	}
	if c.ShouldEscalate("I need help", lang.English) {
		t.Fatalf("override should replace the default English list")
	}
}
