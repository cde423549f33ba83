package redact

import (
	"strings"
	"testing"
)

func TestRedactDisabled(t *testing.T) {
	SetEnabled(false)
	in := "reach me at a@b.com or +251 911 234 567"
	if got := Text(in); got != in {
		t.Fatalf("expected no redaction, got %q", got)
	}
}

func TestRedactEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)
	in := "reach me at a@b.com or +251 911 234 567"
	got := Text(in)
	if got == in {
		t.Fatalf("expected redaction")
	}
	if want := "[REDACTED_EMAIL]"; !strings.Contains(got, want) {
		t.Fatalf("expected %q in output", want)
	}
	if want := "[REDACTED_PHONE]"; !strings.Contains(got, want) {
		t.Fatalf("expected %q in output", want)
	}
}

func TestRedactHistory(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)
	entries := []string{"call +251 911 234 567", "I hear you"}
	got := History(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !strings.Contains(got[0], "[REDACTED_PHONE]") {
		t.Fatalf("expected phone redacted, got %q", got[0])
	}
	if got[1] != entries[1] {
		t.Fatalf("expected clean entry untouched")
	}
}
