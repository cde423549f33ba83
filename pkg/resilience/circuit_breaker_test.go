package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestIsRateLimit(t *testing.T) {
	if !IsRateLimit(RateLimitError{Provider: "gemini"}) {
		t.Fatalf("expected rate-limit error to be recognized")
	}
	if IsRateLimit(errors.New("timeout")) {
		t.Fatalf("plain errors are not rate limits")
	}
	if IsRateLimit(nil) {
		t.Fatalf("nil is not a rate limit")
	}
}

func TestCircuitOpensOnThreshold(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	cb.OnError(RateLimitError{})
	if !cb.Allow() {
		t.Fatalf("circuit must stay closed below threshold")
	}
	cb.OnError(RateLimitError{})
	if cb.Allow() {
		t.Fatalf("circuit must open at threshold")
	}
}

func TestCircuitIgnoresOtherErrors(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	cb.OnError(errors.New("timeout"))
	if !cb.Allow() {
		t.Fatalf("non-rate-limit errors must not open the circuit")
	}
}

func TestSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	cb.OnError(RateLimitError{})
	cb.OnSuccess()
	cb.OnError(RateLimitError{})
	if !cb.Allow() {
		t.Fatalf("success must reset the failure count")
	}
}
