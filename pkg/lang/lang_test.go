package lang_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/providers/mock"
)

func TestParseCollapsesUnknownToDefault(t *testing.T) {
	cases := map[string]lang.Code{
		"en":       lang.English,
		" AM ":     lang.Amharic,
		"om":       lang.Oromifa,
		"ti":       lang.Tigrigna,
		"fr":       lang.Default,
		"":         lang.Default,
		"amharic!": lang.Default,
	}
	for raw, want := range cases {
		if got := lang.Parse(raw); got != want {
			t.Fatalf("Parse(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestDetectEmptyShortCircuits(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyResult: "am"})
	ident := lang.NewIdentifier(svc, nil)

	code, err := ident.Detect(context.Background(), "   \t ")
	if err != nil {
		t.Fatalf("detect error: %v", err)
	}
	if code != lang.Default {
		t.Fatalf("expected default code, got %s", code)
	}
	if svc.ClassifyCalls() != 0 {
		t.Fatalf("expected no external call for blank text")
	}
}

func TestDetectFallsBackOnFailure(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyErr: errors.New("network down")})
	ident := lang.NewIdentifier(svc, nil)

	code, err := ident.Detect(context.Background(), "selam")
	if code != lang.Default {
		t.Fatalf("expected default code on failure, got %s", code)
	}
	if err == nil {
		t.Fatalf("expected degraded detection to report its reason")
	}
}

func TestDetectInvalidResultCollapses(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyResult: "zz"})
	ident := lang.NewIdentifier(svc, nil)

	code, _ := ident.Detect(context.Background(), "hello")
	if code != lang.Default {
		t.Fatalf("expected default for unsupported result, got %s", code)
	}
}

func TestDetectCollapsesToConfiguredFallback(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyErr: errors.New("network down")})
	ident := lang.NewIdentifier(svc, nil, lang.WithFallback(lang.Amharic))

	if code, _ := ident.Detect(context.Background(), "bonjour"); code != lang.Amharic {
		t.Fatalf("expected configured fallback am on failure, got %s", code)
	}
	if code, err := ident.Detect(context.Background(), "  "); err != nil || code != lang.Amharic {
		t.Fatalf("expected configured fallback for blank text, got (%s, %v)", code, err)
	}
	if ident.Fallback() != lang.Amharic {
		t.Fatalf("expected Fallback() to report am, got %s", ident.Fallback())
	}
}

func TestWithFallbackRejectsUnsupportedCode(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{})
	ident := lang.NewIdentifier(svc, nil, lang.WithFallback(lang.Code("fr")))
	if ident.Fallback() != lang.Default {
		t.Fatalf("unsupported fallback must keep the default, got %s", ident.Fallback())
	}
}

func TestDetectCachedSkipsRepeatCalls(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyResult: "am"})
	ident := lang.NewIdentifier(svc, nil)
	cache := map[string]lang.Code{}

	for i := 0; i < 3; i++ {
		if code := ident.DetectCached(context.Background(), "selam new", cache); code != lang.Amharic {
			t.Fatalf("expected am, got %s", code)
		}
	}
	if svc.ClassifyCalls() != 1 {
		t.Fatalf("expected 1 classify call, got %d", svc.ClassifyCalls())
	}
}

func TestSettleRequiresThreeUserTurns(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyResult: "am"})
	settler := lang.NewSettler(lang.NewIdentifier(svc, nil))
	cache := map[string]lang.Code{}

	// Two user turns, both Amharic: still unsettled.
	history := []string{"selam", "bot reply", "dehna neh"}
	if _, ok := settler.Settle(context.Background(), history, cache); ok {
		t.Fatalf("expected unsettled with only 2 user turns")
	}

	history = append(history, "bot reply", "egziabher yimesgen")
	code, ok := settler.Settle(context.Background(), history, cache)
	if !ok || code != lang.Amharic {
		t.Fatalf("expected settled am, got %s settled=%v", code, ok)
	}
}

func TestSettleMixedLanguagesStaysUnsettled(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyFn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "hello friend") {
			return "en", nil
		}
		return "am", nil
	}})
	settler := lang.NewSettler(lang.NewIdentifier(svc, nil))

	history := []string{"selam", "bot", "dehna neh", "bot", "hello friend"}
	if _, ok := settler.Settle(context.Background(), history, map[string]lang.Code{}); ok {
		t.Fatalf("expected [am am en] to stay unsettled")
	}
}

func TestSettleUsesCacheAcrossTurns(t *testing.T) {
	svc := mock.NewService(mock.ServiceConfig{ClassifyResult: "ti"})
	settler := lang.NewSettler(lang.NewIdentifier(svc, nil))
	cache := map[string]lang.Code{}

	history := []string{"msg one", "bot", "msg two", "bot", "msg three"}
	if _, ok := settler.Settle(context.Background(), history, cache); !ok {
		t.Fatalf("expected settled")
	}
	calls := svc.ClassifyCalls()

	// Same window again: everything is cached, no new calls.
	if _, ok := settler.Settle(context.Background(), history, cache); !ok {
		t.Fatalf("expected settled on repeat")
	}
	if svc.ClassifyCalls() != calls {
		t.Fatalf("expected no additional classify calls, got %d extra", svc.ClassifyCalls()-calls)
	}
}
