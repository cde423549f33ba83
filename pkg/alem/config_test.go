package alem

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
vendors:
  llm:
    provider: mock
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Conversation.MaxHistory != 6 {
		t.Fatalf("expected default max_history 6, got %d", cfg.Conversation.MaxHistory)
	}
	if cfg.Store.Driver != "memory" {
		t.Fatalf("expected default memory store, got %q", cfg.Store.Driver)
	}
	if cfg.Languages.Default != "en" {
		t.Fatalf("expected default language en, got %q", cfg.Languages.Default)
	}
	if !cfg.Privacy.RedactPII {
		t.Fatalf("expected PII redaction on by default")
	}
}

func TestLoadConfigRequiresProvider(t *testing.T) {
	path := writeConfig(t, `
environment: production
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error without llm provider")
	}
}

func TestLoadConfigDefaultLanguage(t *testing.T) {
	path := writeConfig(t, `
vendors:
  llm:
    provider: mock
languages:
  default: am
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Languages.Default != "am" {
		t.Fatalf("expected configured default am, got %q", cfg.Languages.Default)
	}

	path = writeConfig(t, `
vendors:
  llm:
    provider: mock
languages:
  default: fr
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for unsupported languages.default")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret-key")
	path := writeConfig(t, `
vendors:
  llm:
    provider: gemini
    settings:
      api_key: ${TEST_LLM_KEY}
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Vendors.LLM.Settings["api_key"]; got != "secret-key" {
		t.Fatalf("expected env expansion, got %v", got)
	}
}

func TestBuildLLMUnknownProvider(t *testing.T) {
	reg := NewProviderRegistry()
	if _, err := reg.BuildLLM("anthropic", Config{}); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}

func TestBuildLLMMissingAPIKey(t *testing.T) {
	reg := NewProviderRegistry()
	cfg := Config{Vendors: VendorsConfig{LLM: VendorConfig{
		Provider: "gemini",
		Settings: map[string]any{"model": "gemini-2.5-flash"},
	}}}
	if _, err := reg.BuildLLM("gemini", cfg); err == nil {
		t.Fatalf("expected error for missing api_key")
	}
}

func TestBuildLLMMockWrappedWithBreaker(t *testing.T) {
	reg := NewProviderRegistry()
	cfg := Config{Resilience: ResilienceConfig{BreakerThreshold: 3, BreakerCooldownMS: 1000}}
	svc, err := reg.BuildLLM("mock", cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if svc.Name() != "mock" {
		t.Fatalf("breaker wrapper must keep the inner provider name, got %q", svc.Name())
	}
}
