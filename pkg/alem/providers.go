package alem

import (
	"fmt"
	"strings"
	"time"

	"github.com/alemhq/alem/pkg/configutil"
	"github.com/alemhq/alem/pkg/llm"
	"github.com/alemhq/alem/pkg/providers/gemini"
	"github.com/alemhq/alem/pkg/providers/mock"
	"github.com/alemhq/alem/pkg/providers/openai"
)

type LLMFactory func(cfg Config) (llm.Service, error)

// ProviderRegistry maps provider names from config to service factories.
// The built-in providers are registered by default; embedders can add their
// own before building the engine.
type ProviderRegistry struct {
	llm map[string]LLMFactory
}

func NewProviderRegistry() *ProviderRegistry {
	r := &ProviderRegistry{llm: make(map[string]LLMFactory)}
	r.RegisterLLM("gemini", buildGemini)
	r.RegisterLLM("openai", buildOpenAI)
	r.RegisterLLM("mock", buildMock)
	return r
}

func (r *ProviderRegistry) RegisterLLM(name string, factory LLMFactory) {
	r.llm[strings.ToLower(strings.TrimSpace(name))] = factory
}

// BuildLLM constructs the configured text service, wrapped with the circuit
// breaker when resilience settings enable it.
func (r *ProviderRegistry) BuildLLM(provider string, cfg Config) (llm.Service, error) {
	fn := r.llm[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, fmt.Errorf("llm provider not registered: %s", provider)
	}
	svc, err := fn(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Resilience.BreakerThreshold > 0 {
		cooldown := time.Duration(cfg.Resilience.BreakerCooldownMS) * time.Millisecond
		svc = llm.WithBreaker(svc, cfg.Resilience.BreakerThreshold, cooldown)
	}
	return svc, nil
}

type textVendorSettings struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

var textVendorSchema = configutil.Schema{
	Required: []string{"api_key"},
	Optional: []string{"model"},
}

func buildGemini(cfg Config) (llm.Service, error) {
	settings, err := decodeTextVendor(cfg.Vendors.LLM.Settings, "vendors.llm")
	if err != nil {
		return nil, err
	}
	return gemini.NewAdapter(settings.APIKey, settings.Model), nil
}

func buildOpenAI(cfg Config) (llm.Service, error) {
	settings, err := decodeTextVendor(cfg.Vendors.LLM.Settings, "vendors.llm")
	if err != nil {
		return nil, err
	}
	return openai.NewAdapter(settings.APIKey, settings.Model), nil
}

func buildMock(cfg Config) (llm.Service, error) {
	return mock.NewService(mock.ServiceConfig{}), nil
}

func decodeTextVendor(input map[string]any, path string) (textVendorSettings, error) {
	if err := configutil.ValidateSettings(input, textVendorSchema); err != nil {
		return textVendorSettings{}, fmt.Errorf("%s settings: %w", path, err)
	}
	var settings textVendorSettings
	if err := configutil.DecodeSettings(input, &settings); err != nil {
		return textVendorSettings{}, fmt.Errorf("%s settings: %w", path, err)
	}
	return settings, nil
}
