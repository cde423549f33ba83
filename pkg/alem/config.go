package alem

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/alemhq/alem/pkg/lang"
)

type Config struct {
	Environment   string              `mapstructure:"environment"`
	LogLevel      string              `mapstructure:"log_level"`
	LogFormat     string              `mapstructure:"log_format"`
	Vendors       VendorsConfig       `mapstructure:"vendors"`
	Store         StoreConfig         `mapstructure:"store"`
	Server        ServerConfig        `mapstructure:"server"`
	Languages     LanguageConfig      `mapstructure:"languages"`
	Conversation  ConversationConfig  `mapstructure:"conversation"`
	Safety        SafetyConfig        `mapstructure:"safety"`
	Resilience    ResilienceConfig    `mapstructure:"resilience"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Privacy       PrivacyConfig       `mapstructure:"privacy"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	LLM VendorConfig `mapstructure:"llm"`
}

type StoreConfig struct {
	Driver   string         `mapstructure:"driver"`
	Settings map[string]any `mapstructure:"settings"`
}

type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	WSAddr string `mapstructure:"ws_addr"`
}

type LanguageConfig struct {
	Default string `mapstructure:"default"`
}

type ConversationConfig struct {
	MaxHistory int `mapstructure:"max_history"`
}

// SafetyConfig lets deployments extend the curated keyword lists without a
// code change. Keys are language codes.
type SafetyConfig struct {
	EscalationKeywords map[string][]string `mapstructure:"escalation_keywords"`
	DangerKeywords     map[string][]string `mapstructure:"danger_keywords"`
	SuicidalKeywords   map[string][]string `mapstructure:"suicidal_keywords"`
	DistressPhrases    []string            `mapstructure:"distress_phrases"`
}

type ResilienceConfig struct {
	BreakerThreshold  int `mapstructure:"breaker_threshold"`
	BreakerCooldownMS int `mapstructure:"breaker_cooldown_ms"`
}

type ObservabilityConfig struct {
	EventsPath  string `mapstructure:"events_path"`
	AsyncBuffer int    `mapstructure:"async_buffer"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("languages.default", "en")
	v.SetDefault("conversation.max_history", 6)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.ws_addr", "")
	v.SetDefault("resilience.breaker_threshold", 3)
	v.SetDefault("resilience.breaker_cooldown_ms", 30000)
	v.SetDefault("observability.events_path", "")
	v.SetDefault("observability.async_buffer", 2048)
	v.SetDefault("privacy.redact_pii", true)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	expandEnvStrings(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Vendors.LLM.Provider) == "" {
		return fmt.Errorf("vendors.llm.provider is required")
	}
	if strings.TrimSpace(c.Store.Driver) == "" {
		return fmt.Errorf("store.driver is required")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if d := strings.TrimSpace(c.Languages.Default); d != "" && !lang.Supported(lang.Code(strings.ToLower(d))) {
		return fmt.Errorf("languages.default %q is not a supported language", d)
	}
	return nil
}

func expandEnvStrings(cfg *Config) {
	expandValue(reflect.ValueOf(cfg))
	cfg.Vendors.LLM.Settings = expandSettings(cfg.Vendors.LLM.Settings)
	cfg.Store.Settings = expandSettings(cfg.Store.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, v := range val {
			val[k] = expandAny(v)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = expandAny(v)
		}
		return out
	default:
		return v
	}
}

func expandValue(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		expandValue(v.Elem())
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandValue(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.ExpandEnv(v.String()))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			expandValue(v.Index(i))
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && v.Type().Elem().Kind() == reflect.String {
			for _, key := range v.MapKeys() {
				val := v.MapIndex(key)
				expanded := os.ExpandEnv(val.String())
				v.SetMapIndex(key, reflect.ValueOf(expanded))
			}
		}
	}
}
