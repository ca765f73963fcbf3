package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional. Override the Gemini API endpoint.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays QUIZCRAFT_* environment variables onto cfg. Unset or
// empty variables leave the current value alone.
func ApplyEnv(cfg *Config) {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"QUIZCRAFT_LLM_PROVIDER", &cfg.Provider},
		{"QUIZCRAFT_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"QUIZCRAFT_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"QUIZCRAFT_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"QUIZCRAFT_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"QUIZCRAFT_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"QUIZCRAFT_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"QUIZCRAFT_GEMINI_MODEL", &cfg.Gemini.Model},
		{"QUIZCRAFT_GEMINI_BASE_URL", &cfg.Gemini.BaseURL},
		{"QUIZCRAFT_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"QUIZCRAFT_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
		{"QUIZCRAFT_OPENROUTER_BASE_URL", &cfg.OpenRouter.BaseURL},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
}

// discoveryOrder lists the standard key variables probed by DiscoverConfig.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and fills in the first
// provider whose key is found. Returns (base, false) if none found.
func DiscoverConfig(base Config) (Config, bool) {
	for _, d := range discoveryOrder {
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg := base
		cfg.Provider = d.provider
		*cfg.apiKey(d.provider) = k
		return cfg, true
	}
	return base, false
}

// apiKey returns the key field of the named provider, or nil.
func (c *Config) apiKey(provider string) *string {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	key := c.apiKey(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("QUIZCRAFT_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
