package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the model provider.
type Config struct {
	// Provider picks the backing service: "anthropic", "openai", "gemini",
	// or "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single request, retries included.
	Timeout time.Duration
}

// AnthropicConfig configures the Anthropic client.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig configures the OpenAI client. BaseURL points it at an
// OpenAI-compatible endpoint when set.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig shapes the backoff loop wrapped around every provider.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the recommended defaults: Anthropic's small model,
// three attempts, 30 second timeout.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads QUIZLR_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Provider = envOr("QUIZLR_LLM_PROVIDER", cfg.Provider)

	cfg.Anthropic.APIKey = os.Getenv("QUIZLR_ANTHROPIC_API_KEY")
	cfg.Anthropic.Model = envOr("QUIZLR_ANTHROPIC_MODEL", cfg.Anthropic.Model)

	cfg.OpenAI.APIKey = os.Getenv("QUIZLR_OPENAI_API_KEY")
	cfg.OpenAI.Model = envOr("QUIZLR_OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = os.Getenv("QUIZLR_OPENAI_BASE_URL")

	cfg.Gemini.APIKey = os.Getenv("QUIZLR_GEMINI_API_KEY")
	cfg.Gemini.Model = envOr("QUIZLR_GEMINI_MODEL", cfg.Gemini.Model)

	return cfg
}

// keyProbes lists the providers' own key variables in discovery priority
// order.
var keyProbes = []struct {
	envVar   string
	provider string
	apply    func(*Config, string)
}{
	{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
}

// DiscoverConfig probes the providers' own key variables and returns a
// Config for the first one present. The second return is false when no key
// is set.
func DiscoverConfig() (Config, bool) {
	for _, probe := range keyProbes {
		key := os.Getenv(probe.envVar)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = probe.provider
		probe.apply(&cfg, key)
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic":
		key, envVar = c.Anthropic.APIKey, "QUIZLR_ANTHROPIC_API_KEY"
	case "openai":
		key, envVar = c.OpenAI.APIKey, "QUIZLR_OPENAI_API_KEY"
	case "gemini":
		key, envVar = c.Gemini.APIKey, "QUIZLR_GEMINI_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// resolveModel turns a friendly model alias into the provider's real model
// ID. Unknown names pass through so direct IDs keep working.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
