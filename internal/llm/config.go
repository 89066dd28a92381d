package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "openai", "anthropic", "gemini", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation, including retries. Default: 60s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string // Default: the SDK's endpoint
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o"
	BaseURL string // Optional. Override for compatible APIs.

	// Headers are added to every request. Used for OpenRouter attribution.
	Headers map[string]string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
	Referer string // Sent as HTTP-Referer
	Title   string // Sent as X-Title
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// credentialVars lists, per provider, the environment variables that may
// hold its API key, in lookup order.
var credentialVars = map[string][]string{
	ProviderOpenRouter: {"TRAINY_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	ProviderOpenAI:     {"TRAINY_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic:  {"TRAINY_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderGemini:     {"TRAINY_GEMINI_API_KEY", "GEMINI_API_KEY"},
}

// CredentialVars returns the environment variables consulted for the
// provider's API key. The mock provider needs none.
func CredentialVars(provider string) []string {
	return credentialVars[provider]
}

// LookupCredential returns the first non-empty credential for provider
// from the environment.
func LookupCredential(provider string) (string, bool) {
	for _, name := range credentialVars[provider] {
		if v := os.Getenv(name); v != "" {
			return v, true
		}
	}
	return "", false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenRouter,
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o",
			Title: "Trainy",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("TRAINY_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.OpenRouter.APIKey, _ = LookupCredential(ProviderOpenRouter)
	cfg.OpenAI.APIKey, _ = LookupCredential(ProviderOpenAI)
	cfg.Anthropic.APIKey, _ = LookupCredential(ProviderAnthropic)
	cfg.Gemini.APIKey, _ = LookupCredential(ProviderGemini)

	if m := os.Getenv("TRAINY_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("TRAINY_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}
	if r := os.Getenv("TRAINY_OPENROUTER_REFERER"); r != "" {
		cfg.OpenRouter.Referer = r
	}
	if m := os.Getenv("TRAINY_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("TRAINY_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := os.Getenv("TRAINY_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if u := os.Getenv("TRAINY_ANTHROPIC_BASE_URL"); u != "" {
		cfg.Anthropic.BaseURL = u
	}
	if m := os.Getenv("TRAINY_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if v := os.Getenv("TRAINY_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("TRAINY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	}
}

// Model returns the model of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missingKey(c.Provider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missingKey(c.Provider)
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missingKey(c.Provider)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missingKey(c.Provider)
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func missingKey(provider string) error {
	return fmt.Errorf("%s is required for the %s provider", credentialVars[provider][0], provider)
}
