package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
// Model IDs are namespaced ("openai/gpt-4o") and passed through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		Headers: openRouterHeaders(cfg),
	}, cfg.Model, ProviderOpenRouter)

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// openRouterHeaders builds the app attribution headers OpenRouter reads.
func openRouterHeaders(cfg OpenRouterConfig) map[string]string {
	h := map[string]string{}
	if cfg.Referer != "" {
		h["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		h["X-Title"] = cfg.Title
	}
	return h
}
