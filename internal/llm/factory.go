package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/trainy/internal/logging"
	"github.com/abhisek/trainy/internal/store"
)

// Deps carries the optional sinks threaded into every provider.
type Deps struct {
	Events store.EventRepo
	Logger *logging.Logger
	// Mock is used when the configured provider is "mock". A fresh empty
	// MockProvider is created when nil.
	Mock *MockProvider
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = deps.Mock
		if deps.Mock == nil {
			base = NewMockProvider()
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, deps.Events, deps.Logger)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from TRAINY_* environment variables.
func NewProviderFromEnv(ctx context.Context, deps Deps) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), deps)
}
