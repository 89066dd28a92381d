package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_Fallback(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"first":true}`)})
	mock.SetFallback(MockResponse{Content: json.RawMessage(`{"demo":true}`)})

	for i, want := range []string{`{"first":true}`, `{"demo":true}`, `{"demo":true}`} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if string(resp.Content) != want {
			t.Fatalf("call %d: got %s, want %s", i, resp.Content, want)
		}
	}
}

func TestMockProvider_CanceledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeCourse)
	if p := PurposeFrom(ctx); p != "course" {
		t.Fatalf("expected 'course', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, vars := range credentialVars {
		for _, v := range vars {
			t.Setenv(v, "")
		}
	}
	t.Setenv("TRAINY_LLM_PROVIDER", "")
	t.Setenv("TRAINY_LLM_MAX_ATTEMPTS", "")
	t.Setenv("TRAINY_LLM_TIMEOUT", "")
	t.Setenv("TRAINY_OPENROUTER_MODEL", "")
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("provider = %q, want openrouter", cfg.Provider)
	}
	if cfg.OpenRouter.Model != "openai/gpt-4o" {
		t.Errorf("openrouter model = %q", cfg.OpenRouter.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("max attempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("timeout = %s, want 60s", cfg.Timeout)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without credentials")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "fallback")
	t.Setenv("TRAINY_OPENROUTER_API_KEY", "primary")
	t.Setenv("TRAINY_OPENROUTER_MODEL", "anthropic/claude-3-haiku")
	t.Setenv("TRAINY_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("TRAINY_LLM_TIMEOUT", "5s")
	t.Setenv("TRAINY_ANTHROPIC_BASE_URL", "http://localhost:9999")

	cfg := ConfigFromEnv()
	if cfg.OpenRouter.APIKey != "primary" {
		t.Errorf("api key = %q, want primary", cfg.OpenRouter.APIKey)
	}
	if cfg.OpenRouter.Model != "anthropic/claude-3-haiku" {
		t.Errorf("model = %q", cfg.OpenRouter.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if cfg.Anthropic.BaseURL != "http://localhost:9999" {
		t.Errorf("anthropic base url = %q", cfg.Anthropic.BaseURL)
	}
}

func TestLookupCredential_FallsBack(t *testing.T) {
	clearCredentialEnv(t)
	if _, ok := LookupCredential(ProviderAnthropic); ok {
		t.Fatal("expected no credential")
	}
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	if v, ok := LookupCredential(ProviderAnthropic); !ok || v != "sk-ant" {
		t.Fatalf("LookupCredential = %q, %v", v, ok)
	}
	if vars := CredentialVars(ProviderMock); len(vars) != 0 {
		t.Fatalf("mock should need no credential, got %v", vars)
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetModel("openai/gpt-4o-mini")
	if cfg.OpenRouter.Model != "openai/gpt-4o-mini" {
		t.Errorf("openrouter model = %q", cfg.OpenRouter.Model)
	}
	cfg.SetModel("")
	if cfg.OpenRouter.Model != "openai/gpt-4o-mini" {
		t.Error("empty model must not override")
	}

	cfg.Provider = ProviderAnthropic
	cfg.SetModel("claude-haiku")
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("anthropic model = %q", cfg.Anthropic.Model)
	}
	if cfg.Model() != "claude-haiku" {
		t.Errorf("Model() = %q", cfg.Model())
	}

	cfg.Provider = ProviderMock
	if cfg.Model() != "mock" {
		t.Errorf("mock Model() = %q", cfg.Model())
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gpt-4o"); c == nil || c.InputPerMTok != 2.5 {
		t.Fatalf("gpt-4o cost = %+v", c)
	}
	if c := LookupCost("openai/gpt-4o"); c == nil || c.OutputPerMTok != 10 {
		t.Fatalf("openai/gpt-4o cost = %+v", c)
	}
	if c := LookupCost("nobody/unknown"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
	got := ModelCost{InputPerMTok: 2, OutputPerMTok: 8}.Cost(500_000, 250_000)
	if got != 3 {
		t.Fatalf("Cost = %v, want 3", got)
	}
}
