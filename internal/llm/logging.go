package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/trainy/internal/logging"
	"github.com/abhisek/trainy/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as a
// diagnostics event and a structured log line. Response bodies are
// never recorded.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *logging.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo or logger
// disables that sink.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *logging.Logger) Provider {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

// eventWriteTimeout bounds the diagnostics insert once the request is done.
const eventWriteTimeout = 5 * time.Second

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	purpose := PurposeFrom(ctx)
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEventData{
		RequestID:   requestID,
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log := l.logger.With("request_id", requestID, "provider", l.provider,
		"model", data.Model, "purpose", purpose, "latency_ms", data.LatencyMs)
	if err != nil {
		log.Warn("llm request failed", "error", err)
	} else {
		log.Info("llm request completed",
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	// Recorded even when ctx was cancelled or timed out; the request outcome
	// stands either way.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventWriteTimeout)
	defer cancel()
	if logErr := l.eventRepo.AppendLLMRequest(writeCtx, data); logErr != nil {
		log.Warn("failed to record llm request event", "error", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
