package course

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/trainy/internal/llm"
	"github.com/abhisek/trainy/internal/logging"
)

// Options configures a Generator.
type Options struct {
	Quiz        bool
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultOptions returns the generation defaults.
func DefaultOptions() Options {
	return Options{
		Quiz:        true,
		MaxTokens:   4096,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

// Generator produces courses from free-text requests.
type Generator struct {
	provider llm.Provider
	opts     Options
	logger   *logging.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(provider llm.Provider, opts Options, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultOptions().MaxTokens
	}
	return &Generator{provider: provider, opts: opts, logger: logger}
}

// WithQuiz reports whether generated courses include a quiz.
func (g *Generator) WithQuiz() bool {
	return g.opts.Quiz
}

// Generate issues one provider call for userRequest and returns the
// validated course. Every failure is a *GenerationError. The call is bounded
// by the configured timeout and by ctx.
func (g *Generator) Generate(ctx context.Context, userRequest string) (*Content, error) {
	if strings.TrimSpace(userRequest) == "" {
		return nil, ErrBlankRequest
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, llm.PurposeCourse), g.opts.Timeout)
	defer cancel()

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(userRequest, g.opts.Quiz)},
		},
		Schema:      responseSchema(g.opts.Quiz),
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, g.fail(classify(err), err)
	}

	if err := llm.ValidateJSON(Schema(g.opts.Quiz), resp.Content); err != nil {
		return nil, g.fail(classify(err), err)
	}

	c, err := decodeContent(resp.Content, g.opts.Quiz)
	if err != nil {
		return nil, g.fail(ReasonParseFailed, err)
	}

	for i, s := range c.Content {
		if s.Step != i+1 {
			g.logger.Warn("step number does not match position",
				"position", i+1, "step", s.Step, "title", s.Title)
		}
	}

	g.logger.Info("course generated",
		"title", c.Title, "steps", len(c.Content), "quiz", len(c.Quiz), "model", resp.Model)
	return c, nil
}

func (g *Generator) fail(reason Reason, err error) error {
	g.logger.Warn("course generation failed", "reason", string(reason), "error", err)
	return &GenerationError{Reason: reason, Err: err}
}
