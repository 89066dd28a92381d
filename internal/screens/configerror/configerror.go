// Package configerror shows the terminal screen rendered when no LLM
// credential is available.
package configerror

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/screen"
	"github.com/abhisek/trainy/internal/ui/layout"
	"github.com/abhisek/trainy/internal/ui/theme"
)

// ConfigErrorScreen explains how to configure a provider. It accepts no
// input; the app quits on ctrl+c.
type ConfigErrorScreen struct {
	provider string
	envVar   string
}

var _ screen.Screen = (*ConfigErrorScreen)(nil)
var _ screen.KeyHintProvider = (*ConfigErrorScreen)(nil)

// New creates the screen for provider, naming the variable envVar that
// would configure it.
func New(provider, envVar string) *ConfigErrorScreen {
	return &ConfigErrorScreen{provider: provider, envVar: envVar}
}

func (c *ConfigErrorScreen) Init() tea.Cmd { return nil }

func (c *ConfigErrorScreen) Title() string { return "Setup" }

func (c *ConfigErrorScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return c, nil
}

func (c *ConfigErrorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (c *ConfigErrorScreen) View(width, height int) string {
	w := min(layout.ContentWidth(width), 64)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Configuration Required"))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text).Width(w - 4)
	code := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	if c.envVar != "" {
		b.WriteString(body.Render("Trainy needs an API key for the " + c.provider + " provider. Set " + code.Render(c.envVar) + " in your environment and restart."))
	} else {
		b.WriteString(body.Render("The provider " + code.Render(c.provider) + " is not supported. Choose openrouter, openai, anthropic, gemini or mock."))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Keys can also be placed in a .env file in the working directory."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Run with --provider mock to try the offline demo course."))

	card := theme.ErrorCard.Width(w).Render(b.String())
	return layout.Center(card, width, height)
}
