package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/abhisek/trainy/internal/ui/theme"
)

// Markdown renders step bodies. Renderers are built per wrap width and
// reused across frames.
type Markdown struct {
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a Markdown renderer cache.
func NewMarkdown() *Markdown {
	return &Markdown{renderers: make(map[int]*glamour.TermRenderer)}
}

// Render formats text as terminal markdown wrapped at width. Plain wrapped
// text is returned if glamour fails.
func (m *Markdown) Render(text string, width int) string {
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return plain(text, width)
		}
		m.renderers[width] = r
	}

	out, err := r.Render(text)
	if err != nil {
		return plain(text, width)
	}
	return strings.Trim(out, "\n")
}

func plain(text string, width int) string {
	return theme.Body.Width(width).Render(text)
}
