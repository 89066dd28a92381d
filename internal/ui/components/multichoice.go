package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/ui/theme"
)

// OptionLabels are the letters shown before quiz options.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a four-option question. It holds no state of its
// own: the caller passes the highlighted row, the chosen option and whether
// the answer has been checked.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Highlight    int  // row under the cursor
	Chosen       int  // selected option, -1 for none
	Checked      bool // answer locked and revealed
	Width        int
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if m.Width > 0 {
		questionStyle = questionStyle.Width(m.Width)
	}
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}

		prefix := "  "
		if !m.Checked && i == m.Highlight {
			prefix = "▸ "
		}
		marker := "○"
		if i == m.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s.  %s", prefix, marker, label, opt)

		var style lipgloss.Style
		switch {
		case m.Checked && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Checked && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.Checked:
			style = theme.Muted
		case i == m.Chosen:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the checked answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Checked && m.Chosen == m.CorrectIndex
}
