package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/navigation"
	"github.com/abhisek/trainy/internal/ui/components"
	"github.com/abhisek/trainy/internal/ui/theme"
)

// renderPage stacks the progress bar above the body, horizontally centered.
func renderPage(bar, body string, width, height int) string {
	block := lipgloss.JoinVertical(lipgloss.Left, bar, "", body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().MaxHeight(height).Render(block))
}

func renderIntro(c *course.Content, width int) string {
	title := theme.Title.Width(width).Align(lipgloss.Center).Render(c.Title)
	desc := theme.Subtitle.Width(width).Align(lipgloss.Center).Render(c.Description)

	summary := fmt.Sprintf("%d steps", len(c.Content))
	if c.HasQuiz() {
		summary += fmt.Sprintf(" · %d quiz questions", len(c.Quiz))
	}

	button := components.NewButton("Start Course", "Enter", true).View()

	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		title,
		"",
		desc,
		"",
		theme.Hint.Render(summary),
		"",
		button,
	)
}

func (p *PlayerScreen) renderStep(width int) string {
	step, _ := p.nav.Step()
	c := p.nav.Content()

	badge := theme.Badge.Render(fmt.Sprintf("%d", step.Step))
	heading := badge + " " + theme.Title.Render(step.Title)
	crumb := theme.Hint.Render(c.Title)

	body := p.markdown.Render(step.Content, width-4)

	next := "Next"
	pos, total := p.nav.Position()
	if pos == total-1 {
		next = "Complete"
		if c.HasQuiz() {
			next = "Start Quiz"
		}
	}
	nav := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewButton("Previous", "←", true).View(),
		"  ",
		components.NewButton(next, "→", true).View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		crumb,
		"",
		theme.Card.Width(width).Render(body),
		"",
		nav,
	)
}

func (p *PlayerScreen) renderQuiz(width int) string {
	q, _ := p.nav.Question()
	pos, total := p.nav.Position()
	answer := p.nav.Answer()

	var b strings.Builder
	b.WriteString(theme.Badge.Render(fmt.Sprintf("Q%d", pos+1)))
	b.WriteString(" ")
	b.WriteString(theme.Title.Render("Quiz Time!"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Test your knowledge of " + p.nav.Content().Title))
	b.WriteString("\n\n")

	mc := components.MultiChoice{
		Question:     q.Question,
		Options:      q.Options[:],
		CorrectIndex: q.CorrectAnswer,
		Highlight:    p.highlight,
		Chosen:       answer.Option,
		Checked:      answer.State == navigation.Checked,
		Width:        width - 4,
	}
	b.WriteString(theme.Card.Width(width).Render(strings.TrimRight(mc.View(), "\n")))
	b.WriteString("\n\n")

	switch answer.State {
	case navigation.Checked:
		verdict := theme.Incorrect.Render("✗ Incorrect")
		if answer.Correct {
			verdict = theme.Correct.Render("✓ Correct!")
		}
		explanation := theme.Body.Width(width - 4).Render(q.Explanation)
		b.WriteString(theme.Card.Width(width).Render(verdict + "\n" + explanation))
		b.WriteString("\n\n")

		label := "Next"
		if p.nav.IsLastQuestion() {
			label = "Complete"
		}
		b.WriteString(components.NewButton(label, "Enter", true).View())
	default:
		b.WriteString(components.NewButton("Check Answer", "Enter", answer.State == navigation.Selected).View())
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", pos+1, total)))
	return b.String()
}

func renderComplete(nav *navigation.Navigator, width int) string {
	c := nav.Content()
	lines := []string{
		"",
		theme.Title.Render("Congratulations!"),
		"",
		theme.Body.Width(width).Align(lipgloss.Center).
			Render("You have successfully completed the course: " + lipgloss.NewStyle().Bold(true).Render(c.Title)),
	}
	if correct, answered := nav.Score(); answered > 0 {
		lines = append(lines, "", theme.Subtitle.Render(fmt.Sprintf("Quiz score: %d / %d", correct, len(c.Quiz))))
	}
	lines = append(lines, "", components.NewButton("Back to Home", "Enter", true).View())
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
