// Package player renders a loaded course and drives the navigator from
// key presses.
package player

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/navigation"
	"github.com/abhisek/trainy/internal/router"
	"github.com/abhisek/trainy/internal/screen"
	"github.com/abhisek/trainy/internal/ui/components"
	"github.com/abhisek/trainy/internal/ui/layout"
)

// noHighlight marks a fresh question: the first arrow press lands on the
// first or last option.
const noHighlight = -1

// PlayerScreen shows whichever view the navigator's cursor selects. It keeps
// no course state of its own besides the highlighted quiz row.
type PlayerScreen struct {
	nav       *navigation.Navigator
	markdown  *components.Markdown
	highlight int
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)
var _ screen.StatusProvider = (*PlayerScreen)(nil)

// New creates a player over nav, which must already hold a course.
func New(nav *navigation.Navigator) *PlayerScreen {
	return &PlayerScreen{
		nav:       nav,
		markdown:  components.NewMarkdown(),
		highlight: noHighlight,
	}
}

func (p *PlayerScreen) Init() tea.Cmd { return nil }

func (p *PlayerScreen) Title() string {
	if c := p.nav.Content(); c != nil {
		return c.Title
	}
	return "Course"
}

// Status is the progress label shown in the header.
func (p *PlayerScreen) Status() string {
	return progressLabel(p.nav)
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	home := layout.KeyHint{Key: "h", Description: "Home"}
	switch p.nav.Screen() {
	case navigation.ScreenIntro:
		return []layout.KeyHint{{Key: "Enter", Description: "Start course"}, home}
	case navigation.ScreenStep:
		return []layout.KeyHint{
			{Key: "←/p", Description: "Previous"},
			{Key: "→/n/Enter", Description: "Next"},
			home,
		}
	case navigation.ScreenQuiz:
		if p.nav.Answer().State == navigation.Checked {
			label := "Next"
			if p.nav.IsLastQuestion() {
				label = "Complete"
			}
			return []layout.KeyHint{
				{Key: "←/p", Description: "Previous"},
				{Key: "Enter", Description: label},
				home,
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Choose"},
			{Key: "Enter", Description: "Check answer"},
			{Key: "←/p", Description: "Previous"},
			home,
		}
	case navigation.ScreenComplete:
		return []layout.KeyHint{{Key: "Enter/h", Description: "Back to home"}}
	}
	return []layout.KeyHint{home}
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}

	k := key.String()
	if k == "h" || k == "esc" {
		return p, p.home()
	}

	switch p.nav.Screen() {
	case navigation.ScreenIntro:
		switch k {
		case "enter", "right", "n", "s":
			p.nav.Start()
		}
	case navigation.ScreenStep:
		p.move(k)
	case navigation.ScreenQuiz:
		p.handleQuizKey(k)
	case navigation.ScreenComplete:
		if k == "enter" {
			return p, p.home()
		}
	case navigation.ScreenNoCourse:
		return p, p.home()
	}
	return p, nil
}

func (p *PlayerScreen) move(k string) {
	before := p.nav.Cursor()
	switch k {
	case "enter", "right", "n":
		p.nav.Next()
	case "left", "p":
		p.nav.Previous()
	}
	if p.nav.Cursor() != before {
		p.highlight = noHighlight
	}
}

func (p *PlayerScreen) handleQuizKey(k string) {
	answer := p.nav.Answer()

	switch k {
	case "up", "k":
		if answer.State != navigation.Checked {
			if p.highlight <= 0 {
				p.highlight = course.QuizOptions
			}
			p.highlight--
			p.nav.Select(p.highlight)
		}
		return
	case "down", "j":
		if answer.State != navigation.Checked {
			p.highlight = (p.highlight + 1) % course.QuizOptions
			p.nav.Select(p.highlight)
		}
		return
	case "enter":
		switch answer.State {
		case navigation.Selected:
			p.nav.Check()
		case navigation.Checked:
			p.move("n")
		}
		return
	}

	if opt, ok := optionKey(k); ok {
		if answer.State != navigation.Checked {
			p.highlight = opt
			p.nav.Select(opt)
		}
		return
	}
	p.move(k)
}

// home discards the course and returns to the request screen.
func (p *PlayerScreen) home() tea.Cmd {
	p.nav.GoHome()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

// optionKey maps 1-4 and a-d onto option indices.
func optionKey(k string) (int, bool) {
	if len(k) != 1 {
		return 0, false
	}
	c := k[0]
	switch {
	case c >= '1' && c < '1'+course.QuizOptions:
		return int(c - '1'), true
	case c >= 'a' && c < 'a'+course.QuizOptions:
		return int(c - 'a'), true
	}
	return 0, false
}

func progressLabel(nav *navigation.Navigator) string {
	pos, total := nav.Position()
	switch nav.Screen() {
	case navigation.ScreenIntro:
		return "Intro"
	case navigation.ScreenStep:
		return fmt.Sprintf("Step %d / %d", pos+1, total)
	case navigation.ScreenQuiz:
		return fmt.Sprintf("Quiz %d / %d", pos+1, total)
	case navigation.ScreenComplete:
		return "Complete!"
	}
	return ""
}

func (p *PlayerScreen) View(width, height int) string {
	w := layout.ContentWidth(width)
	bar := components.NewProgressBar(progressLabel(p.nav), p.nav.Progress(), true, w).View()

	var body string
	switch p.nav.Screen() {
	case navigation.ScreenIntro:
		body = renderIntro(p.nav.Content(), w)
	case navigation.ScreenStep:
		body = p.renderStep(w)
	case navigation.ScreenQuiz:
		body = p.renderQuiz(w)
	case navigation.ScreenComplete:
		body = renderComplete(p.nav, w)
	default:
		body = "No course loaded."
	}

	return renderPage(bar, body, width, height)
}
