// Package home implements the request screen where a course is described
// and generated.
package home

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/logging"
	"github.com/abhisek/trainy/internal/navigation"
	"github.com/abhisek/trainy/internal/router"
	"github.com/abhisek/trainy/internal/screen"
	"github.com/abhisek/trainy/internal/screens/player"
	"github.com/abhisek/trainy/internal/ui/components"
	"github.com/abhisek/trainy/internal/ui/layout"
	"github.com/abhisek/trainy/internal/ui/theme"
)

const (
	placeholder   = "Describe the course you want to generate..."
	requestLimit  = 500
	spinnerPeriod = 100 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Generator produces a course from a free-text request.
type Generator interface {
	Generate(ctx context.Context, request string) (*course.Content, error)
}

// generatedMsg carries a finished generation. Seq identifies the request it
// answers so results of cancelled requests can be dropped.
type generatedMsg struct {
	Seq     int
	Content *course.Content
	Err     error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

// HomeScreen takes the course request and runs generation.
type HomeScreen struct {
	generator Generator
	nav       *navigation.Navigator
	logger    *logging.Logger
	input     components.TextInput

	loading bool
	seq     int
	cancel  context.CancelFunc
	frame   int
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen. Generated courses are loaded into nav.
func New(generator Generator, nav *navigation.Navigator, logger *logging.Logger) *HomeScreen {
	if logger == nil {
		logger = logging.Nop()
	}
	return &HomeScreen{
		generator: generator,
		nav:       nav,
		logger:    logger,
		input:     components.NewTextInput(placeholder, requestLimit),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return "New Course"
}

// Resume runs when the course screen above is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.errMsg = ""
	return tea.Batch(h.input.SetDisabled(false), h.input.Init())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.loading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Loading reports whether a request is in flight.
func (h *HomeScreen) Loading() bool {
	return h.loading
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return h.handleGenerated(msg)

	case spinnerTickMsg:
		if !h.loading {
			return h, nil
		}
		h.frame = (h.frame + 1) % len(spinnerFrames)
		return h, spinnerTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return h, h.submit()
		case "esc":
			if h.loading {
				return h, h.abort()
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// submit starts generation for the current input. Ignored while a request
// is already running.
func (h *HomeScreen) submit() tea.Cmd {
	if h.loading {
		return nil
	}
	request := strings.TrimSpace(h.input.Value())
	if request == "" {
		h.errMsg = "Please describe the course you want first."
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.seq++
	h.cancel = cancel
	h.loading = true
	h.errMsg = ""
	h.frame = 0
	h.input.SetDisabled(true)

	seq := h.seq
	gen := h.generator
	h.logger.Info("course generation started", "seq", seq, "request_len", len(request))

	return tea.Batch(
		func() tea.Msg {
			content, err := gen.Generate(ctx, request)
			return generatedMsg{Seq: seq, Content: content, Err: err}
		},
		spinnerTick(),
	)
}

// abort cancels the in-flight request. Its result is ignored when it
// arrives.
func (h *HomeScreen) abort() tea.Cmd {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.seq++
	h.loading = false
	h.errMsg = "Generation cancelled."
	h.logger.Info("course generation cancelled")
	return h.input.SetDisabled(false)
}

func (h *HomeScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != h.seq || !h.loading {
		return h, nil
	}
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.loading = false
	focus := h.input.SetDisabled(false)

	if msg.Err != nil {
		h.errMsg = errorMessage(msg.Err)
		h.logger.Warn("course generation failed", "reason", string(course.ReasonOf(msg.Err)), "error", msg.Err)
		return h, focus
	}

	h.input.SetValue("")
	h.nav.Load(msg.Content)
	next := player.New(h.nav)
	return h, tea.Batch(focus, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	})
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, course.ErrBlankRequest):
		return "Please describe the course you want first."
	case errors.Is(err, context.Canceled):
		return "Generation cancelled."
	}
	if reason := course.ReasonOf(err); reason != "" {
		return reason.Message()
	}
	return course.ReasonGenerationFailed.Message()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerPeriod, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height)
	w := layout.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(width, compact))
	if !compact {
		sections = append(sections, "")
	}
	sections = append(sections,
		theme.Subtitle.Render("Short, practical courses for your first weeks on the job."),
		"",
	)

	if h.loading {
		spinner := lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[h.frame])
		sections = append(sections, spinner+" "+theme.Hint.Render("Generating your course content..."))
	} else {
		sections = append(sections, theme.Hint.Render("Describe the course you want to generate below."))
	}
	sections = append(sections, "")

	h.input.Model.SetWidth(w - 6)
	sections = append(sections, theme.Card.Width(w).Render(h.input.View()))

	if h.errMsg != "" {
		sections = append(sections, "", theme.ErrorCard.Width(w).Render(h.errMsg))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return layout.Center(block, width, height)
}
