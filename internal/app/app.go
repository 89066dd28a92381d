// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/logging"
	"github.com/abhisek/trainy/internal/navigation"
	"github.com/abhisek/trainy/internal/router"
	"github.com/abhisek/trainy/internal/screen"
	"github.com/abhisek/trainy/internal/screens/configerror"
	"github.com/abhisek/trainy/internal/screens/home"
	"github.com/abhisek/trainy/internal/ui/layout"
)

// Options configures the terminal application.
type Options struct {
	// Generator builds courses. Unused when Configured is false.
	Generator home.Generator

	// Configured is the result of the configuration probe. When false only
	// the configuration error screen is shown.
	Configured bool

	// Provider and CredentialEnv name the selected backend and the variable
	// that configures it.
	Provider      string
	CredentialEnv string

	// Model is shown in the header.
	Model string

	Logger *logging.Logger
}

// AppModel is the root Bubble Tea model. It owns the navigator shared by
// the home and course screens.
type AppModel struct {
	router *router.Router
	nav    *navigation.Navigator
	status string
	width  int
	height int
}

// newAppModel creates the root model with the home screen, or the
// configuration error screen when no provider is usable.
func newAppModel(opts Options) AppModel {
	nav := navigation.New()

	var root screen.Screen
	if opts.Configured && opts.Generator != nil {
		root = home.New(opts.Generator, nav, opts.Logger)
	} else {
		root = configerror.New(opts.Provider, opts.CredentialEnv)
	}

	status := opts.Model
	if status == "" {
		status = opts.Provider
	}

	return AppModel{
		router: router.New(root),
		nav:    nav,
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := active.Title()

	status := m.status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal application and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal app: %w", err)
	}
	return nil
}
