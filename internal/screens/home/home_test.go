package home

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/navigation"
	"github.com/abhisek/trainy/internal/router"
	"github.com/abhisek/trainy/internal/screens/player"
)

type stubGenerator struct {
	content *course.Content
	err     error
	calls   int
	request string
}

func (g *stubGenerator) Generate(ctx context.Context, request string) (*course.Content, error) {
	g.calls++
	g.request = request
	return g.content, g.err
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func esc() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEscape} }

// collect runs cmd and any batched commands, returning the messages they
// produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findGenerated(t *testing.T, msgs []tea.Msg) generatedMsg {
	t.Helper()
	for _, m := range msgs {
		if g, ok := m.(generatedMsg); ok {
			return g
		}
	}
	t.Fatal("no generatedMsg produced")
	return generatedMsg{}
}

func TestGenerateSuccessPushesPlayer(t *testing.T) {
	gen := &stubGenerator{content: course.Demo()}
	nav := navigation.New()
	h := New(gen, nav, nil)
	h.input.SetValue("  how to pull espresso  ")

	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, h.Loading())
	assert.True(t, h.input.Disabled())
	assert.Contains(t, h.View(100, 40), "Generating your course content...")

	msg := findGenerated(t, collect(cmd))
	assert.Equal(t, "how to pull espresso", gen.request)

	_, cmd = h.Update(msg)
	assert.False(t, h.Loading())
	assert.False(t, h.input.Disabled())
	assert.Equal(t, navigation.ScreenIntro, nav.Screen())
	assert.Empty(t, h.input.Value())

	var pushed bool
	for _, m := range collect(cmd) {
		if p, ok := m.(router.PushScreenMsg); ok {
			_, isPlayer := p.Screen.(*player.PlayerScreen)
			pushed = isPlayer
		}
	}
	assert.True(t, pushed, "expected the course player to be pushed")
}

func TestGenerateFailureShowsReason(t *testing.T) {
	cases := []course.Reason{
		course.ReasonGenerationFailed,
		course.ReasonEmptyResponse,
		course.ReasonParseFailed,
		course.ReasonValidationFailed,
	}
	for _, reason := range cases {
		t.Run(string(reason), func(t *testing.T) {
			gen := &stubGenerator{err: &course.GenerationError{Reason: reason}}
			nav := navigation.New()
			h := New(gen, nav, nil)
			h.input.SetValue("onboarding")

			_, cmd := h.Update(enter())
			h.Update(findGenerated(t, collect(cmd)))

			assert.False(t, h.Loading())
			assert.Equal(t, navigation.ScreenNoCourse, nav.Screen())
			assert.Equal(t, reason.Message(), h.errMsg)
			assert.Equal(t, "onboarding", h.input.Value(), "request is kept for retry")
		})
	}
}

func TestBlankRequestIsRejected(t *testing.T) {
	gen := &stubGenerator{content: course.Demo()}
	h := New(gen, navigation.New(), nil)
	h.input.SetValue("   ")

	_, cmd := h.Update(enter())
	assert.Nil(t, cmd)
	assert.False(t, h.Loading())
	assert.Equal(t, 0, gen.calls)
	assert.Contains(t, h.View(100, 40), "Please describe the course you want first.")
}

func TestSingleRequestInFlight(t *testing.T) {
	gen := &stubGenerator{content: course.Demo()}
	h := New(gen, navigation.New(), nil)
	h.input.SetValue("espresso")

	_, first := h.Update(enter())
	require.NotNil(t, first)
	_, second := h.Update(enter())
	assert.Nil(t, second)
	assert.Equal(t, 1, h.seq)
}

func TestEscCancelsAndDropsLateResult(t *testing.T) {
	gen := &stubGenerator{content: course.Demo()}
	nav := navigation.New()
	h := New(gen, nav, nil)
	h.input.SetValue("espresso")

	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	cancel := h.cancel
	require.NotNil(t, cancel)

	h.Update(esc())
	assert.False(t, h.Loading())
	assert.False(t, h.input.Disabled())
	assert.Contains(t, h.View(100, 40), "Generation cancelled.")

	// The stale result arrives after cancellation.
	h.Update(generatedMsg{Seq: 1, Content: course.Demo()})
	assert.Equal(t, navigation.ScreenNoCourse, nav.Screen())
}

func TestCancelledContextReachesGenerator(t *testing.T) {
	blocked := make(chan error, 1)
	gen := generatorFunc(func(ctx context.Context, _ string) (*course.Content, error) {
		select {
		case <-ctx.Done():
			blocked <- ctx.Err()
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			blocked <- nil
			return course.Demo(), nil
		}
	})
	h := New(gen, navigation.New(), nil)
	h.input.SetValue("espresso")

	_, cmd := h.Update(enter())
	go collect(cmd)
	h.Update(esc())

	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("generator was not cancelled")
	}
}

type generatorFunc func(ctx context.Context, request string) (*course.Content, error)

func (f generatorFunc) Generate(ctx context.Context, request string) (*course.Content, error) {
	return f(ctx, request)
}

func TestSpinnerTicksOnlyWhileLoading(t *testing.T) {
	h := New(&stubGenerator{}, navigation.New(), nil)

	_, cmd := h.Update(spinnerTickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, h.frame)

	h.loading = true
	_, cmd = h.Update(spinnerTickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, h.frame)
}

func TestResumeClearsError(t *testing.T) {
	h := New(&stubGenerator{}, navigation.New(), nil)
	h.errMsg = "old"
	h.Resume()
	assert.Empty(t, h.errMsg)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Generation cancelled.", errorMessage(context.Canceled))
	assert.Equal(t, "Please describe the course you want first.", errorMessage(course.ErrBlankRequest))
	assert.Equal(t, course.ReasonGenerationFailed.Message(), errorMessage(assert.AnError))
}
