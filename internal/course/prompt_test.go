package course

import (
	"strings"
	"testing"
)

func TestBuildPrompt_EmbedsRequestVerbatim(t *testing.T) {
	req := `make a "flat white" {{request}} & latte art`
	p := BuildPrompt(req, false)

	if !strings.Contains(p, "Today I will be learning about the following task: "+req+".") {
		t.Fatalf("request not embedded verbatim:\n%s", p)
	}
}

func TestBuildPrompt_TemplateContract(t *testing.T) {
	p := BuildPrompt("learn to make espresso", false)

	for _, want := range []string{
		"new employee",
		"Return the response as a valid JSON",
		"only practical steps and not theoretical ones",
		"at least 5 steps and max 10 steps",
		"precise quantities and measurements",
		"Avoid numbered lists",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(p, "quiz") {
		t.Error("no-quiz prompt must not ask for a quiz")
	}
}

func TestBuildPrompt_QuizVariant(t *testing.T) {
	without := BuildPrompt("learn to make espresso", false)
	with := BuildPrompt("learn to make espresso", true)

	if !strings.HasPrefix(with, without) {
		t.Fatal("quiz variant should extend the base template")
	}
	for _, want := range []string{"exactly 3 multiple-choice questions", "exactly 4 options", "correctAnswer", "explanation"} {
		if !strings.Contains(with, want) {
			t.Errorf("quiz prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	if BuildPrompt("x", true) != BuildPrompt("x", true) {
		t.Fatal("BuildPrompt is not deterministic")
	}
}
