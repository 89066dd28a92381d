package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestMultiChoiceIsCorrect(t *testing.T) {
	mc := MultiChoice{Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2, Chosen: 2}
	if mc.IsCorrect() {
		t.Error("unchecked answer must not count as correct")
	}
	mc.Checked = true
	if !mc.IsCorrect() {
		t.Error("expected correct after check")
	}
	mc.Chosen = 1
	if mc.IsCorrect() {
		t.Error("expected incorrect")
	}
}

func TestMultiChoiceViewLabels(t *testing.T) {
	mc := MultiChoice{Question: "Pick one", Options: []string{"red", "green", "blue", "grey"}, Chosen: -1}
	view := mc.View()
	for i, opt := range mc.Options {
		if !strings.Contains(view, OptionLabels[i]+".  "+opt) {
			t.Errorf("missing option %s", opt)
		}
	}
	if strings.Contains(view, "✓") {
		t.Error("correct mark shown before check")
	}

	mc.Chosen, mc.CorrectIndex, mc.Checked = 0, 1, true
	view = mc.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Error("expected both marks after a wrong check")
	}
}

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []int{-10, 0, 43, 100, 150} {
		bar := NewProgressBar("", pct, false, 40).View()
		if w := lipgloss.Width(bar); w != 40 {
			t.Errorf("percent %d: width %d, want 40", pct, w)
		}
	}
}

func TestTextInputDisabledDropsKeys(t *testing.T) {
	ti := NewTextInput("placeholder", 10)
	ti.SetDisabled(true)
	if !ti.Disabled() {
		t.Fatal("expected disabled")
	}
	ti.SetValue("abc")
	if ti.Value() != "abc" {
		t.Errorf("SetValue must work while disabled, got %q", ti.Value())
	}
	ti.SetDisabled(false)
	if ti.Disabled() {
		t.Error("expected enabled")
	}
}
