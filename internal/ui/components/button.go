package components

import (
	"github.com/abhisek/trainy/internal/ui/theme"
)

// Button is a styled, keyboard-labelled call to action.
type Button struct {
	Label  string
	Key    string // key that triggers it, shown beside the label
	Active bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Key != "" {
		label += "  [" + b.Key + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
