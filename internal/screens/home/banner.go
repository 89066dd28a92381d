package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trainy/internal/ui/theme"
)

const bannerArt = `
 ████████╗██████╗  █████╗ ██╗███╗   ██╗██╗   ██╗
 ╚══██╔══╝██╔══██╗██╔══██╗██║████╗  ██║╚██╗ ██╔╝
    ██║   ██████╔╝███████║██║██╔██╗ ██║ ╚████╔╝
    ██║   ██╔══██╗██╔══██║██║██║╚██╗██║  ╚██╔╝
    ██║   ██║  ██║██║  ██║██║██║ ╚████║   ██║
    ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝   ╚═╝`

const bannerCompact = "T R A I N Y"

// renderBanner returns the banner, falling back to spaced letters on narrow
// or short terminals.
func renderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 || compact {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
