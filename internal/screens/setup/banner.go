package setup

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/ui/theme"
)

const bannerArt = `╦╔╗╔╔╦╗╔╦╗╔═╗╦═╗╦╔═╔═╗
║║║║ ║ ║║║╠═╣╠╦╝╠╩╗╚═╗
╩╝╚╝ ╩ ╩ ╩╩ ╩╩╚═╩ ╩╚═╝`

const bannerCompact = "I N T M A R K S"

// renderBanner returns the banner in the primary color, falling back to
// plain letters when the card is too narrow for the art.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
