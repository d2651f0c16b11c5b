package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Logo
// ---------------------------------------------------------------------------

const logoArt = `
  ███████ ██     ██  █████  ██████   ██████ ███████ ██      ██
  ██      ██     ██ ██   ██ ██   ██ ██      ██      ██      ██
  ███████ ██  █  ██ ███████ ██████  ██      █████   ██      ██
       ██ ██ ███ ██ ██   ██ ██      ██      ██      ██      ██
  ███████  ███ ███  ██   ██ ██       ██████ ███████ ███████ ███████`

// Logo returns the large banner shown on wizard welcome screens.
func Logo() string {
	return lipgloss.NewStyle().Foreground(AccentPrimary).Bold(true).Render(logoArt)
}

// CompactLogo is the single-line mark used in header bars.
const CompactLogo = "◈ swapcell"

// ---------------------------------------------------------------------------
// Convenience color helpers
// ---------------------------------------------------------------------------

// Mint renders s in AccentPrimary.
func Mint(s string) string {
	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(s)
}

// Gold renders s in AccentGold.
func Gold(s string) string {
	return lipgloss.NewStyle().Foreground(AccentGold).Render(s)
}

// Green renders s in StatusOK.
func Green(s string) string {
	return lipgloss.NewStyle().Foreground(StatusOK).Render(s)
}

// Red renders s in StatusError.
func Red(s string) string {
	return lipgloss.NewStyle().Foreground(StatusError).Render(s)
}

// Dim renders s in TextMuted.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(s)
}

// Bold renders s in bold TextPrimary.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Render(s)
}

// ---------------------------------------------------------------------------
// Text utilities
// ---------------------------------------------------------------------------

// TruncateWithEllipsis shortens s to max runes, appending "..." when
// truncation occurs. If max is less than 4 the string is simply cut.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
