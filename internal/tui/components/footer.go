package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "q", "tab", "up/dn"
	Desc string // "quit", "switch", "navigate"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var parts []string
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, sepStyle.Render(" • "))

	footerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return footerStyle.Render(content)
}

// WizardFooter returns the footer preset shared by the wizard screens.
func WizardFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "enter", Desc: "next"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+s", Desc: "save draft"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// BrowserFooter returns the footer preset for the catalog and drafts
// browsers.
func BrowserFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "backspace", Desc: "back"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}
