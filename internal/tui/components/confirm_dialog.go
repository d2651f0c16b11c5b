package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

// ConfirmDialog is a modal yes/no prompt rendered over the current view.
type ConfirmDialog struct {
	Title    string
	Message  string
	YesLabel string
	NoLabel  string
	Selected int // 0 = yes, 1 = no
}

// NewConfirmDialog builds a dialog with the default labels and "no"
// preselected.
func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{
		Title:    title,
		Message:  message,
		YesLabel: "Yes",
		NoLabel:  "No",
		Selected: 1,
	}
}

// Toggle flips the selection between yes and no.
func (d *ConfirmDialog) Toggle() {
	d.Selected = 1 - d.Selected
}

// Confirmed reports whether "yes" is currently selected.
func (d ConfirmDialog) Confirmed() bool {
	return d.Selected == 0
}

// Render returns the styled dialog box.
func (d ConfirmDialog) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.AccentGold).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	activeBtn := lipgloss.NewStyle().
		Background(styles.AccentPrimary).
		Foreground(styles.BgDeep).
		Bold(true).
		Padding(0, 2)
	idleBtn := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Padding(0, 2)

	yes, no := idleBtn.Render(d.YesLabel), idleBtn.Render(d.NoLabel)
	if d.Selected == 0 {
		yes = activeBtn.Render(d.YesLabel)
	} else {
		no = activeBtn.Render(d.NoLabel)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no)
	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(d.Title),
		"",
		msgStyle.Render(d.Message),
		"",
		buttons,
	)

	box := styles.Panel.
		BorderForeground(styles.AccentGold).
		Padding(1, 3)

	return box.Render(body)
}
