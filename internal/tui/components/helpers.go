package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

// ErrorBanner renders a validation or network error line under a form.
func ErrorBanner(msg string) string {
	if msg == "" {
		return ""
	}
	return styles.ErrorText.Render("✗ " + msg)
}

// SuccessBanner renders a confirmation line.
func SuccessBanner(msg string) string {
	return lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("✓ " + msg)
}
