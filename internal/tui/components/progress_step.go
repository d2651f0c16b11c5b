package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

// StepState tracks where a wizard step sits relative to the cursor.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepDone
)

// ProgressStep is a single entry in the wizard step rail.
type ProgressStep struct {
	Label string
	State StepState
}

// RenderStepRail renders the vertical list of wizard steps shown beside
// the active form. Completed steps get a check, the active step an
// arrow, pending steps a hollow dot.
func RenderStepRail(steps []ProgressStep) string {
	doneStyle := lipgloss.NewStyle().Foreground(styles.StatusOK)
	activeStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	for i, s := range steps {
		var line string
		switch s.State {
		case StepDone:
			line = doneStyle.Render("✓ " + s.Label)
		case StepActive:
			line = activeStyle.Render("▸ " + s.Label)
		default:
			line = pendingStyle.Render("○ " + s.Label)
		}
		b.WriteString(line)
		if i < len(steps)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderProgressLine renders the compact "Step 2 of 6" header line.
func RenderProgressLine(current, total int) string {
	counter := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).
		Render(fmt.Sprintf("Step %d of %d", current, total))

	filled := lipgloss.NewStyle().Foreground(styles.AccentPrimary).
		Render(strings.Repeat("█", current))
	empty := lipgloss.NewStyle().Foreground(styles.BgSurface).
		Render(strings.Repeat("█", total-current))

	return counter + "  " + filled + empty
}
