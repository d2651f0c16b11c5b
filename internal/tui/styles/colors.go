package styles

import "github.com/charmbracelet/lipgloss"

// Market Dusk -- Dark Palette
// Charcoal backgrounds with a warm mint accent.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0c1210") // Deepest -- main background
	BgPanel   = lipgloss.Color("#121a17") // Panel/card background
	BgSurface = lipgloss.Color("#1b2623") // Elevated surface
	BgHover   = lipgloss.Color("#253430") // Hover/selected row

	// Accents
	AccentPrimary   = lipgloss.Color("#34d399") // Mint -- primary actions, focused borders
	AccentSecondary = lipgloss.Color("#38bdf8") // Sky -- secondary info
	AccentGold      = lipgloss.Color("#fbbf24") // Amber -- highlights, prices

	// Status
	StatusOK    = lipgloss.Color("#22c55e") // Green
	StatusWarn  = lipgloss.Color("#f59e0b") // Amber
	StatusError = lipgloss.Color("#ef4444") // Red
	StatusInfo  = lipgloss.Color("#38bdf8") // Sky

	// Text
	TextPrimary   = lipgloss.Color("#e7efec") // High contrast
	TextSecondary = lipgloss.Color("#9bb0aa") // Dimmed
	TextMuted     = lipgloss.Color("#64766f") // Very dim

	// Borders
	BorderNormal  = lipgloss.Color("#2c3a36") // Subtle
	BorderFocused = lipgloss.Color("#34d399") // Mint focus ring
)
