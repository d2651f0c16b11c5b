// Package views launches the interactive screens and owns the process
// lifecycle around them: program construction, alt-screen mode, and the
// drafts-to-wizard handoff.
package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swapcell/swapcell/internal/drafts"
	"github.com/swapcell/swapcell/internal/tui/models"
	"github.com/swapcell/swapcell/internal/wizard"
)

// RunSellWizard launches the sell flow TUI with a fresh session and
// blocks until the user submits or quits.
func RunSellWizard(deps models.Deps) error {
	session := wizard.NewSession(wizard.FlowSell)
	return runSell(deps, session, "")
}

// RunProductWizard launches the listing flow TUI with a fresh session.
func RunProductWizard(deps models.Deps) error {
	session := wizard.NewSession(wizard.FlowProduct)
	return runProduct(deps, session, "")
}

// ResumeDraft relaunches the wizard a draft was saved from, positioned
// where the user stopped.
func ResumeDraft(deps models.Deps, d drafts.Draft) error {
	session := d.ResumeSession()
	switch d.Flow {
	case wizard.FlowSell:
		return runSell(deps, session, d.ID)
	case wizard.FlowProduct:
		return runProduct(deps, session, d.ID)
	default:
		return fmt.Errorf("draft %s has unknown flow %q", d.ID, d.Flow)
	}
}

func runSell(deps models.Deps, session *wizard.Session, draftID string) error {
	model := models.NewSellWizard(deps, session, draftID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running sell wizard: %w", err)
	}
	return nil
}

func runProduct(deps models.Deps, session *wizard.Session, draftID string) error {
	model := models.NewProductWizard(deps, session, draftID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running product wizard: %w", err)
	}
	return nil
}
