package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swapcell/swapcell/internal/drafts"
	"github.com/swapcell/swapcell/internal/tui/models"
)

// RunCatalogBrowser launches the read-only brand/model/variant browser.
func RunCatalogBrowser(deps models.Deps) error {
	model := models.NewCatalogBrowser(deps)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running catalog browser: %w", err)
	}
	return nil
}

// RunDraftsBrowser launches the drafts browser. Selecting a draft
// resumes its wizard; when that wizard exits, the browser comes back so
// several drafts can be worked through in one sitting.
func RunDraftsBrowser(deps models.Deps) error {
	for {
		ctx, cancel := context.WithCancel(context.Background())

		// The watcher keeps the list live; the browser works without it.
		var events <-chan drafts.Event
		watcher, err := drafts.NewWatcher(deps.Drafts)
		if err == nil {
			events = watcher.Watch(ctx)
		} else {
			deps.Log.Warn().Err(err).Msg("drafts watcher unavailable, list will not auto-refresh")
		}

		model := models.NewDraftsBrowser(deps, events)
		p := tea.NewProgram(model, tea.WithAltScreen())
		final, err := p.Run()

		cancel()
		if watcher != nil {
			watcher.Close()
		}
		if err != nil {
			return fmt.Errorf("running drafts browser: %w", err)
		}

		browser, ok := final.(models.DraftsBrowserModel)
		if !ok || browser.Chosen() == nil {
			return nil
		}
		if err := ResumeDraft(deps, *browser.Chosen()); err != nil {
			return err
		}
	}
}
