package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/drafts"
	"github.com/swapcell/swapcell/internal/tui/components"
	"github.com/swapcell/swapcell/internal/tui/styles"
)

// DraftsBrowserModel implements tea.Model for `swapcell drafts`: list
// saved wizard sessions, delete them, or pick one to resume. The model
// quits with the chosen draft recorded; the view layer relaunches the
// matching wizard. A directory watcher feeds change events so the list
// stays current while other swapcell processes save drafts.
type DraftsBrowserModel struct {
	deps   Deps
	events <-chan drafts.Event

	items  []drafts.Draft
	cursor int

	chosen *drafts.Draft

	confirmDelete components.ConfirmDialog
	deleting      bool
	loadErr       string

	width  int
	height int
}

// NewDraftsBrowser builds the browser. events may be nil when no
// watcher is running; the list then refreshes only on user actions.
func NewDraftsBrowser(deps Deps, events <-chan drafts.Event) DraftsBrowserModel {
	return DraftsBrowserModel{
		deps:   deps,
		events: events,
		width:  80,
		height: 40,
	}
}

// Chosen returns the draft selected for resuming, nil when the browser
// was simply closed.
func (m DraftsBrowserModel) Chosen() *drafts.Draft { return m.chosen }

// Init loads the draft list and starts listening for changes.
func (m DraftsBrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loadList(), m.waitForChange())
}

// Update processes messages and key events.
func (m DraftsBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case draftsListedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case draftsChangedMsg:
		return m, tea.Batch(m.loadList(), m.waitForChange())
	}

	return m, nil
}

func (m DraftsBrowserModel) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.deleting {
		switch key {
		case "left", "right", "tab":
			m.confirmDelete.Toggle()
			return m, nil
		case "enter", "y", "Y":
			m.deleting = false
			if key != "enter" || m.confirmDelete.Confirmed() {
				return m, m.removeCurrent()
			}
			return m, nil
		default:
			m.deleting = false
			return m, nil
		}
	}

	switch key {
	case "q", "ctrl+c", "esc", "backspace":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "d", "x":
		if len(m.items) > 0 {
			d := m.items[m.cursor]
			m.deleting = true
			m.confirmDelete = components.NewConfirmDialog(
				"Delete draft?",
				fmt.Sprintf("%q will be removed permanently.", d.Summary()),
			)
		}

	case "enter":
		if len(m.items) > 0 {
			d := m.items[m.cursor]
			m.chosen = &d
			return m, tea.Quit
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m DraftsBrowserModel) loadList() tea.Cmd {
	store := m.deps.Drafts
	return func() tea.Msg {
		items, err := store.List()
		return draftsListedMsg{items: items, err: err}
	}
}

func (m DraftsBrowserModel) removeCurrent() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	store, id := m.deps.Drafts, m.items[m.cursor].ID
	return func() tea.Msg {
		_ = store.Remove(id)
		return draftsChangedMsg{}
	}
}

// waitForChange blocks on the watcher channel and surfaces the next
// event as a tea message. Re-issued after every delivery.
func (m DraftsBrowserModel) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return draftsChangedMsg{}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the draft list with flow badges and timestamps.
func (m DraftsBrowserModel) View() string {
	var sections []string

	sections = append(sections, "")
	sections = append(sections, "  "+styles.Mint(styles.CompactLogo)+"  "+styles.Subtitle.Render("Saved drafts"))
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(clampWidth(m.width-4, 76)))
	sections = append(sections, "")

	switch {
	case m.loadErr != "":
		sections = append(sections, "  "+components.ErrorBanner(m.loadErr))
	case len(m.items) == 0:
		sections = append(sections, "  "+styles.Dim("No drafts yet. Save one from a wizard with ctrl+s."))
	default:
		sections = append(sections, m.viewList())
		if m.cursor < len(m.items) {
			sections = append(sections, "")
			sections = append(sections, "  "+m.viewDetail(m.items[m.cursor]))
		}
	}

	if m.deleting {
		sections = append(sections, "")
		sections = append(sections, "  "+m.confirmDelete.Render())
	}

	sections = append(sections, "")
	sections = append(sections, m.viewFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DraftsBrowserModel) viewList() string {
	var b strings.Builder

	for i, d := range m.items {
		cursor := "  "
		rowStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render("> ")
			rowStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
		}

		badge := styles.Badge(strings.ToUpper(string(d.Flow)), styles.StatusInfo)
		summary := styles.TruncateWithEllipsis(d.Summary(), 36)
		when := d.UpdatedAt.Local().Format("Jan 2 15:04")

		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
			cursor, badge, rowStyle.Render(fmt.Sprintf("%-38s", summary)), styles.Dim(when)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// viewDetail renders a card for the highlighted draft.
func (m DraftsBrowserModel) viewDetail(d drafts.Draft) string {
	body := styles.Label.Render("STEP   ") + "  " + styles.Value.Render(d.Step.Title()) + "\n" +
		styles.Label.Render("CREATED") + "  " + styles.Value.Render(d.CreatedAt.Local().Format("Jan 2 15:04"))
	return styles.Card.Width(clampWidth(m.width-6, 60)).Render(body)
}

func (m DraftsBrowserModel) viewFooter() string {
	f := components.Footer{
		Hints: []components.KeyHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "enter", Desc: "resume"},
			{Key: "d", Desc: "delete"},
			{Key: "q", Desc: "quit"},
		},
		Width: m.width,
	}
	return f.Render()
}
