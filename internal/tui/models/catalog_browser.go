package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/refdata"
	"github.com/swapcell/swapcell/internal/tui/components"
	"github.com/swapcell/swapcell/internal/tui/styles"
)

// catalogLevel is the drill-down depth of the browser.
type catalogLevel int

const (
	levelBrands catalogLevel = iota
	levelModels
	levelVariants
)

// CatalogBrowserModel implements tea.Model for `swapcell catalog`: a
// read-only drill-down through brands, their models, and each model's
// variants. Enter drills in, backspace climbs out.
type CatalogBrowserModel struct {
	deps Deps

	level catalogLevel
	list  components.OptionList

	// Breadcrumb of the drill-down.
	brandID   string
	brandName string
	modelID   string
	modelName string

	variants []refdata.Variant

	loading bool
	loadErr string
	spin    spinner.Model

	width  int
	height int
}

// NewCatalogBrowser starts the browser at the brand level.
func NewCatalogBrowser(deps Deps) CatalogBrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	return CatalogBrowserModel{
		deps:    deps,
		level:   levelBrands,
		list:    components.NewOptionList(nil),
		loading: true,
		spin:    s,
		width:   80,
		height:  40,
	}
}

// Init fetches the brand list.
func (m CatalogBrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchBrands())
}

// Update processes messages and key events.
func (m CatalogBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case brandsLoadedMsg:
		if m.level != levelBrands {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		items := make([]components.OptionItem, len(msg.brands))
		for i, b := range msg.brands {
			items[i] = components.OptionItem{Label: b.Name, Value: b.ID}
		}
		m.list.SetItems(items)
		return m, nil

	case modelsLoadedMsg:
		if m.level != levelModels || msg.brandID != m.brandID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		items := make([]components.OptionItem, len(msg.models))
		for i, md := range msg.models {
			items[i] = components.OptionItem{Label: md.Name, Value: md.ID}
		}
		m.list.SetItems(items)
		return m, nil

	case variantsLoadedMsg:
		if m.level != levelVariants || msg.modelID != m.modelID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.variants = msg.variants
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m CatalogBrowserModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.list.MoveUp()

	case "down", "j":
		m.list.MoveDown()

	case "r":
		if m.loadErr != "" {
			m.loadErr = ""
			m.loading = true
			switch m.level {
			case levelBrands:
				return m, tea.Batch(m.spin.Tick, m.fetchBrands())
			case levelModels:
				return m, tea.Batch(m.spin.Tick, m.fetchModels(m.brandID))
			case levelVariants:
				return m, tea.Batch(m.spin.Tick, m.fetchVariants(m.modelID))
			}
		}

	case "enter":
		if m.loading {
			return m, nil
		}
		sel := m.list.Selected()
		if sel.Value == "" {
			return m, nil
		}
		switch m.level {
		case levelBrands:
			m.level = levelModels
			m.brandID, m.brandName = sel.Value, sel.Label
			m.list.SetItems(nil)
			m.loading = true
			m.loadErr = ""
			return m, tea.Batch(m.spin.Tick, m.fetchModels(m.brandID))
		case levelModels:
			m.level = levelVariants
			m.modelID, m.modelName = sel.Value, sel.Label
			m.variants = nil
			m.loading = true
			m.loadErr = ""
			return m, tea.Batch(m.spin.Tick, m.fetchVariants(m.modelID))
		}

	case "backspace", "esc":
		switch m.level {
		case levelVariants:
			m.level = levelModels
			m.modelID, m.modelName = "", ""
			m.variants = nil
			m.list.SetItems(nil)
			m.loading = true
			m.loadErr = ""
			return m, tea.Batch(m.spin.Tick, m.fetchModels(m.brandID))
		case levelModels:
			m.level = levelBrands
			m.brandID, m.brandName = "", ""
			m.list.SetItems(nil)
			m.loading = true
			m.loadErr = ""
			return m, tea.Batch(m.spin.Tick, m.fetchBrands())
		case levelBrands:
			return m, tea.Quit
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m CatalogBrowserModel) fetchBrands() tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		brands, err := client.Brands(ctx)
		return brandsLoadedMsg{brands: brands, err: err}
	}
}

func (m CatalogBrowserModel) fetchModels(brandID string) tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		models, err := client.Models(ctx, brandID)
		return modelsLoadedMsg{brandID: brandID, models: models, err: err}
	}
}

func (m CatalogBrowserModel) fetchVariants(modelID string) tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		variants, err := client.Variants(ctx, modelID)
		return variantsLoadedMsg{modelID: modelID, variants: variants, err: err}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the breadcrumb, the active level, and the footer.
func (m CatalogBrowserModel) View() string {
	var sections []string

	crumb := "Brands"
	if m.brandName != "" {
		crumb += " › " + m.brandName
	}
	if m.modelName != "" {
		crumb += " › " + m.modelName
	}

	sections = append(sections, "")
	sections = append(sections, "  "+styles.Mint(styles.CompactLogo)+"  "+styles.Subtitle.Render(crumb))
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(clampWidth(m.width-4, 76)))
	sections = append(sections, "")

	switch {
	case m.loading:
		sections = append(sections, "  "+m.spin.View()+" Loading...")
	case m.loadErr != "":
		sections = append(sections, "  "+components.ErrorBanner(m.loadErr))
		sections = append(sections, "  "+styles.Dim("Press r to retry"))
	case m.level == levelVariants:
		sections = append(sections, m.viewVariants())
	default:
		sections = append(sections, m.list.Render())
	}

	sections = append(sections, "")
	sections = append(sections, components.BrowserFooter(m.width).Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m CatalogBrowserModel) viewVariants() string {
	if len(m.variants) == 0 {
		return "  " + styles.Dim("No variants recorded for this model.")
	}

	var b strings.Builder
	b.WriteString("  " + styles.TableHeader.Render(fmt.Sprintf("  %-12s %-10s %-14s", "STORAGE", "RAM", "COLOR")) + "\n")
	for i, v := range m.variants {
		row := fmt.Sprintf("  %-12s %-10s %-14s", v.Storage, v.RAM, v.Color)
		b.WriteString("  " + styles.TableRow(i%2 == 0).Render(row) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
