package models

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/catalog"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
	"github.com/swapcell/swapcell/internal/tui/components"
	"github.com/swapcell/swapcell/internal/tui/styles"
	"github.com/swapcell/swapcell/internal/wizard"
)

// ProductWizardModel implements tea.Model for `swapcell product new`:
// the retailer listing flow. Picking a phone category routes through
// the brand/model/variant cascade; any other category collects specs
// and pricing by hand, so the step rail itself changes with the
// category choice.
type ProductWizardModel struct {
	deps    Deps
	session *wizard.Session
	idemKey string
	draftID string

	// Choice steps share one list; its contents swap per step.
	list    components.OptionList
	loading bool
	loadErr string

	// Variants are kept so a selection can copy storage/ram/color.
	variants []refdata.Variant

	// Free-text steps.
	specs   *fieldForm
	pricing *fieldForm
	listing *fieldForm

	submitting bool
	submitErr  string
	result     *gateway.ProductResult
	spin       spinner.Model

	saveNote string

	confirmQuit components.ConfirmDialog
	quitting    bool

	width  int
	height int
}

// NewProductWizard builds the model around a fresh or resumed session.
func NewProductWizard(deps Deps, session *wizard.Session, draftID string) ProductWizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	m := ProductWizardModel{
		deps:    deps,
		session: session,
		idemKey: gateway.NewIdempotencyKey(),
		draftID: draftID,
		list:    components.NewOptionList(nil),
		spin:    s,
		width:   80,
		height:  40,
	}
	form := session.Form()
	m.specs = newFieldForm(form, specsFields())
	m.pricing = newFieldForm(form, pricingFields())
	m.listing = newFieldForm(form, listingFields(form))

	// Prime the starting step's list state; Init issues the matching
	// fetch (a resumed draft can start mid-cascade).
	m.enterStep()
	return m
}

// Result returns the created listing once the wizard completed.
func (m ProductWizardModel) Result() *gateway.ProductResult { return m.result }

// DraftID returns the id of the last saved draft, "" when none.
func (m ProductWizardModel) DraftID() string { return m.draftID }

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init loads whatever the starting step needs (a resumed draft can
// start mid-cascade).
func (m ProductWizardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.enterStep())
}

// Update processes messages and key events.
func (m ProductWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < 60 {
			m.width = 60
		}
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case brandsLoadedMsg:
		if m.session.Step() != wizard.StepBrand {
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
		m.list.SelectValue(m.session.Form().Get(wizard.FieldBrandID))
		return m, nil

	case modelsLoadedMsg:
		// A brand re-selection may have raced this response.
		if wizard.Superseded(m.session.Form(), wizard.FieldBrandID, msg.brandID) {
			return m, nil
		}
		if m.session.Step() != wizard.StepModel {
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
		m.list.SelectValue(m.session.Form().Get(wizard.FieldModelID))
		return m, nil

	case variantsLoadedMsg:
		if wizard.Superseded(m.session.Form(), wizard.FieldModelID, msg.modelID) {
			return m, nil
		}
		if m.session.Step() != wizard.StepVariant {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.variants = msg.variants
		items := make([]components.OptionItem, len(msg.variants))
		for i, v := range msg.variants {
			items[i] = components.OptionItem{Label: v.Label(), Value: v.ID}
		}
		m.list.SetItems(items)
		m.list.SelectValue(m.session.Form().Get(wizard.FieldVariantID))
		return m, nil

	case productSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		if m.draftID != "" {
			_ = m.deps.Drafts.Remove(m.draftID)
		}
		return m, nil

	case draftSavedMsg:
		if msg.err != nil {
			m.saveNote = "Could not save draft: " + msg.err.Error()
		} else {
			m.draftID = msg.id
			m.saveNote = "Draft saved"
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.submitting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m ProductWizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.quitting {
		switch key {
		case "left", "right", "tab":
			m.confirmQuit.Toggle()
			return m, nil
		case "enter", "y", "Y":
			if key != "enter" || m.confirmQuit.Confirmed() {
				return m, tea.Quit
			}
			m.quitting = false
			return m, nil
		default:
			m.quitting = false
			return m, nil
		}
	}

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.result != nil {
		if key == "enter" || key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.submitting {
		return m, nil
	}

	switch key {
	case "ctrl+s":
		return m, m.saveDraft()
	case "r":
		// Retry a failed catalog fetch without leaving the step.
		if m.loadErr != "" {
			m.loadErr = ""
			return m, tea.Batch(m.spin.Tick, m.enterStep())
		}
	case "esc":
		m.saveNote = ""
		if m.session.Previous() == wizard.OutcomeCancel {
			m.quitting = true
			m.confirmQuit = components.NewConfirmDialog(
				"Discard this listing?",
				"Unsaved answers will be lost. Save first with ctrl+s.",
			)
			return m, nil
		}
		return m, tea.Batch(m.spin.Tick, m.enterStep())
	}

	switch m.session.Step() {
	case wizard.StepCategory, wizard.StepPhoneType, wizard.StepBrand, wizard.StepModel, wizard.StepVariant:
		return m.handleListKey(key)
	case wizard.StepSpecs:
		return m.handleFormKey(msg, m.specs)
	case wizard.StepPricing:
		return m.handleFormKey(msg, m.pricing)
	case wizard.StepProductDetails:
		return m.handleFormKey(msg, m.listing)
	}
	return m, nil
}

func (m ProductWizardModel) handleListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		m.quitting = true
		m.confirmQuit = components.NewConfirmDialog(
			"Discard this listing?",
			"Unsaved answers will be lost. Save first with ctrl+s.",
		)
		return m, nil
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
	case "enter":
		sel := m.list.Selected()
		if sel.Value == "" || m.loading {
			return m, nil
		}
		m.applySelection(sel)
		if m.session.Next() == wizard.OutcomeAdvanced {
			return m, tea.Batch(m.spin.Tick, m.enterStep())
		}
	}
	return m, nil
}

// applySelection records the chosen option; cascade fields clear their
// children atomically, and the sibling display names ride along.
func (m *ProductWizardModel) applySelection(sel components.OptionItem) {
	form := m.session.Form()

	switch m.session.Step() {
	case wizard.StepCategory:
		m.session.Select(wizard.FieldCategoryID, sel.Value)
		// The name drives the branch decision, so it goes through Select
		// too: that keeps the step realigned if the sequence changed.
		m.session.Select(wizard.FieldCategoryName, sel.Label)
		// The branch decision may swap pricing requirements on the
		// terminal step.
		m.listing.setFields(listingFields(form))
	case wizard.StepPhoneType:
		form.Set(wizard.FieldPhoneType, sel.Value)
	case wizard.StepBrand:
		m.session.Select(wizard.FieldBrandID, sel.Value)
		form.Set(wizard.FieldBrand, sel.Label)
	case wizard.StepModel:
		m.session.Select(wizard.FieldModelID, sel.Value)
		form.Set(wizard.FieldModelName, sel.Label)
	case wizard.StepVariant:
		m.session.Select(wizard.FieldVariantID, sel.Value)
		for _, v := range m.variants {
			if v.ID == sel.Value {
				form.SetAll(map[wizard.Field]string{
					wizard.FieldStorage: v.Storage,
					wizard.FieldRAM:     v.RAM,
					wizard.FieldColor:   v.Color,
				})
				break
			}
		}
	}
}

func (m ProductWizardModel) handleFormKey(msg tea.KeyMsg, form *fieldForm) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if !form.atLast() {
			form.moveDown()
			return m, nil
		}
		switch m.session.Next() {
		case wizard.OutcomeSubmit:
			m.submitting = true
			m.submitErr = ""
			return m, tea.Batch(m.spin.Tick, m.submit())
		case wizard.OutcomeAdvanced:
			m.saveNote = ""
			return m, tea.Batch(m.spin.Tick, m.enterStep())
		}
		return m, nil
	}
	return m, form.HandleKey(msg)
}

// ---------------------------------------------------------------------------
// Step entry
// ---------------------------------------------------------------------------

// enterStep prepares whatever the current step displays: static options
// immediately, catalog levels through an async fetch.
func (m *ProductWizardModel) enterStep() tea.Cmd {
	m.loadErr = ""
	form := m.session.Form()

	switch m.session.Step() {
	case wizard.StepCategory:
		m.loading = false
		m.list.SetItems(optionItems(catalog.CategoryOptions()))
		m.list.SelectValue(form.Get(wizard.FieldCategoryID))
	case wizard.StepPhoneType:
		m.loading = false
		m.list.SetItems(optionItems(catalog.PhoneTypes()))
		m.list.SelectValue(form.Get(wizard.FieldPhoneType))
	case wizard.StepBrand:
		m.loading = true
		m.list.SetItems(nil)
		return m.loadBrands()
	case wizard.StepModel:
		m.loading = true
		m.list.SetItems(nil)
		return m.loadModels(form.Get(wizard.FieldBrandID))
	case wizard.StepVariant:
		m.loading = true
		m.list.SetItems(nil)
		return m.loadVariants(form.Get(wizard.FieldModelID))
	case wizard.StepProductDetails:
		m.listing.setFields(listingFields(form))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Field sets
// ---------------------------------------------------------------------------

func specsFields() []formField {
	return []formField{
		{field: wizard.FieldStorage, label: "Storage / capacity", kind: kindText, placeholder: "64GB, 10000mAh, ..."},
		{field: wizard.FieldRAM, label: "RAM (optional)", kind: kindText, placeholder: "8GB"},
		{field: wizard.FieldColor, label: "Color", kind: kindText, placeholder: "Black"},
	}
}

func pricingFields() []formField {
	return []formField{
		{field: wizard.FieldPrice, label: "Price", kind: kindText, placeholder: "1499"},
		{field: wizard.FieldStock, label: "Units in stock", kind: kindText, placeholder: "5"},
	}
}

func listingFields(form *wizard.FormState) []formField {
	fields := []formField{
		{field: wizard.FieldTitle, label: "Listing title", kind: kindText, placeholder: "iPhone 14 Pro 256GB, mint"},
		{field: wizard.FieldDescription, label: "Description", kind: kindText, placeholder: "What the buyer should know"},
		{field: wizard.FieldCondition, label: "Condition", kind: kindOption, opts: catalog.ProductConditions()},
	}
	if wizard.IsPhoneCategory(form.Get(wizard.FieldCategoryName)) {
		fields = append(fields, formField{
			field: wizard.FieldPrice, label: "Price", kind: kindText, placeholder: "24999",
		})
	}
	return fields
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m ProductWizardModel) loadBrands() tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		brands, err := client.Brands(ctx)
		return brandsLoadedMsg{brands: brands, err: err}
	}
}

func (m ProductWizardModel) loadModels(brandID string) tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		models, err := client.Models(ctx, brandID)
		return modelsLoadedMsg{brandID: brandID, models: models, err: err}
	}
}

func (m ProductWizardModel) loadVariants(modelID string) tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		variants, err := client.Variants(ctx, modelID)
		return variantsLoadedMsg{modelID: modelID, variants: variants, err: err}
	}
}

func (m ProductWizardModel) saveDraft() tea.Cmd {
	// Snapshot here, on the event loop. The command goroutine must not
	// touch the live session while the user keeps typing.
	store, id := m.deps.Drafts, m.draftID
	flow, step := m.session.Flow(), m.session.Step()
	values := m.session.Form().Snapshot()
	return func() tea.Msg {
		d, err := store.Save(id, flow, step, values)
		if err != nil {
			return draftSavedMsg{err: err}
		}
		return draftSavedMsg{id: d.ID}
	}
}

func (m ProductWizardModel) submit() tea.Cmd {
	// The goroutine works on a detached copy of the form; the live one
	// stays owned by the event loop.
	deps, key := m.deps, m.idemKey
	form := wizard.NewFormState()
	form.Restore(m.session.Form().Snapshot())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		result, err := deps.Gateway.SubmitProduct(ctx, form, key)
		return productSubmittedMsg{result: result, err: err}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the step rail beside the active step's body.
func (m ProductWizardModel) View() string {
	var sections []string

	current, total := m.session.Progress()
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Mint(styles.CompactLogo)+"  "+components.RenderProgressLine(current, total))
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(clampWidth(m.width-4, 76)))
	sections = append(sections, "")

	switch {
	case m.result != nil:
		sections = append(sections, m.viewDone())
	case m.submitting:
		sections = append(sections, "  "+m.spin.View()+" Creating your listing...")
	default:
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewRail(),
			"    ",
			m.viewStep(),
		)
		sections = append(sections, body)
	}

	if m.submitErr != "" && !m.submitting && m.result == nil {
		sections = append(sections, "  "+components.ErrorBanner(m.submitErr))
		sections = append(sections, "")
	}
	if m.saveNote != "" {
		sections = append(sections, "  "+styles.Dim(m.saveNote))
	}

	if m.quitting {
		sections = append(sections, "")
		sections = append(sections, "  "+m.confirmQuit.Render())
	}

	sections = append(sections, "")
	sections = append(sections, components.WizardFooter(m.width).Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProductWizardModel) viewRail() string {
	seq := m.session.Flow().Steps(m.session.Form())
	currentIdx := -1
	for i, s := range seq {
		if s == m.session.Step() {
			currentIdx = i
		}
	}

	steps := make([]components.ProgressStep, len(seq))
	for i, s := range seq {
		state := components.StepPending
		if i < currentIdx {
			state = components.StepDone
		} else if i == currentIdx {
			state = components.StepActive
		}
		steps[i] = components.ProgressStep{Label: s.ShortLabel(), State: state}
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(components.RenderStepRail(steps))
}

func (m ProductWizardModel) viewStep() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.session.Step().Title()) + "\n\n")

	switch m.session.Step() {
	case wizard.StepCategory, wizard.StepPhoneType, wizard.StepBrand, wizard.StepModel, wizard.StepVariant:
		switch {
		case m.loading:
			b.WriteString(m.spin.View() + " Loading...\n")
		case m.loadErr != "":
			b.WriteString(components.ErrorBanner(m.loadErr) + "\n")
			b.WriteString(styles.Dim("Press r to retry") + "\n")
		default:
			b.WriteString(m.list.Render() + "\n")
			if msg := stepError(m.session); msg != "" {
				b.WriteString("\n" + components.ErrorBanner(msg) + "\n")
			}
		}
	case wizard.StepSpecs:
		b.WriteString(m.specs.View())
	case wizard.StepPricing:
		b.WriteString(m.pricing.View())
	case wizard.StepProductDetails:
		b.WriteString(m.listing.View())
	}

	return b.String()
}

func (m ProductWizardModel) viewDone() string {
	var b strings.Builder

	b.WriteString("  " + components.SuccessBanner("Listing created!") + "\n\n")

	panel := styles.PanelFocused.Width(clampWidth(m.width-6, 60))

	var body strings.Builder
	body.WriteString(styles.Label.Render("LISTING") + "  " + styles.Value.Render(m.result.ID) + "\n")
	body.WriteString(styles.Label.Render("STATUS ") + "  " + styles.Value.Render(m.result.Status))

	b.WriteString("  " + panel.Render(body.String()) + "\n\n")
	b.WriteString("  Press Enter to exit.\n")

	return b.String()
}

// stepError returns the first validation message on the current step's
// fields, for steps that render a list instead of a field form.
func stepError(s *wizard.Session) string {
	for _, msg := range s.Form().Errors() {
		if msg != "" {
			return msg
		}
	}
	return ""
}
