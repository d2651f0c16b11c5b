package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/catalog"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/tui/components"
	"github.com/swapcell/swapcell/internal/tui/styles"
	"github.com/swapcell/swapcell/internal/wizard"
)

// SellWizardModel implements tea.Model for `swapcell sell`: the
// three-step flow that turns a customer's phone into a lead.
//
//	1. Brand     -- pick the phone's brand (live catalog, offline fallback)
//	2. Details   -- model, age, accessories, condition, battery
//	3. Contact   -- name, 10-digit phone, city, preferred contact
//
// Choosing a brand advances immediately; every other step advances on
// enter after validation. The final enter submits the lead.
type SellWizardModel struct {
	deps    Deps
	session *wizard.Session
	idemKey string
	draftID string

	// Brand step.
	brands       components.OptionList
	brandsLoaded bool
	brandErr     string

	// Details and contact steps.
	details *fieldForm
	contact *fieldForm

	// Submission.
	submitting bool
	submitErr  string
	result     *gateway.LeadResult
	spin       spinner.Model

	// Draft save feedback.
	saveNote string

	confirmQuit components.ConfirmDialog
	quitting    bool

	width  int
	height int
}

// NewSellWizard builds the model around an existing session, which may
// be fresh or resumed from a draft (draftID "" means fresh).
func NewSellWizard(deps Deps, session *wizard.Session, draftID string) SellWizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	m := SellWizardModel{
		deps:    deps,
		session: session,
		idemKey: gateway.NewIdempotencyKey(),
		draftID: draftID,
		brands:  components.NewOptionList(nil),
		spin:    s,
		width:   80,
		height:  40,
	}
	m.details = newFieldForm(session.Form(), m.detailFields())
	m.contact = newFieldForm(session.Form(), contactFields())
	return m
}

// Result returns the submission result once the wizard completed.
func (m SellWizardModel) Result() *gateway.LeadResult { return m.result }

// DraftID returns the id of the last saved draft, "" when none.
func (m SellWizardModel) DraftID() string { return m.draftID }

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init starts the brand fetch.
func (m SellWizardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadBrands())
}

// Update processes messages and key events.
func (m SellWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.brandsLoaded = true
		if msg.err != nil {
			// Stay usable offline: the built-in brand list takes over.
			m.brandErr = "Live catalog unavailable, showing built-in brands"
			m.brands.SetItems(optionItems(catalog.FallbackBrands()))
			return m, nil
		}
		items := make([]components.OptionItem, len(msg.brands))
		for i, b := range msg.brands {
			items[i] = components.OptionItem{Label: b.Name, Value: b.Name}
		}
		m.brands.SetItems(items)
		m.brands.SelectValue(m.session.Form().Get(wizard.FieldBrand))
		return m, nil

	case leadSubmittedMsg:
		m.submitting = false
		if msg.billURL != "" {
			// The bill photo made it up even if the submission failed;
			// keep the URL so a retry skips the upload.
			m.session.Form().Set(wizard.FieldBillImage, msg.billURL)
		}
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
		if m.submitting || !m.brandsLoaded {
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

func (m SellWizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	// Terminal screens.
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
	case "esc":
		m.saveNote = ""
		if m.session.Previous() == wizard.OutcomeCancel {
			m.quitting = true
			m.confirmQuit = components.NewConfirmDialog(
				"Leave the sell flow?",
				"Unsaved answers will be lost. Save first with ctrl+s.",
			)
		}
		return m, nil
	}

	switch m.session.Step() {
	case wizard.StepBrandSelect:
		return m.handleBrandKey(key)
	case wizard.StepSellDetails:
		return m.handleFormKey(msg, m.details)
	case wizard.StepContact:
		return m.handleFormKey(msg, m.contact)
	}
	return m, nil
}

func (m SellWizardModel) handleBrandKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		m.quitting = true
		m.confirmQuit = components.NewConfirmDialog(
			"Leave the sell flow?",
			"Unsaved answers will be lost. Save first with ctrl+s.",
		)
	case "up", "k":
		m.brands.MoveUp()
	case "down", "j":
		m.brands.MoveDown()
	case "enter":
		sel := m.brands.Selected()
		if sel.Value == "" {
			return m, nil
		}
		// Selecting a brand advances in the same action; a brand change
		// also clears any dependent model fields from a resumed draft.
		m.session.Select(wizard.FieldBrand, sel.Value)
		m.details.setFields(m.detailFields())
	}
	return m, nil
}

func (m SellWizardModel) handleFormKey(msg tea.KeyMsg, form *fieldForm) (tea.Model, tea.Cmd) {
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
		}
		return m, nil
	}

	cmd := form.HandleKey(msg)

	// The bill photo row exists only while "has bill" is yes.
	if form == m.details {
		m.details.setFields(m.detailFields())
	}
	return m, cmd
}

// ---------------------------------------------------------------------------
// Field sets
// ---------------------------------------------------------------------------

func (m SellWizardModel) detailFields() []formField {
	fields := []formField{
		{field: wizard.FieldModelName, label: "Model", kind: kindText, placeholder: "iPhone 14 Pro"},
		{field: wizard.FieldAge, label: "How old is the phone?", kind: kindOption, opts: catalog.AgeRanges()},
		{field: wizard.FieldHasBill, label: "Do you have the bill?", kind: kindOption, opts: catalog.YesNo()},
	}
	if m.session.Form().Get(wizard.FieldHasBill) == "yes" {
		fields = append(fields, formField{
			field: wizard.FieldBillImage, label: "Bill photo (optional)", kind: kindText,
			placeholder: "/path/to/bill.jpg",
		})
	}
	fields = append(fields,
		formField{field: wizard.FieldHasBox, label: "Do you have the box?", kind: kindOption, opts: catalog.YesNo()},
		formField{field: wizard.FieldScreenReplacement, label: "Screen ever replaced?", kind: kindOption, opts: catalog.YesNo()},
		formField{field: wizard.FieldCondition, label: "Overall condition", kind: kindOption, opts: catalog.LeadConditions()},
		formField{field: wizard.FieldBattery, label: "Battery health", kind: kindOption, opts: catalog.BatteryHealth()},
	)
	return fields
}

func contactFields() []formField {
	return []formField{
		{field: wizard.FieldName, label: "Your name", kind: kindText, placeholder: "Full name"},
		{field: wizard.FieldPhone, label: "Phone number", kind: kindText, placeholder: "10 digits, no spaces"},
		{field: wizard.FieldCity, label: "City", kind: kindText, placeholder: "Mumbai"},
		{field: wizard.FieldContactMethod, label: "Preferred contact", kind: kindOption, opts: catalog.ContactMethods()},
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m SellWizardModel) loadBrands() tea.Cmd {
	client := m.deps.Refdata
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		brands, err := client.Brands(ctx)
		return brandsLoadedMsg{brands: brands, err: err}
	}
}

func (m SellWizardModel) saveDraft() tea.Cmd {
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

func (m SellWizardModel) submit() tea.Cmd {
	// The goroutine works on a detached copy of the form; the live one
	// stays owned by the event loop. The uploaded bill URL travels back
	// through the message so a retry does not upload twice.
	deps, key := m.deps, m.idemKey
	form := wizard.NewFormState()
	form.Restore(m.session.Form().Snapshot())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		// Upload a local bill photo first; a path that is already a URL
		// (resumed draft, retry after failure) is left alone.
		var billURL string
		if path := form.Get(wizard.FieldBillImage); path != "" && !strings.HasPrefix(path, "http") {
			url, err := deps.Upload.File(ctx, path)
			if err != nil {
				return leadSubmittedMsg{err: fmt.Errorf("bill photo upload failed: %w", err)}
			}
			form.Set(wizard.FieldBillImage, url)
			billURL = url
		}

		result, err := deps.Gateway.SubmitLead(ctx, form, key)
		return leadSubmittedMsg{result: result, err: err, billURL: billURL}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the current wizard screen.
func (m SellWizardModel) View() string {
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
		sections = append(sections, "  "+m.spin.View()+" Submitting your request...")
	default:
		sections = append(sections, "  "+styles.Title.Render(m.session.Step().Title()))
		sections = append(sections, "")
		sections = append(sections, m.viewStep())
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

func (m SellWizardModel) viewStep() string {
	switch m.session.Step() {
	case wizard.StepBrandSelect:
		var b strings.Builder
		if !m.brandsLoaded {
			b.WriteString("  " + m.spin.View() + " Loading brands...\n")
			return b.String()
		}
		if m.brandErr != "" {
			b.WriteString("  " + styles.Gold(m.brandErr) + "\n\n")
		}
		b.WriteString(m.brands.Render() + "\n")
		if msg := m.session.Form().Error(wizard.FieldBrand); msg != "" {
			b.WriteString("\n  " + components.ErrorBanner(msg) + "\n")
		}
		return b.String()
	case wizard.StepSellDetails:
		return m.details.View()
	case wizard.StepContact:
		return m.contact.View()
	}
	return ""
}

func (m SellWizardModel) viewDone() string {
	var b strings.Builder

	b.WriteString("  " + components.SuccessBanner("Request submitted!") + "\n\n")

	panel := styles.PanelFocused.Width(clampWidth(m.width-6, 60))

	var body strings.Builder
	body.WriteString(styles.Label.Render("REQUEST ") + "  " + styles.Value.Render(m.result.ID) + "\n")
	body.WriteString(styles.Label.Render("STATUS  ") + "  " + styles.Value.Render(m.result.Status))

	if r := m.result.AutoAssignedRetailer; r != nil {
		body.WriteString("\n")
		body.WriteString(styles.Label.Render("RETAILER") + "  " + styles.Value.Render(r.BusinessName) + "\n")
		body.WriteString(styles.Label.Render("AREA    ") + "  " + styles.Value.Render(r.Location))
	}

	b.WriteString("  " + panel.Render(body.String()) + "\n\n")
	if m.result.AutoAssignedRetailer != nil {
		b.WriteString("  A retailer near you will reach out shortly.\n\n")
	} else {
		b.WriteString("  We will match you with a retailer and reach out shortly.\n\n")
	}
	b.WriteString("  Press Enter to exit.\n")

	return b.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func optionItems(opts []catalog.Option) []components.OptionItem {
	out := make([]components.OptionItem, len(opts))
	for i, o := range opts {
		out[i] = components.OptionItem{Label: o.Label, Value: o.Value}
	}
	return out
}

func clampWidth(val, max int) int {
	if val > max {
		return max
	}
	if val < 10 {
		return 10
	}
	return val
}
