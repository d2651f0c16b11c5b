package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/catalog"
	"github.com/swapcell/swapcell/internal/tui/components"
	"github.com/swapcell/swapcell/internal/tui/styles"
	"github.com/swapcell/swapcell/internal/wizard"
)

// fieldKind distinguishes free-text fields from fixed-choice fields.
type fieldKind int

const (
	kindText fieldKind = iota
	kindOption
)

// formField describes one row of a wizard form screen.
type formField struct {
	field       wizard.Field
	label       string
	kind        fieldKind
	opts        []catalog.Option
	placeholder string
}

// fieldForm binds a vertical group of fields to a wizard form. Text
// rows edit through a bubbles textinput; option rows cycle through
// their choices with left/right. Every edit writes straight into the
// wizard form so validation always sees the live values.
type fieldForm struct {
	form   *wizard.FormState
	fields []formField
	cursor int
	inputs map[wizard.Field]textinput.Model
}

func newFieldForm(form *wizard.FormState, fields []formField) *fieldForm {
	f := &fieldForm{
		form:   form,
		inputs: make(map[wizard.Field]textinput.Model),
	}
	f.setFields(fields)
	return f
}

// setFields rebuilds the row set, preserving the cursor where possible.
// Called again whenever a field's visibility depends on another field
// (the bill photo row appears only after "has bill" turns yes).
func (f *fieldForm) setFields(fields []formField) {
	f.fields = fields
	if f.cursor >= len(fields) {
		f.cursor = 0
	}

	for _, fl := range fields {
		if fl.kind != kindText {
			continue
		}
		if _, ok := f.inputs[fl.field]; ok {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = fl.placeholder
		ti.CharLimit = 120
		ti.Width = 40
		ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
		ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
		ti.SetValue(f.form.Get(fl.field))
		f.inputs[fl.field] = ti
	}
	f.syncFocus()
}

// current returns the row under the cursor.
func (f *fieldForm) current() formField {
	if f.cursor < 0 || f.cursor >= len(f.fields) {
		return formField{}
	}
	return f.fields[f.cursor]
}

// atLast reports whether the cursor sits on the final row.
func (f *fieldForm) atLast() bool {
	return f.cursor == len(f.fields)-1
}

func (f *fieldForm) moveUp() {
	if f.cursor > 0 {
		f.cursor--
		f.syncFocus()
	}
}

func (f *fieldForm) moveDown() {
	if f.cursor < len(f.fields)-1 {
		f.cursor++
		f.syncFocus()
	}
}

// syncFocus focuses the text input under the cursor and blurs the rest.
func (f *fieldForm) syncFocus() {
	for field, inp := range f.inputs {
		inp.Blur()
		f.inputs[field] = inp
	}
	cur := f.current()
	if cur.kind == kindText {
		inp := f.inputs[cur.field]
		inp.Focus()
		f.inputs[cur.field] = inp
	}
}

// cycle moves an option field forward or backward through its choices.
func (f *fieldForm) cycle(delta int) {
	cur := f.current()
	if cur.kind != kindOption || len(cur.opts) == 0 {
		return
	}
	idx := 0
	val := f.form.Get(cur.field)
	for i, o := range cur.opts {
		if o.Value == val {
			idx = i + delta
			break
		}
	}
	if val == "" && delta < 0 {
		idx = len(cur.opts) - 1
	}
	idx = (idx%len(cur.opts) + len(cur.opts)) % len(cur.opts)
	f.form.Set(cur.field, cur.opts[idx].Value)
}

// HandleKey processes a navigation or editing key. Returns a command
// for the focused text input's cursor blink, nil otherwise. Enter and
// escape are owned by the wizard model, never by the form.
func (f *fieldForm) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "shift+tab":
		f.moveUp()
		return textinput.Blink
	case "down", "tab":
		f.moveDown()
		return textinput.Blink
	case "left":
		f.cycle(-1)
		return nil
	case "right", " ":
		if f.current().kind == kindOption {
			f.cycle(1)
			return nil
		}
	}

	cur := f.current()
	if cur.kind != kindText {
		return nil
	}
	inp, ok := f.inputs[cur.field]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	inp, cmd = inp.Update(msg)
	f.inputs[cur.field] = inp
	f.form.Set(cur.field, inp.Value())
	return cmd
}

// View renders all rows with labels, values and per-field errors.
func (f *fieldForm) View() string {
	var b strings.Builder

	for i, fl := range f.fields {
		selected := i == f.cursor

		labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
		cursor := "  "
		if selected {
			labelStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
			cursor = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render("> ")
		}
		b.WriteString("  " + cursor + labelStyle.Render(fl.label) + "\n")

		switch fl.kind {
		case kindText:
			inp := f.inputs[fl.field]
			b.WriteString("    " + inp.View() + "\n")
		case kindOption:
			b.WriteString("    " + renderOptionValue(fl, f.form.Get(fl.field), selected) + "\n")
		}

		if msg := f.form.Error(fl.field); msg != "" {
			b.WriteString("    " + components.ErrorBanner(msg) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderOptionValue(fl formField, value string, selected bool) string {
	label := catalog.LabelFor(fl.opts, value)
	if value == "" {
		label = "(choose)"
	}

	valStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	arrowStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	if selected {
		valStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
		arrowStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	}
	return arrowStyle.Render("◂ ") + valStyle.Render(label) + arrowStyle.Render(" ▸")
}
