package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

// OptionItem is a selectable entry in an OptionList.
type OptionItem struct {
	Label string
	Value string
}

// OptionList is a cursor-driven selector used for every choice step in
// the wizards (brands, models, variants, conditions). It owns only its
// cursor; the caller reads the selection on enter.
type OptionList struct {
	Items   []OptionItem
	Cursor  int
	MaxRows int // visible window, 0 means show all
}

// NewOptionList builds a list with the cursor on the first item.
func NewOptionList(items []OptionItem) OptionList {
	return OptionList{Items: items, MaxRows: 10}
}

// SetItems replaces the items and clamps the cursor.
func (l *OptionList) SetItems(items []OptionItem) {
	l.Items = items
	if l.Cursor >= len(items) {
		l.Cursor = 0
	}
}

// MoveUp moves the cursor up, stopping at the top.
func (l *OptionList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves the cursor down, stopping at the bottom.
func (l *OptionList) MoveDown() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
	}
}

// Selected returns the item under the cursor, or a zero item when the
// list is empty.
func (l OptionList) Selected() OptionItem {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return OptionItem{}
	}
	return l.Items[l.Cursor]
}

// SelectValue moves the cursor onto the item with the given value, if
// present. Used when resuming a draft mid-list.
func (l *OptionList) SelectValue(value string) {
	for i, it := range l.Items {
		if it.Value == value {
			l.Cursor = i
			return
		}
	}
}

// Render returns the styled list, windowed around the cursor when the
// list is longer than MaxRows.
func (l OptionList) Render() string {
	if len(l.Items) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  (no options)")
	}

	start, end := 0, len(l.Items)
	if l.MaxRows > 0 && end > l.MaxRows {
		start = l.Cursor - l.MaxRows/2
		if start < 0 {
			start = 0
		}
		end = start + l.MaxRows
		if end > len(l.Items) {
			end = len(l.Items)
			start = end - l.MaxRows
		}
	}

	cursorStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	idleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	moreStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	if start > 0 {
		b.WriteString(moreStyle.Render("  ↑ more") + "\n")
	}
	for i := start; i < end; i++ {
		if i == l.Cursor {
			b.WriteString(cursorStyle.Render("▸ " + l.Items[i].Label))
		} else {
			b.WriteString(idleStyle.Render("  " + l.Items[i].Label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(l.Items) {
		b.WriteString("\n" + moreStyle.Render("  ↓ more"))
	}
	return b.String()
}
