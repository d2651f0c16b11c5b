package drafts

import (
	"time"

	"github.com/swapcell/swapcell/internal/wizard"
)

// Draft is a saved wizard session: the flow, where the user stopped,
// and every field collected so far. One JSON file per draft.
type Draft struct {
	ID        string                  `json:"id"`
	Flow      wizard.Flow             `json:"flow"`
	Step      wizard.Step             `json:"step"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	Values    map[wizard.Field]string `json:"values"`
}

// Summary returns a short display line for draft lists: the most
// identifying fields filled in so far.
func (d Draft) Summary() string {
	switch d.Flow {
	case wizard.FlowSell:
		if m := d.Values[wizard.FieldModelName]; m != "" {
			return d.Values[wizard.FieldBrand] + " " + m
		}
		if b := d.Values[wizard.FieldBrand]; b != "" {
			return b
		}
	case wizard.FlowProduct:
		if t := d.Values[wizard.FieldTitle]; t != "" {
			return t
		}
		if c := d.Values[wizard.FieldCategoryName]; c != "" {
			return c
		}
	}
	return "(empty)"
}

// EventType classifies a change observed in the drafts directory.
type EventType int

const (
	EventSaved EventType = iota
	EventRemoved
)

// Event is one change in the drafts directory, delivered by Watcher.
type Event struct {
	Type EventType
	ID   string
	Time time.Time
}
