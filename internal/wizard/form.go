// Package wizard implements the multi-step form engine behind the sell
// and product-creation flows: the form state store, the per-step
// validator, and the step state machine. It is deliberately free of any
// UI dependency so that both the TUI models and the tests drive it the
// same way.
package wizard

// Field names every value collected across both flows. The names are
// the wire names used in submission payloads.
type Field string

const (
	// Shared cascade fields.
	FieldBrand     Field = "brand"
	FieldBrandID   Field = "brandId"
	FieldModelID   Field = "modelId"
	FieldModelName Field = "modelName"
	FieldVariantID Field = "variantId"
	FieldStorage   Field = "storage"
	FieldRAM       Field = "ram"
	FieldColor     Field = "color"

	// Sell flow.
	FieldAge               Field = "age"
	FieldHasBill           Field = "hasBill"
	FieldBillImage         Field = "billImage"
	FieldHasBox            Field = "hasBox"
	FieldScreenReplacement Field = "screenReplacement"
	FieldCondition         Field = "condition"
	FieldBattery           Field = "battery"
	FieldName              Field = "name"
	FieldPhone             Field = "phone"
	FieldCity              Field = "city"
	FieldContactMethod     Field = "preferredContactMethod"

	// Product flow.
	FieldCategoryID   Field = "categoryId"
	FieldCategoryName Field = "categoryName"
	FieldPhoneType    Field = "phoneType"
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldStock        Field = "stock"
)

// FieldErrors maps a field to a human-readable validation message.
// A fresh map is produced on every validation attempt.
type FieldErrors map[Field]string

// FormState holds every field of one wizard session plus the current
// per-field error state. It is owned by exactly one session and must
// never be shared between concurrent wizards.
type FormState struct {
	values map[Field]string
	errors FieldErrors
}

// NewFormState returns an empty form.
func NewFormState() *FormState {
	return &FormState{
		values: make(map[Field]string),
		errors: make(FieldErrors),
	}
}

// Get returns the current value of a field ("" when unset).
func (f *FormState) Get(field Field) string {
	return f.values[field]
}

// Set overwrites a single field. Any existing error for that field is
// cleared: an error is stale the instant the input changes.
func (f *FormState) Set(field Field, value string) {
	f.values[field] = value
	delete(f.errors, field)
}

// SetAll applies a multi-field update as one atomic operation. It is
// the only correct way to reset dependent fields when a parent cascade
// selection changes; sequential Set calls would expose a render window
// where a stale child is paired with a new parent.
func (f *FormState) SetAll(partial map[Field]string) {
	for field, value := range partial {
		f.values[field] = value
		delete(f.errors, field)
	}
}

// Reset clears all fields and all errors. Used when a wizard instance
// is abandoned or restarted.
func (f *FormState) Reset() {
	f.values = make(map[Field]string)
	f.errors = make(FieldErrors)
}

// Errors returns the current error map. Callers must treat it as
// read-only.
func (f *FormState) Errors() FieldErrors {
	return f.errors
}

// Error returns the message for one field, or "".
func (f *FormState) Error(field Field) string {
	return f.errors[field]
}

// setErrors replaces the whole error map after a validation attempt.
func (f *FormState) setErrors(errs FieldErrors) {
	if errs == nil {
		errs = make(FieldErrors)
	}
	f.errors = errs
}

// Snapshot returns a copy of all populated values, used for drafts and
// submission payload building.
func (f *FormState) Snapshot() map[Field]string {
	out := make(map[Field]string, len(f.values))
	for k, v := range f.values {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Restore loads a previously saved snapshot, replacing current values.
func (f *FormState) Restore(values map[Field]string) {
	f.values = make(map[Field]string, len(values))
	for k, v := range values {
		f.values[k] = v
	}
	f.errors = make(FieldErrors)
}

// cascadeResets maps each parent field to the children that must be
// cleared, atomically, whenever that parent changes.
var cascadeResets = map[Field][]Field{
	FieldBrand:      {FieldModelID, FieldModelName, FieldVariantID, FieldStorage, FieldRAM, FieldColor},
	FieldBrandID:    {FieldModelID, FieldModelName, FieldVariantID, FieldStorage, FieldRAM, FieldColor},
	FieldModelID:    {FieldVariantID, FieldStorage, FieldRAM, FieldColor},
	FieldCategoryID: {FieldPhoneType, FieldBrandID, FieldBrand, FieldModelID, FieldModelName, FieldVariantID, FieldStorage, FieldRAM, FieldColor},
}

// branchUpdate builds the atomic update for selecting a new value of a
// cascade or branch field: the field itself plus cleared children.
func branchUpdate(field Field, value string) map[Field]string {
	update := map[Field]string{field: value}
	for _, child := range cascadeResets[field] {
		update[child] = ""
	}
	return update
}

// Superseded reports whether a fetch response keyed on parentKey is
// stale: the form has moved on to a different parent selection since
// the request was issued. Stale responses must be dropped, never
// applied over newer state.
func Superseded(form *FormState, parent Field, parentKey string) bool {
	return form.Get(parent) != parentKey
}
