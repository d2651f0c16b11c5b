// Package catalog holds the static option sets that seed wizard form
// choices. Everything here is pure data: no I/O, no failure modes. The
// Value strings are persisted server-side, so they must stay stable
// across releases even when a Label is reworded.
package catalog

// Option is a single selectable choice presented to the user.
type Option struct {
	Label string
	Value string
}

// AgeRanges returns the phone-age buckets for the sell flow.
func AgeRanges() []Option {
	return []Option{
		{Label: "Less than 6 months", Value: "0-6m"},
		{Label: "6 months - 1 year", Value: "6m-1"},
		{Label: "1 - 2 years", Value: "1-2"},
		{Label: "2 - 3 years", Value: "2-3"},
		{Label: "More than 3 years", Value: "3+"},
	}
}

// YesNo returns the binary choice used for bill, box and screen
// replacement questions. The values map to booleans at submission time.
func YesNo() []Option {
	return []Option{
		{Label: "Yes", Value: "yes"},
		{Label: "No", Value: "no"},
	}
}

// LeadConditions returns the device-condition buckets for the sell
// flow. Values match the backend lead enum exactly.
func LeadConditions() []Option {
	return []Option{
		{Label: "Excellent", Value: "excellent"},
		{Label: "Good", Value: "good"},
		{Label: "Fair", Value: "fair"},
		{Label: "Poor", Value: "poor"},
		{Label: "Broken", Value: "broken"},
	}
}

// ProductConditions returns the listing-condition buckets for the
// product-creation flow. Values match the backend product enum exactly.
func ProductConditions() []Option {
	return []Option{
		{Label: "New", Value: "new"},
		{Label: "Used", Value: "used"},
		{Label: "Refurbished", Value: "refurbished"},
	}
}

// BatteryHealth returns the battery-health percentage buckets.
func BatteryHealth() []Option {
	return []Option{
		{Label: "80% - 100%", Value: "80-100"},
		{Label: "60% - 80%", Value: "60-80"},
		{Label: "40% - 60%", Value: "40-60"},
		{Label: "Below 40%", Value: "0-40"},
	}
}

// Category is a top-level product category. The backend has no category
// endpoint, so the set is shipped with the client.
type Category struct {
	ID   string
	Name string
}

// Categories returns the product categories for the listing flow. The
// category name drives the phone-specific wizard branch, so renames
// here change flow shape and need a matching backend migration.
func Categories() []Category {
	return []Category{
		{ID: "cat-smartphones", Name: "Smartphones"},
		{ID: "cat-feature-phones", Name: "Feature Phones"},
		{ID: "cat-tablets", Name: "Tablets"},
		{ID: "cat-wearables", Name: "Wearables"},
		{ID: "cat-accessories", Name: "Accessories"},
	}
}

// CategoryOptions returns the categories as options; Value carries the
// category id and Label the display name.
func CategoryOptions() []Option {
	cats := Categories()
	out := make([]Option, len(cats))
	for i, c := range cats {
		out[i] = Option{Label: c.Name, Value: c.ID}
	}
	return out
}

// CategoryName returns the display name for a category id, or the id
// itself when unknown.
func CategoryName(id string) string {
	for _, c := range Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// PhoneTypes returns the phone subtype choices shown when a phone
// category is selected.
func PhoneTypes() []Option {
	return []Option{
		{Label: "Android", Value: "android"},
		{Label: "iPhone", Value: "iphone"},
		{Label: "Keypad / feature phone", Value: "keypad"},
	}
}

// FallbackBrands returns the built-in brand list used when the
// reference-data API is unreachable. The live catalog from the backend
// always takes precedence.
func FallbackBrands() []Option {
	return []Option{
		{Label: "Apple", Value: "Apple"},
		{Label: "Samsung", Value: "Samsung"},
		{Label: "OnePlus", Value: "OnePlus"},
		{Label: "Xiaomi", Value: "Xiaomi"},
		{Label: "Oppo", Value: "Oppo"},
		{Label: "Vivo", Value: "Vivo"},
		{Label: "Realme", Value: "Realme"},
		{Label: "Google", Value: "Google"},
		{Label: "Motorola", Value: "Motorola"},
		{Label: "Nothing", Value: "Nothing"},
	}
}

// ContactMethods returns how the customer prefers to be reached.
func ContactMethods() []Option {
	return []Option{
		{Label: "Phone call", Value: "call"},
		{Label: "WhatsApp", Value: "whatsapp"},
		{Label: "SMS", Value: "sms"},
	}
}

// Labels returns just the labels of the given options, in order.
func Labels(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

// LabelFor returns the label whose value matches v, or v itself when
// the value is not in the set (keeps display graceful for stale data).
func LabelFor(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
