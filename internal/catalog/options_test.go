package catalog

import (
	"testing"

	"github.com/swapcell/swapcell/internal/wizard"
)

// Option values are persisted in drafts and server records; a rename here
// silently corrupts both. This test pins the full value sets.
func TestOptionValuesAreStable(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{"age ranges", AgeRanges(), []string{"0-6m", "6m-1", "1-2", "2-3", "3+"}},
		{"yes/no", YesNo(), []string{"yes", "no"}},
		{"lead conditions", LeadConditions(), []string{"excellent", "good", "fair", "poor", "broken"}},
		{"product conditions", ProductConditions(), []string{"new", "used", "refurbished"}},
		{"battery health", BatteryHealth(), []string{"80-100", "60-80", "40-60", "0-40"}},
		{"phone types", PhoneTypes(), []string{"android", "iphone", "keypad"}},
		{"contact methods", ContactMethods(), []string{"call", "whatsapp", "sms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.opts) != len(tt.want) {
				t.Fatalf("got %d options, want %d", len(tt.opts), len(tt.want))
			}
			for i, o := range tt.opts {
				if o.Value != tt.want[i] {
					t.Errorf("option %d value = %q, want %q", i, o.Value, tt.want[i])
				}
				if o.Label == "" {
					t.Errorf("option %d has no label", i)
				}
			}
		})
	}
}

// Phone categories must trip the wizard's phone-branch check and the
// rest must not, or the listing flow shows the wrong steps.
func TestCategoriesDriveThePhoneBranch(t *testing.T) {
	phone := map[string]bool{
		"cat-smartphones":    true,
		"cat-feature-phones": true,
	}
	for _, c := range Categories() {
		if got := wizard.IsPhoneCategory(c.Name); got != phone[c.ID] {
			t.Errorf("IsPhoneCategory(%q) = %v, want %v", c.Name, got, phone[c.ID])
		}
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName("cat-tablets"); got != "Tablets" {
		t.Errorf("CategoryName = %q", got)
	}
	if got := CategoryName("cat-unknown"); got != "cat-unknown" {
		t.Errorf("unknown id should fall back to itself, got %q", got)
	}
}

func TestCategoryOptions(t *testing.T) {
	cats := Categories()
	opts := CategoryOptions()
	if len(opts) != len(cats) {
		t.Fatalf("got %d options for %d categories", len(opts), len(cats))
	}
	for i := range cats {
		if opts[i].Value != cats[i].ID || opts[i].Label != cats[i].Name {
			t.Errorf("option %d = %+v, want %+v", i, opts[i], cats[i])
		}
	}
}

func TestLabelFor(t *testing.T) {
	if got := LabelFor(AgeRanges(), "1-2"); got != "1 - 2 years" {
		t.Errorf("LabelFor = %q", got)
	}
	if got := LabelFor(AgeRanges(), "stale-value"); got != "stale-value" {
		t.Errorf("unknown value should echo back, got %q", got)
	}
}

func TestLabels(t *testing.T) {
	got := Labels(YesNo())
	if len(got) != 2 || got[0] != "Yes" || got[1] != "No" {
		t.Errorf("Labels = %v", got)
	}
}
