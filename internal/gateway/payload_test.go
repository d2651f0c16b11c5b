package gateway

import (
	"testing"

	"github.com/swapcell/swapcell/internal/wizard"
)

func sellForm() *wizard.FormState {
	f := wizard.NewFormState()
	f.SetAll(map[wizard.Field]string{
		wizard.FieldBrand:             "Apple",
		wizard.FieldModelName:         "iPhone 13",
		wizard.FieldAge:               "1-2 years",
		wizard.FieldHasBill:           "yes",
		wizard.FieldBillImage:         "https://cdn.example.com/bill.jpg",
		wizard.FieldHasBox:            "no",
		wizard.FieldScreenReplacement: "no",
		wizard.FieldCondition:         "good",
		wizard.FieldBattery:           "85-90%",
		wizard.FieldName:              "Asha",
		wizard.FieldPhone:             "9876543210",
		wizard.FieldCity:              "Mumbai",
		wizard.FieldContactMethod:     "whatsapp",
	})
	return f
}

func TestBuildLeadPayload(t *testing.T) {
	p := BuildLeadPayload("cust-1", sellForm())

	if p.CustomerID != "cust-1" {
		t.Errorf("CustomerID = %q", p.CustomerID)
	}
	if !p.HasBill {
		t.Error("hasBill 'yes' should project to true")
	}
	if p.HasBox {
		t.Error("hasBox 'no' should project to false")
	}
	if p.Status != "pending" {
		t.Errorf("Status = %q, want pending", p.Status)
	}
	if p.PhoneBrand != "Apple" || p.PhoneModel != "iPhone 13" {
		t.Errorf("phone = %q %q", p.PhoneBrand, p.PhoneModel)
	}
	if p.CustomerLocation != "Mumbai" || p.PreferredContact != "whatsapp" {
		t.Errorf("contact = %q %q", p.CustomerLocation, p.PreferredContact)
	}
}

func TestBuildLeadPayloadUnsetBooleans(t *testing.T) {
	// Anything other than "yes" is false, including the empty string.
	p := BuildLeadPayload("cust-1", wizard.NewFormState())
	if p.HasBill || p.HasBox {
		t.Errorf("empty form should project false booleans, got bill=%v box=%v", p.HasBill, p.HasBox)
	}
}

func TestBuildProductPayload(t *testing.T) {
	f := wizard.NewFormState()
	f.SetAll(map[wizard.Field]string{
		wizard.FieldCategoryID:   "cat-smartphones",
		wizard.FieldCategoryName: "Smartphones",
		wizard.FieldPhoneType:    "android",
		wizard.FieldBrandID:      "brand-samsung",
		wizard.FieldModelID:      "model-s23",
		wizard.FieldVariantID:    "variant-1",
		wizard.FieldStorage:      "256GB",
		wizard.FieldRAM:          "8GB",
		wizard.FieldColor:        "Black",
		wizard.FieldTitle:        "Galaxy S23",
		wizard.FieldDescription:  "Lightly used",
		wizard.FieldCondition:    "like-new",
		wizard.FieldPrice:        "45000",
		wizard.FieldStock:        "1",
	})

	p := BuildProductPayload("ret-1", f)
	if p.RetailerID != "ret-1" {
		t.Errorf("RetailerID = %q", p.RetailerID)
	}
	if p.Status != "active" {
		t.Errorf("Status = %q, want active", p.Status)
	}
	if p.CategoryID != "cat-smartphones" || p.VariantID != "variant-1" {
		t.Errorf("cascade ids = %q %q", p.CategoryID, p.VariantID)
	}
	if p.Storage != "256GB" || p.Price != "45000" {
		t.Errorf("specs = %q %q", p.Storage, p.Price)
	}
}

func TestBuildLeadPayloadIsDeterministic(t *testing.T) {
	f := sellForm()
	if BuildLeadPayload("c", f) != BuildLeadPayload("c", f) {
		t.Error("same form should produce the same payload")
	}
}
