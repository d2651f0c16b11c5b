package gateway

import (
	"github.com/swapcell/swapcell/internal/wizard"
)

// LeadPayload is the backend shape for POST /api/leads: the sell-flow
// form flattened, with the yes/no strings coerced to booleans.
type LeadPayload struct {
	CustomerID        string `json:"customerId"`
	PhoneBrand        string `json:"phoneBrand"`
	PhoneModel        string `json:"phoneModel"`
	PhoneAge          string `json:"phoneAge"`
	HasBill           bool   `json:"hasBill"`
	BillImage         string `json:"billImage,omitempty"`
	HasBox            bool   `json:"hasBox"`
	ScreenReplacement string `json:"screenReplacement"`
	Condition         string `json:"condition"`
	BatteryPercentage string `json:"batteryPercentage"`
	CustomerName      string `json:"customerName"`
	CustomerPhone     string `json:"customerPhone"`
	CustomerLocation  string `json:"customerLocation"`
	PreferredContact  string `json:"preferredContactMethod"`
	Status            string `json:"status"`
}

// ProductPayload is the backend shape for POST /api/products. Phone
// listings carry the cascade ids; accessory listings carry hand-entered
// specs instead.
type ProductPayload struct {
	RetailerID   string `json:"retailerId"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	PhoneType    string `json:"phoneType,omitempty"`
	BrandID      string `json:"brandId"`
	ModelID      string `json:"modelId,omitempty"`
	VariantID    string `json:"variantId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Condition    string `json:"condition"`
	Storage      string `json:"storage,omitempty"`
	RAM          string `json:"ram,omitempty"`
	Color        string `json:"color,omitempty"`
	Price        string `json:"price"`
	Stock        string `json:"stock,omitempty"`
	Status       string `json:"status"`
}

// BuildLeadPayload projects the sell-flow form into the lead payload.
// The projection is deterministic: same form, same payload.
func BuildLeadPayload(customerID string, form *wizard.FormState) LeadPayload {
	return LeadPayload{
		CustomerID:        customerID,
		PhoneBrand:        form.Get(wizard.FieldBrand),
		PhoneModel:        form.Get(wizard.FieldModelName),
		PhoneAge:          form.Get(wizard.FieldAge),
		HasBill:           form.Get(wizard.FieldHasBill) == "yes",
		BillImage:         form.Get(wizard.FieldBillImage),
		HasBox:            form.Get(wizard.FieldHasBox) == "yes",
		ScreenReplacement: form.Get(wizard.FieldScreenReplacement),
		Condition:         form.Get(wizard.FieldCondition),
		BatteryPercentage: form.Get(wizard.FieldBattery),
		CustomerName:      form.Get(wizard.FieldName),
		CustomerPhone:     form.Get(wizard.FieldPhone),
		CustomerLocation:  form.Get(wizard.FieldCity),
		PreferredContact:  form.Get(wizard.FieldContactMethod),
		Status:            "pending",
	}
}

// BuildProductPayload projects the product-flow form into the product
// payload.
func BuildProductPayload(retailerID string, form *wizard.FormState) ProductPayload {
	return ProductPayload{
		RetailerID:   retailerID,
		CategoryID:   form.Get(wizard.FieldCategoryID),
		CategoryName: form.Get(wizard.FieldCategoryName),
		PhoneType:    form.Get(wizard.FieldPhoneType),
		BrandID:      form.Get(wizard.FieldBrandID),
		ModelID:      form.Get(wizard.FieldModelID),
		VariantID:    form.Get(wizard.FieldVariantID),
		Title:        form.Get(wizard.FieldTitle),
		Description:  form.Get(wizard.FieldDescription),
		Condition:    form.Get(wizard.FieldCondition),
		Storage:      form.Get(wizard.FieldStorage),
		RAM:          form.Get(wizard.FieldRAM),
		Color:        form.Get(wizard.FieldColor),
		Price:        form.Get(wizard.FieldPrice),
		Stock:        form.Get(wizard.FieldStock),
		Status:       "active",
	}
}
