package wizard

import "strings"

// Step identifies one screen of a wizard flow.
type Step string

const (
	// Sell flow: three linear steps.
	StepBrandSelect Step = "brand-selection"
	StepSellDetails Step = "details"
	StepContact     Step = "contact"

	// Product flow. The phone-only steps exist solely when the chosen
	// category is a phone category.
	StepCategory       Step = "category"
	StepPhoneType      Step = "phone-type"
	StepBrand          Step = "brand"
	StepModel          Step = "model"
	StepVariant        Step = "variant"
	StepSpecs          Step = "specs"
	StepPricing        Step = "pricing"
	StepProductDetails Step = "product-details"
)

// Flow identifies which wizard is running.
type Flow string

const (
	FlowSell    Flow = "sell"
	FlowProduct Flow = "product"
)

// IsPhoneCategory reports whether a category name selects the phone
// branch of the product flow. The match is a case-insensitive substring
// check on "phone", decided once when the category step completes.
func IsPhoneCategory(categoryName string) bool {
	return strings.Contains(strings.ToLower(categoryName), "phone")
}

// Steps returns the ordered step sequence for the flow given the
// current form state. For the product flow the sequence depends only on
// the category branch: six steps for phone categories (phone type,
// model and variant cascades included), five otherwise (specs and
// pricing entered by hand instead of derived from a variant).
func (fl Flow) Steps(form *FormState) []Step {
	switch fl {
	case FlowSell:
		return []Step{StepBrandSelect, StepSellDetails, StepContact}
	case FlowProduct:
		if IsPhoneCategory(form.Get(FieldCategoryName)) {
			return []Step{StepCategory, StepPhoneType, StepBrand, StepModel, StepVariant, StepProductDetails}
		}
		return []Step{StepCategory, StepBrand, StepSpecs, StepPricing, StepProductDetails}
	default:
		return nil
	}
}

// StepIndex returns the zero-based position of step in the flow's
// current sequence, or -1 when the step is not part of it (a branch
// change can strand the session on a step that no longer exists).
func (fl Flow) StepIndex(form *FormState, step Step) int {
	for i, s := range fl.Steps(form) {
		if s == step {
			return i
		}
	}
	return -1
}

// Title returns the screen heading for a step.
func (s Step) Title() string {
	switch s {
	case StepBrandSelect:
		return "Select Your Phone Brand"
	case StepSellDetails:
		return "Tell Us About Your Phone"
	case StepContact:
		return "Your Contact Details"
	case StepCategory:
		return "Choose a Category"
	case StepPhoneType:
		return "Phone Type"
	case StepBrand:
		return "Select Brand"
	case StepModel:
		return "Select Model"
	case StepVariant:
		return "Select Variant"
	case StepSpecs:
		return "Item Specifications"
	case StepPricing:
		return "Pricing & Stock"
	case StepProductDetails:
		return "Listing Details"
	default:
		return string(s)
	}
}

// ShortLabel returns the compact label used in the progress indicator.
func (s Step) ShortLabel() string {
	switch s {
	case StepBrandSelect:
		return "Brand"
	case StepSellDetails:
		return "Details"
	case StepContact:
		return "Contact"
	case StepCategory:
		return "Category"
	case StepPhoneType:
		return "Type"
	case StepBrand:
		return "Brand"
	case StepModel:
		return "Model"
	case StepVariant:
		return "Variant"
	case StepSpecs:
		return "Specs"
	case StepPricing:
		return "Pricing"
	case StepProductDetails:
		return "Listing"
	default:
		return string(s)
	}
}
