package wizard

import "regexp"

// phonePattern is an exact match: ten digits, nothing else. Inputs with
// spaces, dashes or a country code are rejected rather than normalized,
// which keeps validation deterministic.
var phonePattern = regexp.MustCompile(`^\d{10}$`)

// requiredAt lists the required fields per step. Steps whose
// requirements depend on the category branch are resolved in
// requiredFields rather than here.
var requiredAt = map[Step][]Field{
	StepBrandSelect: {FieldBrand},
	StepSellDetails: {
		FieldModelName, FieldAge, FieldHasBill, FieldHasBox,
		FieldScreenReplacement, FieldCondition, FieldBattery,
	},
	StepContact:   {FieldName, FieldPhone, FieldCity},
	StepCategory:  {FieldCategoryID, FieldCategoryName},
	StepPhoneType: {FieldPhoneType},
	StepBrand:     {FieldBrandID},
	StepModel:     {FieldModelID},
	StepVariant:   {FieldVariantID},
	StepSpecs:     {FieldStorage, FieldColor},
	StepPricing:   {FieldPrice, FieldStock},
}

// requiredFields resolves the complete required-field set for a step,
// including the branch-dependent terminal step of the product flow.
// Step identities are unique across flows, so the step alone decides.
func requiredFields(step Step, form *FormState) []Field {
	if step == StepProductDetails {
		fields := []Field{FieldTitle, FieldDescription, FieldCondition}
		if IsPhoneCategory(form.Get(FieldCategoryName)) {
			// Phone listings price per variant; price arrives with the
			// variant selection and is confirmed here.
			fields = append(fields, FieldPrice)
		}
		return fields
	}
	return requiredAt[step]
}

// fieldMessage returns the user-facing message for a missing or
// malformed field.
func fieldMessage(field Field) string {
	switch field {
	case FieldPhone:
		return "Enter a valid 10-digit phone number"
	case FieldName:
		return "Name is required"
	case FieldCity:
		return "City is required"
	case FieldModelName:
		return "Model name is required"
	case FieldPrice:
		return "Price is required"
	case FieldStock:
		return "Stock is required"
	default:
		return "This field is required"
	}
}

// Validate checks every required field of the given step and returns a
// fresh error map. Validation is total: all required fields are checked
// on every attempt, never just the first failure. An empty result means
// the step may advance.
func Validate(step Step, form *FormState) FieldErrors {
	errs := make(FieldErrors)

	for _, field := range requiredFields(step, form) {
		value := form.Get(field)
		if value == "" {
			errs[field] = fieldMessage(field)
			continue
		}
		if field == FieldPhone && !phonePattern.MatchString(value) {
			errs[field] = fieldMessage(FieldPhone)
		}
	}

	return errs
}
