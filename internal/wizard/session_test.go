package wizard

import "testing"

func fillSellDetails(f *FormState) {
	f.Set(FieldModelName, "iPhone 14")
	f.Set(FieldAge, "1-2")
	f.Set(FieldHasBill, "yes")
	f.Set(FieldHasBox, "no")
	f.Set(FieldScreenReplacement, "no")
	f.Set(FieldCondition, "good")
	f.Set(FieldBattery, "80-100")
}

func TestIsPhoneCategory(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Smartphones", true},
		{"Feature Phones", true},
		{"PHONE accessories", true},
		{"Accessories", false},
		{"Tablets", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPhoneCategory(tt.name); got != tt.want {
			t.Errorf("IsPhoneCategory(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSellFlowHappyPath(t *testing.T) {
	s := NewSession(FlowSell)

	if s.Step() != StepBrandSelect {
		t.Fatalf("start step = %s", s.Step())
	}
	if cur, total := s.Progress(); cur != 1 || total != 3 {
		t.Fatalf("progress = %d/%d, want 1/3", cur, total)
	}

	// Brand selection advances in the same action.
	if got := s.Select(FieldBrand, "Apple"); got != OutcomeAdvanced {
		t.Fatalf("Select(brand) = %v, want OutcomeAdvanced", got)
	}
	if s.Step() != StepSellDetails {
		t.Fatalf("step after brand = %s", s.Step())
	}

	// Details step blocks until complete.
	if got := s.Next(); got != OutcomeStay {
		t.Fatalf("Next() on empty details = %v, want OutcomeStay", got)
	}
	if len(s.Form().Errors()) == 0 {
		t.Fatal("blocked Next must surface field errors")
	}

	fillSellDetails(s.Form())
	if got := s.Next(); got != OutcomeAdvanced {
		t.Fatalf("Next() on filled details = %v", got)
	}
	if s.Step() != StepContact {
		t.Fatalf("step = %s, want contact", s.Step())
	}
	if !s.IsTerminal() {
		t.Fatal("contact is the last sell step")
	}

	s.Form().Set(FieldName, "Asha")
	s.Form().Set(FieldPhone, "9876543210")
	s.Form().Set(FieldCity, "Pune")
	if got := s.Next(); got != OutcomeSubmit {
		t.Fatalf("terminal Next() = %v, want OutcomeSubmit", got)
	}
}

func TestPreviousIsUnconditional(t *testing.T) {
	s := NewSession(FlowSell)
	s.Select(FieldBrand, "Apple")
	s.Form().Set(FieldModelName, "half-typed")

	if got := s.Previous(); got != OutcomeBack {
		t.Fatalf("Previous() = %v", got)
	}
	if s.Step() != StepBrandSelect {
		t.Fatalf("step = %s", s.Step())
	}
	// Going back never validates and never loses data.
	if got := s.Form().Get(FieldModelName); got != "half-typed" {
		t.Errorf("model name lost on back: %q", got)
	}

	if got := s.Previous(); got != OutcomeCancel {
		t.Fatalf("Previous() at first step = %v, want OutcomeCancel", got)
	}
}

func TestProductFlowStepCountFollowsBranch(t *testing.T) {
	s := NewSession(FlowProduct)

	if _, total := s.Progress(); total != 5 {
		t.Fatalf("undecided branch total = %d, want 5", total)
	}

	s.Select(FieldCategoryID, "cat-smartphones")
	s.Select(FieldCategoryName, "Smartphones")
	if _, total := s.Progress(); total != 6 {
		t.Fatalf("phone branch total = %d, want 6", total)
	}
	want := []Step{StepCategory, StepPhoneType, StepBrand, StepModel, StepVariant, StepProductDetails}
	for i, step := range FlowProduct.Steps(s.Form()) {
		if step != want[i] {
			t.Fatalf("phone steps[%d] = %s, want %s", i, step, want[i])
		}
	}

	s.Select(FieldCategoryID, "cat-accessories")
	s.Select(FieldCategoryName, "Accessories")
	if _, total := s.Progress(); total != 5 {
		t.Fatalf("accessory branch total = %d, want 5", total)
	}
}

func TestBranchChangeRealignsStrandedStep(t *testing.T) {
	s := NewSession(FlowProduct)

	// Walk into the phone branch.
	s.Select(FieldCategoryID, "cat-smartphones")
	s.Select(FieldCategoryName, "Smartphones")
	if got := s.Next(); got != OutcomeAdvanced {
		t.Fatalf("Next() past category = %v", got)
	}
	if s.Step() != StepPhoneType {
		t.Fatalf("step = %s", s.Step())
	}
	s.Form().Set(FieldPhoneType, "android")

	// Flip to a non-phone category while standing on a phone-only step.
	s.Select(FieldCategoryID, "cat-accessories")
	s.Select(FieldCategoryName, "Accessories")

	if idx := FlowProduct.StepIndex(s.Form(), s.Step()); idx < 0 {
		t.Fatalf("session stranded on %s, which is not in the sequence", s.Step())
	}
	// Phone-only data must not survive the branch change.
	if got := s.Form().Get(FieldPhoneType); got != "" {
		t.Errorf("phone type survived branch change: %q", got)
	}
}

func TestStepCountStableUnderBackNavigation(t *testing.T) {
	s := NewSession(FlowProduct)
	s.Select(FieldCategoryID, "cat-smartphones")
	s.Select(FieldCategoryName, "Smartphones")
	s.Next()

	_, before := s.Progress()
	s.Previous()
	s.Next()
	s.Previous()
	_, after := s.Progress()

	if before != after {
		t.Errorf("total changed %d -> %d under back/forward navigation", before, after)
	}
}

func TestResumeKeepsStepWhenStillValid(t *testing.T) {
	values := map[Field]string{
		FieldBrand:     "Apple",
		FieldModelName: "iPhone 14",
	}

	s := Resume(FlowSell, StepSellDetails, values)
	if s.Step() != StepSellDetails {
		t.Fatalf("resumed step = %s", s.Step())
	}
	if got := s.Form().Get(FieldBrand); got != "Apple" {
		t.Fatalf("resumed brand = %q", got)
	}

	// A draft whose saved step fell out of its branch restarts at the top.
	s = Resume(FlowProduct, StepVariant, map[Field]string{
		FieldCategoryName: "Accessories",
	})
	if s.Step() != StepCategory {
		t.Fatalf("invalid resumed step should realign, got %s", s.Step())
	}
}

func TestRestartClearsEverything(t *testing.T) {
	s := NewSession(FlowSell)
	s.Select(FieldBrand, "Apple")
	fillSellDetails(s.Form())

	s.Restart()

	if s.Step() != StepBrandSelect {
		t.Fatalf("step after restart = %s", s.Step())
	}
	if got := s.Form().Get(FieldBrand); got != "" {
		t.Fatalf("form not cleared: brand = %q", got)
	}
}

func TestReselectingSameCascadeValueKeepsChildren(t *testing.T) {
	s := NewSession(FlowProduct)
	s.Select(FieldCategoryID, "cat-smartphones")
	s.Select(FieldCategoryName, "Smartphones")
	s.Select(FieldBrandID, "brand-apple")
	s.Form().Set(FieldModelID, "model-iphone-14")

	// Picking the value already selected is not a change.
	s.Select(FieldBrandID, "brand-apple")
	if got := s.Form().Get(FieldModelID); got != "model-iphone-14" {
		t.Errorf("re-selecting the same brand cleared the model: %q", got)
	}

	s.Select(FieldBrandID, "brand-samsung")
	if got := s.Form().Get(FieldModelID); got != "" {
		t.Errorf("brand change kept stale model: %q", got)
	}
}
