package wizard

// Outcome reports what a navigation call decided.
type Outcome int

const (
	// OutcomeStay means the step did not change; validation errors are
	// available on the form.
	OutcomeStay Outcome = iota
	// OutcomeAdvanced means the session moved to the next step.
	OutcomeAdvanced
	// OutcomeBack means the session moved to the previous step.
	OutcomeBack
	// OutcomeSubmit means the terminal step validated; the caller
	// should hand the form to the submission gateway.
	OutcomeSubmit
	// OutcomeCancel means the user backed out of the first step; the
	// caller decides what exiting the wizard means.
	OutcomeCancel
)

// Session is one live wizard instance: a flow, its form, and the
// current step. The step sequence is a function of the flow and the
// branch decision held in the form; it is recomputed on demand rather
// than stored, so the step-count and validation tables cannot drift
// apart. A Session must not be shared between goroutines.
type Session struct {
	flow Flow
	form *FormState
	step Step
}

// NewSession starts a fresh session at the first step of the flow.
func NewSession(flow Flow) *Session {
	form := NewFormState()
	return &Session{
		flow: flow,
		form: form,
		step: flow.Steps(form)[0],
	}
}

// Resume rebuilds a session from a saved draft.
func Resume(flow Flow, step Step, values map[Field]string) *Session {
	s := NewSession(flow)
	s.form.Restore(values)
	if s.flow.StepIndex(s.form, step) >= 0 {
		s.step = step
	}
	return s
}

// Flow returns which wizard this session runs.
func (s *Session) Flow() Flow { return s.flow }

// Form returns the session's form state.
func (s *Session) Form() *FormState { return s.form }

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Progress returns the 1-based position of the current step and the
// total count for the active branch.
func (s *Session) Progress() (current, total int) {
	seq := s.flow.Steps(s.form)
	return s.flow.StepIndex(s.form, s.step) + 1, len(seq)
}

// IsTerminal reports whether the current step is the last one.
func (s *Session) IsTerminal() bool {
	seq := s.flow.Steps(s.form)
	return len(seq) > 0 && s.step == seq[len(seq)-1]
}

// Next validates the current step. With errors present the session
// stays put and the errors are surfaced on the form. On the terminal
// step a valid form yields OutcomeSubmit instead of a transition.
func (s *Session) Next() Outcome {
	errs := Validate(s.step, s.form)
	s.form.setErrors(errs)
	if len(errs) > 0 {
		return OutcomeStay
	}

	seq := s.flow.Steps(s.form)
	i := s.flow.StepIndex(s.form, s.step)
	if i < 0 {
		// Branch change stranded the step; realign to the sequence.
		s.step = seq[0]
		return OutcomeStay
	}
	if i == len(seq)-1 {
		return OutcomeSubmit
	}
	s.step = seq[i+1]
	return OutcomeAdvanced
}

// Previous moves back one step without validating. At the first step it
// is a request to exit the wizard, delegated to the caller.
func (s *Session) Previous() Outcome {
	seq := s.flow.Steps(s.form)
	i := s.flow.StepIndex(s.form, s.step)
	if i <= 0 {
		return OutcomeCancel
	}
	s.step = seq[i-1]
	return OutcomeBack
}

// Select records the value of a cascade or branch field and clears its
// dependent children in the same atomic update, then recomputes the
// step sequence (a category change can change the total step count).
// On the sell flow's brand-selection step, choosing a brand advances
// the session in the same action.
func (s *Session) Select(field Field, value string) Outcome {
	if value != s.form.Get(field) {
		s.form.SetAll(branchUpdate(field, value))
	} else {
		s.form.Set(field, value)
	}

	// The branch decision may have removed the current step from the
	// sequence. Stale branch data was already cleared above; realign to
	// the first step so stale positions cannot survive either.
	if s.flow.StepIndex(s.form, s.step) < 0 {
		s.step = s.flow.Steps(s.form)[0]
	}

	if s.flow == FlowSell && s.step == StepBrandSelect {
		return s.Next()
	}
	return OutcomeStay
}

// Restart clears the form and returns to the first step.
func (s *Session) Restart() {
	s.form.Reset()
	s.step = s.flow.Steps(s.form)[0]
}
