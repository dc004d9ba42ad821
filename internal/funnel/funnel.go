// Package funnel manages the lead-form lifecycle: field state, derived
// submission gating, a guarded one-at-a-time submit, and linear
// multi-step wizards.
package funnel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/elric-cpu/website-v4-api/internal/models"
)

// State is the form lifecycle state.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

var (
	// ErrSubmissionInFlight rejects a second submit while one is
	// already outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrValidationFailed rejects submission while contact validation
	// fails.
	ErrValidationFailed = errors.New("contact validation failed")
	// ErrAlreadySubmitted rejects re-submission of a completed form.
	ErrAlreadySubmitted = errors.New("form already submitted")
)

// Form is one lead-form instance. All state is local to the instance;
// the mutex only serializes the in-flight guard, there is no cross-form
// coordination.
type Form struct {
	mu         sync.Mutex
	state      State
	requireZip bool
	contact    models.Contact
	fields     map[string]any
	failReason string
}

// NewForm creates a form in the editing state.
func NewForm(requireZip bool) *Form {
	return &Form{
		state:      StateEditing,
		requireZip: requireZip,
		fields:     make(map[string]any),
	}
}

// SetContact updates the contact fields. Editing a failed form returns
// it to the editing state.
func (f *Form) SetContact(c models.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editLocked()
	f.contact = c
}

// SetField updates one calculator/form field.
func (f *Form) SetField(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editLocked()
	f.fields[key] = value
}

func (f *Form) editLocked() {
	if f.state == StateFailed {
		f.state = StateEditing
		f.failReason = ""
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FailReason returns the user-facing message from the last failed
// submission, if any.
func (f *Form) FailReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failReason
}

// Contact returns a copy of the current contact fields.
func (f *Form) Contact() models.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contact
}

// Fields returns a copy of the current form fields.
func (f *Form) Fields() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]any, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Problems returns per-field contact validation messages.
func (f *Form) Problems() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contact.Validate(f.requireZip)
}

// CanSubmit reports whether contact validation currently passes.
func (f *Form) CanSubmit() bool {
	return len(f.Problems()) == 0
}

// ReportUnlocked reports whether the detailed-report gate is open. It
// is purely derived from the submitted state.
func (f *Form) ReportUnlocked() bool {
	return f.State() == StateSubmitted
}

// Submit runs send exactly once if the form is submittable and no other
// submission is in flight. Success moves the form to Submitted; failure
// records the reason, moves to Failed, and leaves the form editable.
// There are no automatic retries.
func (f *Form) Submit(ctx context.Context, send func(context.Context) error) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case StateSubmitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if len(f.contact.Validate(f.requireZip)) > 0 {
		f.mu.Unlock()
		return ErrValidationFailed
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	err := send(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateFailed
		f.failReason = err.Error()
		return err
	}
	f.state = StateSubmitted
	f.failReason = ""
	return nil
}

// Reset returns a submitted form to the editing state so the visitor
// can start another request. Fields and contact are cleared.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateEditing
	f.failReason = ""
	f.contact = models.Contact{}
	f.fields = make(map[string]any)
}

// Step is one wizard step with its completion predicate.
type Step struct {
	Name     string
	Complete func(fields map[string]any) bool
}

// RequireFields builds a step predicate that passes once every named
// field is present and non-blank.
func RequireFields(names ...string) func(map[string]any) bool {
	return func(fields map[string]any) bool {
		for _, name := range names {
			v, ok := fields[name]
			if !ok {
				return false
			}
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				return false
			}
		}
		return true
	}
}

var (
	// ErrStepIncomplete blocks forward navigation until the current
	// step's predicate passes.
	ErrStepIncomplete = errors.New("current step is incomplete")
	// ErrAtFirstStep blocks back navigation from the first step.
	ErrAtFirstStep = errors.New("already at the first step")
	// ErrAtTerminalStep blocks navigation away from the final step.
	ErrAtTerminalStep = errors.New("cannot leave the final step")
)

// Wizard is a multi-step funnel: a Form plus a linear step index.
// Forward navigation requires the current step's predicate; back
// navigation is always allowed except on the terminal step.
type Wizard struct {
	*Form
	steps []Step
	index int
}

// NewWizard creates a wizard on the given steps. At least two steps are
// required for the linear flow to mean anything.
func NewWizard(requireZip bool, steps []Step) (*Wizard, error) {
	if len(steps) < 2 {
		return nil, fmt.Errorf("wizard needs at least 2 steps, got %d", len(steps))
	}
	return &Wizard{Form: NewForm(requireZip), steps: steps}, nil
}

// StepIndex returns the zero-based current step.
func (w *Wizard) StepIndex() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index
}

// StepName returns the current step's name.
func (w *Wizard) StepName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[w.index].Name
}

// OnTerminalStep reports whether the wizard is on its final step.
func (w *Wizard) OnTerminalStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index == len(w.steps)-1
}

// CanAdvance reports whether the current step's predicate passes.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Wizard) canAdvanceLocked() bool {
	complete := w.steps[w.index].Complete
	return complete == nil || complete(w.fields)
}

// Next advances to the following step once the current step is
// complete.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.index == len(w.steps)-1 {
		return ErrAtTerminalStep
	}
	if !w.canAdvanceLocked() {
		return ErrStepIncomplete
	}
	w.index++
	return nil
}

// Reset clears the form and returns the wizard to its first step.
func (w *Wizard) Reset() {
	w.Form.Reset()
	w.mu.Lock()
	w.index = 0
	w.mu.Unlock()
}

// Back returns to the previous step. Always permitted except on the
// first step and the terminal step.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.index == len(w.steps)-1 {
		return ErrAtTerminalStep
	}
	if w.index == 0 {
		return ErrAtFirstStep
	}
	w.index--
	return nil
}
