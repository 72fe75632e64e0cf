package engine

import "github.com/terrafusion/go-formval/pkg/model"

// CycleState tracks where a session's most recent validation cycle landed.
// Invalid transitions back to Validating on the next trigger; there is no
// submitting state: once a submit is allowed, progress is the caller's
// responsibility.
type CycleState int

const (
	StateIdle CycleState = iota
	StateValidating
	StateValid
	StateInvalid
)

func (s CycleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// SubmitResult is the orchestrated outcome of a submit trigger.
type SubmitResult struct {
	// Allowed reports whether the submission may proceed. False only when
	// the form is invalid and PreventSubmitOnError is set.
	Allowed bool
	// Valid is the full-form verdict of this pass (or the standing state
	// when ValidateOnSubmit is disabled).
	Valid bool
	// FirstInvalid names the first field, in declaration order, carrying the
	// error state, the scroll/focus target. Set only when the submission is
	// blocked and ScrollToFirstError is enabled.
	FirstInvalid string
	// Errors is a copy of the error map after this pass.
	Errors map[string]string
}

// HandleInput records a value change and, when the input trigger is enabled,
// re-evaluates just that field. It reports the field's current validity
// (true when validation did not run).
func (s *Session) HandleInput(name string, value model.Value) bool {
	s.doc.SetValue(name, value)
	if !s.opts.ValidateOnInput {
		return true
	}
	return s.ValidateField(name)
}

// HandleBlur re-evaluates a field on focus loss when the blur trigger is
// enabled.
func (s *Session) HandleBlur(name string) bool {
	if !s.opts.ValidateOnBlur {
		return true
	}
	return s.ValidateField(name)
}

// HandleSubmit runs the submit orchestration: a full-form pass over every
// field with rules (not just dirty ones), the block decision, and the
// first-invalid-field lookup.
func (s *Session) HandleSubmit() SubmitResult {
	if !s.opts.ValidateOnSubmit {
		return SubmitResult{
			Allowed: true,
			Valid:   !s.HasErrors(),
			Errors:  s.Errors(),
		}
	}

	valid := s.Validate()
	result := SubmitResult{
		Allowed: valid || !s.opts.PreventSubmitOnError,
		Valid:   valid,
		Errors:  s.Errors(),
	}
	if !result.Allowed && s.opts.ScrollToFirstError {
		result.FirstInvalid = s.firstInvalidField()
	}
	return result
}

// firstInvalidField walks the document in declaration order and returns the
// first field currently recorded as invalid.
func (s *Session) firstInvalidField() string {
	for _, field := range s.doc.Fields() {
		if _, invalid := s.errors[field.Name]; invalid {
			return field.Name
		}
	}
	return ""
}
