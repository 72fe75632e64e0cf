package engine

import "strings"

// Options is the resolved per-form configuration. Callers normally start from
// DefaultOptions and flip what they need; passing nil to Register selects the
// defaults wholesale. Empty class names resolve to the documented defaults,
// boolean fields are taken exactly as provided.
type Options struct {
	// ValidateOnInput re-evaluates a single field on every value change.
	ValidateOnInput bool
	// ValidateOnBlur re-evaluates a field when it loses focus.
	ValidateOnBlur bool
	// ValidateOnSubmit runs a full-form validation pass on submit.
	ValidateOnSubmit bool
	// ShowValidationMessages lets the presentation adapter reflect verdicts
	// into field views. Disabled, the engine still tracks errors silently.
	ShowValidationMessages bool
	// PreventSubmitOnError blocks submission while the form is invalid.
	PreventSubmitOnError bool
	// ScrollToFirstError reports the first invalid field on a blocked submit
	// so the caller can bring it into view and focus it.
	ScrollToFirstError bool
	// CustomErrorContainer selects an aggregate error container. When set,
	// full-form validation re-renders the error summary into it; when empty,
	// aggregated errors go to the notifier collaborator if one is present.
	CustomErrorContainer string

	ErrorClass          string
	SuccessClass        string
	ErrorMessageClass   string
	SuccessMessageClass string
}

// Default visual classes follow the Bootstrap validation vocabulary used
// across the assessment portal's templates.
const (
	DefaultErrorClass          = "is-invalid"
	DefaultSuccessClass        = "is-valid"
	DefaultErrorMessageClass   = "invalid-feedback"
	DefaultSuccessMessageClass = "valid-feedback"
)

// DefaultOptions returns the documented defaults: validate on every trigger,
// show messages, block invalid submits, and report the first invalid field.
func DefaultOptions() Options {
	return Options{
		ValidateOnInput:        true,
		ValidateOnBlur:         true,
		ValidateOnSubmit:       true,
		ShowValidationMessages: true,
		PreventSubmitOnError:   true,
		ScrollToFirstError:     true,
		ErrorClass:             DefaultErrorClass,
		SuccessClass:           DefaultSuccessClass,
		ErrorMessageClass:      DefaultErrorMessageClass,
		SuccessMessageClass:    DefaultSuccessMessageClass,
	}
}

// resolved fills empty class names with their defaults. Caller-provided
// values always win.
func (o Options) resolved() Options {
	if strings.TrimSpace(o.ErrorClass) == "" {
		o.ErrorClass = DefaultErrorClass
	}
	if strings.TrimSpace(o.SuccessClass) == "" {
		o.SuccessClass = DefaultSuccessClass
	}
	if strings.TrimSpace(o.ErrorMessageClass) == "" {
		o.ErrorMessageClass = DefaultErrorMessageClass
	}
	if strings.TrimSpace(o.SuccessMessageClass) == "" {
		o.SuccessMessageClass = DefaultSuccessMessageClass
	}
	o.CustomErrorContainer = strings.TrimSpace(o.CustomErrorContainer)
	return o
}
