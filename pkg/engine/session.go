package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/rules"
)

// Session is all state associated with one registered form: the resolved
// options, the current rule set, the form-scoped validator catalog, and the
// accumulated error map. It is created by System.Register and lives until
// explicitly disposed.
type Session struct {
	system     *System
	doc        *model.Document
	opts       Options
	rules      rules.RuleSet
	validators *catalog.Catalog
	errors     map[string]string
	state      CycleState
}

// FormID returns the owning form identifier.
func (s *Session) FormID() string {
	return s.doc.ID()
}

// Document returns the form document the session validates.
func (s *Session) Document() *model.Document {
	return s.doc
}

// Options returns the resolved configuration.
func (s *Session) Options() Options {
	return s.opts
}

// State reports where the most recent validation cycle landed.
func (s *Session) State() CycleState {
	return s.state
}

// Validate evaluates every field that has rules, in declaration order, and
// reports whether the whole form is valid. The error map is rebuilt from
// scratch so it always reflects this pass.
func (s *Session) Validate() bool {
	s.state = StateValidating

	next := make(map[string]string, len(s.errors))
	for _, field := range s.doc.Fields() {
		if _, ok := s.rules[field.Name]; !ok {
			continue
		}
		verdict := s.evaluateField(field)
		if !verdict.Valid {
			next[field.Name] = verdict.Message
		}
		s.applyFieldState(field, verdict)
	}
	s.errors = next

	s.renderSummary()
	s.settle()
	return len(s.errors) == 0
}

// ValidateField evaluates a single field and reports its validity. Fields
// without rules are valid without message; unknown field names are valid too
// (registration guarantees rules only reference declared fields).
func (s *Session) ValidateField(name string) bool {
	field, ok := s.doc.Field(name)
	if !ok {
		return true
	}
	if _, ok := s.rules[name]; !ok {
		return true
	}

	s.state = StateValidating
	verdict := s.evaluateField(field)
	if verdict.Valid {
		delete(s.errors, name)
	} else {
		s.errors[name] = verdict.Message
	}
	s.applyFieldState(field, verdict)
	s.settle()
	return verdict.Valid
}

// Errors returns a copy of the current field→message error map. Absence of a
// key means the field is valid or unvalidated.
func (s *Session) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for field, message := range s.errors {
		out[field] = message
	}
	return out
}

// HasErrors reports whether any field currently carries an error.
func (s *Session) HasErrors() bool {
	return len(s.errors) > 0
}

// SetRules replaces the rule set wholesale. Errors computed under the old
// rules are no longer meaningful, so the session's error state and visuals
// are cleared atomically with the swap.
func (s *Session) SetRules(set rules.RuleSet) error {
	set = set.Clone()
	if err := set.Validate(s.validators); err != nil {
		return fmt.Errorf("engine: set rules for %q: %w", s.FormID(), err)
	}
	if err := checkRuleFields(s.doc, set); err != nil {
		return fmt.Errorf("engine: set rules for %q: %w", s.FormID(), err)
	}
	s.rules = set
	s.ClearErrors()
	return nil
}

// AddValidator registers a validator on this session's catalog copy only; no
// other form can resolve it. An existing name (built-in included) is
// shadowed.
func (s *Session) AddValidator(name string, def catalog.Definition) error {
	def.Name = name
	if err := s.validators.Replace(def); err != nil {
		return fmt.Errorf("engine: add validator to %q: %w", s.FormID(), err)
	}
	s.system.logger.Debug("formval: custom validator registered",
		zap.String("form_id", s.FormID()), zap.String("validator", name))
	return nil
}

// ClearErrors drops all error state and visual feedback. No stale message
// survives: field views and the summary are cleared in the same call.
func (s *Session) ClearErrors() {
	s.errors = make(map[string]string)
	presenter := s.system.presenter
	for _, field := range s.doc.Fields() {
		if presenter != nil {
			presenter.ClearFieldState(s.doc, field, s.opts)
		}
	}
	s.renderSummary()
	s.state = StateIdle
}

// Reset restores the form to its pristine state: values emptied, error state
// and visuals cleared.
func (s *Session) Reset() {
	for _, field := range s.doc.Fields() {
		field.SetValue(model.Value{Kind: field.Kind})
	}
	s.ClearErrors()
}

func (s *Session) applyFieldState(field *model.Field, verdict Verdict) {
	if !s.opts.ShowValidationMessages {
		return
	}
	presenter := s.system.presenter
	if presenter == nil {
		return
	}
	presenter.ApplyFieldState(s.doc, field, verdict, s.opts)
}

func (s *Session) renderSummary() {
	presenter := s.system.presenter
	if presenter == nil {
		return
	}
	presenter.RenderSummary(s.doc, s.Errors(), s.opts)
}

func (s *Session) settle() {
	if len(s.errors) == 0 {
		s.state = StateValid
	} else {
		s.state = StateInvalid
	}
}
