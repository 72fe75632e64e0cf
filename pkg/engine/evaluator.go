package engine

import (
	"go.uber.org/zap"

	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/rules"
)

// Verdict is the transient outcome of evaluating one field against its
// rules. It is not retained beyond updating the session's error map and the
// presentation layer.
type Verdict struct {
	Valid   bool
	Message string
}

// evaluateField runs the field's rules in declaration order and stops at the
// first failure, so exactly one message surfaces per field per pass.
func (s *Session) evaluateField(field *model.Field) Verdict {
	list := s.rules[field.Name]
	if len(list) == 0 {
		return Verdict{Valid: true}
	}

	value := field.Value()
	scope := formScope{doc: s.doc}

	for _, rule := range list {
		if rule.IsCustom() {
			if !s.runPredicate(rule, value, field) {
				return Verdict{Message: failureMessage(rule.Message, catalog.GenericMessage)}
			}
			continue
		}

		def, ok := s.validators.Lookup(rule.Name)
		if !ok {
			// Registration rejects unknown validators, so this only happens
			// when a rule set raced a catalog change. Skip rather than fail
			// the user's input for it.
			continue
		}
		if !def.Validate(scope, value, rule.Param) {
			return Verdict{Message: failureMessage(rule.Message, def.MessageFor(rule.Param))}
		}
	}
	return Verdict{Valid: true}
}

// runPredicate shields the pass from a panicking custom predicate: the panic
// is logged and counted as a failed validation, never propagated.
func (s *Session) runPredicate(rule rules.Rule, value model.Value, field *model.Field) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.system.logger.Warn("formval: custom predicate panicked",
				zap.String("form_id", s.FormID()),
				zap.String("field", field.Name),
				zap.Any("panic", r))
			ok = false
		}
	}()
	return rule.Predicate(value, field)
}

func failureMessage(override, fallback string) string {
	if override != "" {
		return override
	}
	if fallback != "" {
		return fallback
	}
	return catalog.GenericMessage
}

// formScope resolves equalTo-style peer lookups strictly within the
// evaluating form's document.
type formScope struct {
	doc *model.Document
}

func (f formScope) Peer(name string) (model.Value, bool) {
	field, ok := f.doc.Field(name)
	if !ok {
		return model.Value{}, false
	}
	return field.Value(), true
}
