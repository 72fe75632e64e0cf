// Package rules models the declarative rule sets bound to form fields. A
// field's rules evaluate in declaration order with fail-fast semantics, so
// ordering is part of the contract and every loader in this package
// preserves it.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/model"
)

// CustomPredicate is an inline validator bound to a single field. It receives
// the normalized value and the field handle and reports pass/fail.
type CustomPredicate func(value model.Value, field *model.Field) bool

// Rule is one entry in a field's rule list: either a named catalog rule with
// an optional parameter, or an inline custom predicate. Message, when set,
// overrides the validator's default failure message.
type Rule struct {
	Name      string
	Param     string
	Message   string
	Predicate CustomPredicate
}

// IsCustom reports whether the rule carries an inline predicate instead of a
// catalog reference.
func (r Rule) IsCustom() bool {
	return r.Predicate != nil
}

// Named builds a catalog rule reference.
func Named(name, param string) Rule {
	return Rule{Name: strings.TrimSpace(name), Param: param}
}

// NamedWithMessage builds a catalog rule reference with an inline message
// override.
func NamedWithMessage(name, param, message string) Rule {
	return Rule{Name: strings.TrimSpace(name), Param: param, Message: message}
}

// Custom builds an inline predicate rule.
func Custom(predicate CustomPredicate) Rule {
	return Rule{Predicate: predicate}
}

// CustomWithMessage builds an inline predicate rule with its own failure
// message.
func CustomWithMessage(predicate CustomPredicate, message string) Rule {
	return Rule{Predicate: predicate, Message: message}
}

// FieldRules is the ordered rule list for one field.
type FieldRules []Rule

// RuleSet maps field names to their rule lists.
type RuleSet map[string]FieldRules

// FieldNames returns the rule set's field names sorted for deterministic
// diagnostics.
func (rs RuleSet) FieldNames() []string {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every named rule against the catalog. Registration rejects
// rule sets referencing unknown validators instead of skipping them silently
// at evaluation time.
func (rs RuleSet) Validate(cat *catalog.Catalog) error {
	if cat == nil {
		return fmt.Errorf("rules: catalog is required")
	}
	for _, field := range rs.FieldNames() {
		for _, rule := range rs[field] {
			if rule.IsCustom() {
				continue
			}
			if rule.Name == "" {
				return fmt.Errorf("rules: field %q has a rule with no name and no predicate", field)
			}
			if !cat.Has(rule.Name) {
				return fmt.Errorf("rules: field %q references unknown validator %q", field, rule.Name)
			}
		}
	}
	return nil
}

// Clone returns an independent copy of the rule set. Rule values are copied;
// predicates are shared (they are immutable by convention).
func (rs RuleSet) Clone() RuleSet {
	if rs == nil {
		return nil
	}
	out := make(RuleSet, len(rs))
	for field, list := range rs {
		copied := make(FieldRules, len(list))
		copy(copied, list)
		out[field] = copied
	}
	return out
}
