// Package formval is a declarative form-validation engine: forms register a
// rule set against a document of typed fields, and the engine evaluates,
// tracks, and presents per-field validity across input, blur, and submit
// cycles. The top-level package re-exports the pieces most callers need;
// the focused packages under pkg/ remain available for advanced wiring.
package formval

import (
	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/present"
	"github.com/terrafusion/go-formval/pkg/rules"
)

// Core model types.
type (
	Document = model.Document
	Field    = model.Field
	Value    = model.Value
	Kind     = model.Kind
	Page     = model.Page
	FileRef  = model.FileRef
)

// Engine types.
type (
	System       = engine.System
	Session      = engine.Session
	Options      = engine.Options
	Verdict      = engine.Verdict
	SubmitResult = engine.SubmitResult
	Presenter    = engine.Presenter
)

// Rule types.
type (
	Rule            = rules.Rule
	FieldRules      = rules.FieldRules
	RuleSet         = rules.RuleSet
	CustomPredicate = rules.CustomPredicate
	Catalog         = catalog.Catalog
	Definition      = catalog.Definition
	RuleContext     = catalog.RuleContext
)

// Control kinds.
const (
	KindText        = model.KindText
	KindCheckbox    = model.KindCheckbox
	KindRadioGroup  = model.KindRadioGroup
	KindMultiSelect = model.KindMultiSelect
	KindFileList    = model.KindFileList
)

// NewDocument builds a form document from fields in declaration order.
func NewDocument(id string, fields ...Field) (*Document, error) {
	return model.NewDocument(id, fields...)
}

// NewPage groups documents so one System can serve several forms.
func NewPage(docs ...*Document) (*Page, error) {
	return model.NewPage(docs...)
}

// New constructs the form system. See engine.New for available options.
func New(options ...engine.Option) *System {
	return engine.New(options...)
}

// NewWithDefaults wires a system with the built-in catalog and an HTML
// presenter, the configuration most portal pages use.
func NewWithDefaults(page *Page) (*System, *present.HTMLPresenter, error) {
	presenter, err := present.New()
	if err != nil {
		return nil, nil, err
	}
	system := engine.New(
		engine.WithPage(page),
		engine.WithPresenter(presenter),
	)
	return system, presenter, nil
}

// DefaultOptions returns the documented per-form defaults.
func DefaultOptions() Options {
	return engine.DefaultOptions()
}

// DefaultCatalog builds a fresh catalog holding the built-in validators.
func DefaultCatalog() *Catalog {
	return catalog.Default()
}

// Named builds a rule referencing a cataloged validator.
func Named(name, param string) Rule {
	return rules.Named(name, param)
}

// NamedWithMessage builds a named rule with an inline message override.
func NamedWithMessage(name, param, message string) Rule {
	return rules.NamedWithMessage(name, param, message)
}

// Custom builds a rule from a predicate function.
func Custom(predicate CustomPredicate) Rule {
	return rules.Custom(predicate)
}

// ParseRulesYAML parses a YAML rule-set declaration, preserving the declared
// rule order per field.
func ParseRulesYAML(raw []byte) (RuleSet, error) {
	return rules.ParseYAML(raw)
}

// System options.
var (
	WithPage      = engine.WithPage
	WithCatalog   = engine.WithCatalog
	WithPresenter = engine.WithPresenter
	WithLogger    = engine.WithLogger
)

// Value constructors.
var (
	TextValue        = model.TextValue
	CheckboxValue    = model.CheckboxValue
	RadioValue       = model.RadioValue
	MultiSelectValue = model.MultiSelectValue
	FileListValue    = model.FileListValue
)
