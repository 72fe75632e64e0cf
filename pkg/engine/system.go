// Package engine hosts the form session registry and the field evaluator:
// the runtime that binds declarative rule sets to form documents, tracks
// per-field error state, and orchestrates input/blur/submit validation
// cycles. The registry is the single source of truth for a form's current
// validity; presentation and notification are collaborators it drives, never
// competing caches.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/rules"
)

// Presenter is the seam to the presentation adapter: the one component
// allowed to mutate visual state. A nil presenter leaves the engine fully
// functional, just silent.
type Presenter interface {
	// ApplyFieldState reflects a verdict into the field's view. It must be
	// idempotent: applying the same verdict twice leaves exactly one message.
	ApplyFieldState(doc *model.Document, field *model.Field, verdict Verdict, opts Options)
	// ClearFieldState removes any visual state from the field.
	ClearFieldState(doc *model.Document, field *model.Field, opts Options)
	// RenderSummary re-renders the aggregate error state after a full-form
	// pass: into the custom container when one is configured, otherwise to
	// the external notifier if present. The two paths are mutually exclusive
	// per pass.
	RenderSummary(doc *model.Document, errs map[string]string, opts Options)
}

// Option customises the system configuration.
type Option func(*System)

// WithPage supplies the page whose documents registration resolves form ids
// against.
func WithPage(page *model.Page) Option {
	return func(s *System) {
		if page != nil {
			s.page = page
		}
	}
}

// WithCatalog overrides the validator catalog sessions clone from.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *System) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithPresenter injects the presentation adapter.
func WithPresenter(presenter Presenter) Option {
	return func(s *System) {
		s.presenter = presenter
	}
}

// WithLogger injects a structured logger for registration diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// System is the form session registry. One instance is owned by the caller
// (typically per page render); there is no process-wide singleton.
type System struct {
	mu        sync.RWMutex
	page      *model.Page
	catalog   *catalog.Catalog
	presenter Presenter
	logger    *zap.Logger
	sessions  map[string]*Session
}

// New constructs a System applying any provided options. Missing dependencies
// fall back to an empty page, the built-in catalog, and a nop logger.
func New(options ...Option) *System {
	s := &System{
		sessions: make(map[string]*Session),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.page == nil {
		s.page = &model.Page{}
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Page exposes the document context registration resolves against.
func (s *System) Page() *model.Page {
	return s.page
}

// AddForm places a document on the system's page.
func (s *System) AddForm(doc *model.Document) error {
	return s.page.Add(doc)
}

// Register binds a configuration and rule set to the form with the given id
// and returns its session. Registration is the strict end of the pipeline:
// an unknown form id, a rule referencing a validator missing from the
// catalog, or a rule for a field the form does not declare all fail here,
// with a logged diagnostic and a nil session, rather than surfacing as
// silent skips during validation. Callers must nil-check the result.
//
// Re-registering an id replaces the previous session.
func (s *System) Register(formID string, opts *Options, set rules.RuleSet) *Session {
	doc, ok := s.page.Document(formID)
	if !ok {
		s.logger.Warn("formval: form not found on page, registration skipped",
			zap.String("form_id", formID))
		return nil
	}

	resolved := DefaultOptions()
	if opts != nil {
		resolved = opts.resolved()
	}

	validators := s.catalog.Clone()
	set = set.Clone()
	if err := set.Validate(validators); err != nil {
		s.logger.Warn("formval: rule set rejected",
			zap.String("form_id", formID), zap.Error(err))
		return nil
	}
	if err := checkRuleFields(doc, set); err != nil {
		s.logger.Warn("formval: rule set rejected",
			zap.String("form_id", formID), zap.Error(err))
		return nil
	}

	session := &Session{
		system:     s,
		doc:        doc,
		opts:       resolved,
		rules:      set,
		validators: validators,
		errors:     make(map[string]string),
		state:      StateIdle,
	}

	s.mu.Lock()
	s.sessions[formID] = session
	s.mu.Unlock()

	s.logger.Debug("formval: form registered",
		zap.String("form_id", formID), zap.Int("rule_fields", len(set)))
	return session
}

// Session retrieves a registered session by form id.
func (s *System) Session(formID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[formID]
	return session, ok
}

// Dispose removes a session from the registry. Sessions otherwise persist
// for the page's lifetime.
func (s *System) Dispose(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, formID)
}

// FormErrors returns a copy of the current error map for the form, or nil
// when the form is unregistered. Pure reader.
func (s *System) FormErrors(formID string) map[string]string {
	session, ok := s.Session(formID)
	if !ok {
		return nil
	}
	return session.Errors()
}

// HasFormErrors reports whether the form currently carries errors. Pure
// reader.
func (s *System) HasFormErrors(formID string) bool {
	session, ok := s.Session(formID)
	if !ok {
		return false
	}
	return session.HasErrors()
}

func checkRuleFields(doc *model.Document, set rules.RuleSet) error {
	for _, name := range set.FieldNames() {
		if _, ok := doc.Field(name); !ok {
			return &unknownFieldError{form: doc.ID(), field: name}
		}
	}
	return nil
}

type unknownFieldError struct {
	form  string
	field string
}

func (e *unknownFieldError) Error() string {
	return "engine: form " + e.form + " declares no field " + e.field
}
