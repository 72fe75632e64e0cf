// Package present is the presentation adapter: the single writer of visual
// validation state. It reflects engine verdicts into field views, renders
// the aggregate error summary, and forwards outcomes to an external notifier
// when no summary container is configured.
package present

import (
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/notify"
	rendertemplate "github.com/terrafusion/go-formval/pkg/render/template"
)

// Option customises presenter construction.
type Option func(*config)

type config struct {
	templates rendertemplate.TemplateRenderer
	themeCfg  *theme.RendererConfig
	selector  theme.ThemeSelector
	themeName string
	variant   string
	notifier  notify.Notifier
}

// WithTemplates injects a template engine used for summary markup. Without
// one the presenter falls back to built-in markup.
func WithTemplates(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithThemeConfig supplies an already-resolved theme configuration.
func WithThemeConfig(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.themeCfg = themeCfg
	}
}

// WithThemeSelection resolves theme and variant through a selector during
// construction. Resolution failures surface from New.
func WithThemeSelection(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.variant = variant
	}
}

// WithNotifier sets the sink that receives the error map after full-form
// passes on forms without a summary container.
func WithNotifier(notifier notify.Notifier) Option {
	return func(cfg *config) {
		cfg.notifier = notifier
	}
}

// HTMLPresenter implements engine.Presenter for HTML output. Field state is
// written onto the document's field views; summary markup is kept per form
// and retrieved with SummaryHTML.
type HTMLPresenter struct {
	mu        sync.Mutex
	templates rendertemplate.TemplateRenderer
	themeCfg  *theme.RendererConfig
	notifier  notify.Notifier
	summaries map[string]string
}

var _ engine.Presenter = (*HTMLPresenter)(nil)

// New constructs an HTMLPresenter applying any provided options.
func New(options ...Option) (*HTMLPresenter, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	themeCfg := cfg.themeCfg
	if themeCfg == nil && cfg.selector != nil {
		resolved, err := resolveThemeConfig(cfg.selector, cfg.themeName, cfg.variant)
		if err != nil {
			return nil, fmt.Errorf("present: configure theme: %w", err)
		}
		themeCfg = resolved
	}

	return &HTMLPresenter{
		templates: cfg.templates,
		themeCfg:  themeCfg,
		notifier:  cfg.notifier,
		summaries: make(map[string]string),
	}, nil
}

// ApplyFieldState reflects a verdict into the field's view. Assignment, not
// append: applying the same verdict any number of times leaves exactly one
// state class and one message.
func (p *HTMLPresenter) ApplyFieldState(_ *model.Document, field *model.Field, verdict engine.Verdict, opts engine.Options) {
	if field == nil {
		return
	}
	view := field.View()
	if verdict.Valid {
		view.StateClass = opts.SuccessClass
		if field.SuccessMessage != "" {
			view.Message = sanitizeMessage(field.SuccessMessage)
			view.MessageClass = opts.SuccessMessageClass
		} else {
			view.Message = ""
			view.MessageClass = ""
		}
		return
	}
	view.StateClass = opts.ErrorClass
	view.Message = sanitizeMessage(verdict.Message)
	view.MessageClass = opts.ErrorMessageClass
}

// ClearFieldState removes all visual state from the field.
func (p *HTMLPresenter) ClearFieldState(_ *model.Document, field *model.Field, _ engine.Options) {
	if field == nil {
		return
	}
	field.View().Clear()
}

// RenderSummary re-renders the aggregate error state after a full-form pass.
// With a configured container the summary markup is rebuilt (and hidden when
// the error map is empty); otherwise the error map goes to the notifier. The
// two paths are mutually exclusive per pass.
func (p *HTMLPresenter) RenderSummary(doc *model.Document, errs map[string]string, opts engine.Options) {
	if doc == nil {
		return
	}
	if opts.CustomErrorContainer == "" {
		if p.notifier != nil {
			p.notifier.Notify(doc.ID(), errs)
		}
		return
	}

	markup := p.summaryMarkup(doc, errs, opts)
	p.mu.Lock()
	p.summaries[doc.ID()] = markup
	p.mu.Unlock()
}

// SummaryHTML returns the last rendered summary markup for a form. The
// second return reports whether a summary has been rendered at all.
func (p *HTMLPresenter) SummaryHTML(formID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	markup, ok := p.summaries[formID]
	return markup, ok
}

// ThemeStyle returns the :root CSS custom property block for the configured
// theme, or "" when no theme is set.
func (p *HTMLPresenter) ThemeStyle() string {
	if p.themeCfg == nil {
		return ""
	}
	return cssVarsStyle(p.themeCfg.CSSVars)
}

// ThemeAssetURL resolves a theme asset key to its URL, or "" when no theme
// is configured or the key is unknown.
func (p *HTMLPresenter) ThemeAssetURL(key string) string {
	if p.themeCfg == nil || p.themeCfg.AssetURL == nil {
		return ""
	}
	return p.themeCfg.AssetURL(key)
}

// summaryItem is one entry of the rendered error summary.
type summaryItem struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// summaryItems orders the error map by field declaration order and resolves
// display labels, so summary output is stable across passes.
func summaryItems(doc *model.Document, errs map[string]string) []summaryItem {
	items := make([]summaryItem, 0, len(errs))
	for _, field := range doc.Fields() {
		message, ok := errs[field.Name]
		if !ok {
			continue
		}
		items = append(items, summaryItem{
			Field:   field.Name,
			Label:   field.DisplayLabel(),
			Message: sanitizeMessage(message),
		})
	}
	return items
}
