package present

import (
	"fmt"
	"html"
	"strings"

	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
)

// defaultSummaryTemplate renders the error summary when a template engine is
// configured. It receives container, hidden, and items.
const defaultSummaryTemplate = `<div id="{{ container }}" class="validation-summary" role="alert"{% if hidden %} hidden{% endif %}>{% if not hidden %}<ul>{% for item in items %}<li data-field="{{ item.field }}">{{ item.label }}: {{ item.message }}</li>{% endfor %}</ul>{% endif %}</div>`

// summaryMarkup builds the container markup for a full-form pass. An empty
// error map produces a hidden container so stale summaries never linger.
func (p *HTMLPresenter) summaryMarkup(doc *model.Document, errs map[string]string, opts engine.Options) string {
	items := summaryItems(doc, errs)
	if len(items) == 0 {
		return emptySummaryMarkup(opts.CustomErrorContainer)
	}

	if p.templates != nil {
		ctxItems := make([]map[string]any, 0, len(items))
		for _, item := range items {
			ctxItems = append(ctxItems, map[string]any{
				"field":   item.Field,
				"label":   item.Label,
				"message": item.Message,
			})
		}
		rendered, err := p.templates.RenderString(defaultSummaryTemplate, map[string]any{
			"container": opts.CustomErrorContainer,
			"hidden":    false,
			"items":     ctxItems,
		})
		if err == nil {
			return rendered
		}
		// Fall through to the built-in markup on template failure.
	}

	var b strings.Builder
	b.Grow(256 + len(items)*96)
	b.WriteString(`<div id="`)
	b.WriteString(html.EscapeString(opts.CustomErrorContainer))
	b.WriteString(`" class="validation-summary" role="alert"><ul>`)
	for _, item := range items {
		b.WriteString(`<li data-field="`)
		b.WriteString(html.EscapeString(item.Field))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(item.Label))
		b.WriteString(`: `)
		b.WriteString(html.EscapeString(item.Message))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

// RenderField produces the control markup for one field, including its
// current validation state and message element.
func (p *HTMLPresenter) RenderField(field *model.Field, opts engine.Options) string {
	if field == nil {
		return ""
	}

	view := field.View()
	messageID := field.Name + "-message"

	var b strings.Builder
	b.Grow(512)
	b.WriteString(`<div class="form-field">`)

	if label := field.DisplayLabel(); label != "" {
		b.WriteString(`<label for="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(label))
		b.WriteString(`</label>`)
	}

	writeControl(&b, field, view, messageID)

	if view.Message != "" {
		b.WriteString(`<div id="`)
		b.WriteString(html.EscapeString(messageID))
		b.WriteString(`"`)
		if view.MessageClass != "" {
			b.WriteString(` class="`)
			b.WriteString(html.EscapeString(view.MessageClass))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(view.Message))
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// RenderDocument produces the full form markup: theme style block and
// stylesheet when configured, every field in declaration order, and the
// summary container when one is set.
func (p *HTMLPresenter) RenderDocument(doc *model.Document, opts engine.Options) string {
	if doc == nil {
		return ""
	}

	var b strings.Builder
	b.Grow(2048)

	if style := p.ThemeStyle(); style != "" {
		b.WriteString("<style>\n")
		b.WriteString(style)
		b.WriteString("\n</style>")
	}
	if href := p.ThemeAssetURL("stylesheet"); href != "" {
		b.WriteString(`<link rel="stylesheet" href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`">`)
	}

	b.WriteString(`<form id="`)
	b.WriteString(html.EscapeString(doc.ID()))
	b.WriteString(`" novalidate>`)
	for _, field := range doc.Fields() {
		b.WriteString(p.RenderField(field, opts))
	}
	if opts.CustomErrorContainer != "" {
		if summary, ok := p.SummaryHTML(doc.ID()); ok {
			b.WriteString(summary)
		} else {
			b.WriteString(emptySummaryMarkup(opts.CustomErrorContainer))
		}
	}
	b.WriteString(`</form>`)
	return b.String()
}

func writeControl(b *strings.Builder, field *model.Field, view *model.FieldView, messageID string) {
	value := field.Value()
	attrs := func(extraClass string) {
		b.WriteString(` id="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`" name="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`"`)
		class := strings.TrimSpace(extraClass + " " + view.StateClass)
		if class != "" {
			b.WriteString(` class="`)
			b.WriteString(html.EscapeString(class))
			b.WriteString(`"`)
		}
		if field.Placeholder != "" {
			b.WriteString(` placeholder="`)
			b.WriteString(html.EscapeString(field.Placeholder))
			b.WriteString(`"`)
		}
		if field.AccessibleName != "" {
			b.WriteString(` aria-label="`)
			b.WriteString(html.EscapeString(field.AccessibleName))
			b.WriteString(`"`)
		}
		if view.Message != "" {
			b.WriteString(` aria-describedby="`)
			b.WriteString(html.EscapeString(messageID))
			b.WriteString(`"`)
		}
	}

	switch field.Kind {
	case model.KindCheckbox:
		b.WriteString(`<input type="checkbox"`)
		attrs("")
		if value.Checked {
			b.WriteString(` checked`)
		}
		b.WriteString(`>`)
	case model.KindRadioGroup:
		b.WriteString(`<input type="radio"`)
		attrs("")
		if value.Text != "" {
			b.WriteString(` value="`)
			b.WriteString(html.EscapeString(value.Text))
			b.WriteString(`" checked`)
		}
		b.WriteString(`>`)
	case model.KindMultiSelect:
		b.WriteString(`<select multiple`)
		attrs("")
		b.WriteString(`>`)
		for _, selected := range value.Selected {
			b.WriteString(`<option value="`)
			b.WriteString(html.EscapeString(selected))
			b.WriteString(`" selected>`)
			b.WriteString(html.EscapeString(selected))
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select>`)
	case model.KindFileList:
		b.WriteString(`<input type="file" multiple`)
		attrs("")
		b.WriteString(`>`)
	default:
		b.WriteString(`<input type="text"`)
		attrs("")
		if value.Text != "" {
			b.WriteString(` value="`)
			b.WriteString(html.EscapeString(value.Text))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
	}
}

func emptySummaryMarkup(container string) string {
	return fmt.Sprintf(`<div id="%s" class="validation-summary" role="alert" hidden></div>`, html.EscapeString(container))
}
