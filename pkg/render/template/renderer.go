package template

import (
	"io"
)

// TemplateRenderer is the engine contract the presentation layer renders
// through. Render resolves names to files or inline content, RenderTemplate
// always loads from the configured source, and RenderString always parses
// inline content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
