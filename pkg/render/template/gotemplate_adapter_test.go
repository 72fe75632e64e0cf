package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	rendertemplate "github.com/terrafusion/go-formval/pkg/render/template"
	"github.com/terrafusion/go-formval/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, files fstest.MapFS, options ...gotemplate.Option) rendertemplate.TemplateRenderer {
	t.Helper()
	opts := append([]gotemplate.Option{gotemplate.WithFS(files)}, options...)
	engine, err := gotemplate.New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func TestRenderTemplateAppendsExtension(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"summary.tpl": {Data: []byte("{{ count }} problem(s)")},
	})

	out, err := engine.RenderTemplate("summary", map[string]any{"count": 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "2 problem(s)" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderResolvesInlineContent(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{})

	out, err := engine.Render("Hello {{ name }}", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Ada" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderStringWritesToWriters(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{})

	var sink strings.Builder
	out, err := engine.RenderString("{{ label }}: {{ message }}", map[string]any{
		"label":   "Email",
		"message": "This field is required.",
	}, &sink)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != sink.String() {
		t.Fatalf("writer got %q, return %q", sink.String(), out)
	}
}

func TestGlobalContextAvailableEverywhere(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{}, gotemplate.WithGlobalData(map[string]any{
		"portal": "TerraFlow",
	}))

	out, err := engine.RenderString("{{ portal }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "TerraFlow" {
		t.Fatalf("output = %q", out)
	}
}

func TestRegisterFilterRejectsDuplicates(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{})

	upper := func(in any, _ any) (any, error) {
		s, _ := in.(string)
		return strings.ToUpper(s), nil
	}
	if err := engine.RegisterFilter("formval_upper", upper); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("formval_upper", upper); err == nil {
		t.Fatal("duplicate filter registration must fail")
	}

	out, err := engine.RenderString(`{{ word|formval_upper }}`, map[string]any{"word": "deed"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "DEED" {
		t.Fatalf("output = %q", out)
	}
}
