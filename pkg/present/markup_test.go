package present_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/present"
	"github.com/terrafusion/go-formval/pkg/render/template/gotemplate"
)

func TestSummaryRendersThroughTemplateEngine(t *testing.T) {
	templates, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new template engine: %v", err)
	}
	presenter := newPresenter(t, present.WithTemplates(templates))
	doc := appealDoc(t)
	opts := engine.DefaultOptions()
	opts.CustomErrorContainer = "appeal-errors"

	presenter.RenderSummary(doc, map[string]string{
		"parcel": "This field is required.",
	}, opts)

	markup, ok := presenter.SummaryHTML("appeal")
	if !ok {
		t.Fatal("no summary rendered")
	}
	for _, want := range []string{
		`id="appeal-errors"`,
		`data-field="parcel"`,
		"Parcel number: This field is required.",
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderFieldControlKinds(t *testing.T) {
	presenter := newPresenter(t)
	opts := engine.DefaultOptions()

	doc, err := model.NewDocument("exemption",
		model.Field{Name: "homestead", Kind: model.KindCheckbox, Label: "Homestead exemption"},
		model.Field{Name: "districts", Kind: model.KindMultiSelect, Label: "Districts"},
		model.Field{Name: "deeds", Kind: model.KindFileList, Label: "Deed copies"},
	)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	doc.SetValue("homestead", model.CheckboxValue(true))
	doc.SetValue("districts", model.MultiSelectValue("fire", "school"))

	homestead, _ := doc.Field("homestead")
	markup := presenter.RenderField(homestead, opts)
	if !strings.Contains(markup, `type="checkbox"`) || !strings.Contains(markup, " checked") {
		t.Fatalf("checkbox markup wrong:\n%s", markup)
	}

	districts, _ := doc.Field("districts")
	markup = presenter.RenderField(districts, opts)
	if !strings.Contains(markup, "<select multiple") || strings.Count(markup, "<option") != 2 {
		t.Fatalf("multi-select markup wrong:\n%s", markup)
	}

	deeds, _ := doc.Field("deeds")
	markup = presenter.RenderField(deeds, opts)
	if !strings.Contains(markup, `type="file"`) {
		t.Fatalf("file markup wrong:\n%s", markup)
	}
}
