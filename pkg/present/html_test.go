package present_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/notify"
	"github.com/terrafusion/go-formval/pkg/present"
)

func newPresenter(t *testing.T, options ...present.Option) *present.HTMLPresenter {
	t.Helper()
	presenter, err := present.New(options...)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	return presenter
}

func appealDoc(t *testing.T) *model.Document {
	t.Helper()
	doc, err := model.NewDocument("appeal",
		model.Field{Name: "parcel", Label: "Parcel number"},
		model.Field{Name: "reason", Placeholder: "Reason for appeal"},
	)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestApplyFieldStateIsIdempotent(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	field, _ := doc.Field("parcel")
	opts := engine.DefaultOptions()
	verdict := engine.Verdict{Message: "This field is required."}

	presenter.ApplyFieldState(doc, field, verdict, opts)
	presenter.ApplyFieldState(doc, field, verdict, opts)
	presenter.ApplyFieldState(doc, field, verdict, opts)

	view := field.View()
	if view.StateClass != engine.DefaultErrorClass {
		t.Fatalf("state class = %q", view.StateClass)
	}
	if view.Message != "This field is required." {
		t.Fatalf("message = %q", view.Message)
	}
	if view.MessageClass != engine.DefaultErrorMessageClass {
		t.Fatalf("message class = %q", view.MessageClass)
	}

	// Exactly one message element in the rendered markup.
	markup := presenter.RenderField(field, opts)
	if got := strings.Count(markup, "This field is required."); got != 1 {
		t.Fatalf("message rendered %d times:\n%s", got, markup)
	}
}

func TestApplyFieldStateValidTransitions(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	field, _ := doc.Field("parcel")
	opts := engine.DefaultOptions()

	presenter.ApplyFieldState(doc, field, engine.Verdict{Message: "Required."}, opts)
	presenter.ApplyFieldState(doc, field, engine.Verdict{Valid: true}, opts)

	view := field.View()
	if view.StateClass != engine.DefaultSuccessClass {
		t.Fatalf("state class = %q", view.StateClass)
	}
	if view.Message != "" {
		t.Fatalf("error message survived the valid verdict: %q", view.Message)
	}
}

func TestApplyFieldStateSuccessMessage(t *testing.T) {
	presenter := newPresenter(t)
	doc, _ := model.NewDocument("appeal",
		model.Field{Name: "parcel", SuccessMessage: "Parcel looks good."},
	)
	field, _ := doc.Field("parcel")
	opts := engine.DefaultOptions()

	presenter.ApplyFieldState(doc, field, engine.Verdict{Valid: true}, opts)

	view := field.View()
	if view.Message != "Parcel looks good." {
		t.Fatalf("message = %q", view.Message)
	}
	if view.MessageClass != engine.DefaultSuccessMessageClass {
		t.Fatalf("message class = %q", view.MessageClass)
	}
}

func TestMessagesAreSanitized(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	field, _ := doc.Field("parcel")
	opts := engine.DefaultOptions()

	presenter.ApplyFieldState(doc, field, engine.Verdict{
		Message: `<script>alert(1)</script>Enter a parcel number.`,
	}, opts)

	if got := field.View().Message; strings.Contains(got, "<script>") {
		t.Fatalf("markup survived sanitization: %q", got)
	}
	if !strings.Contains(field.View().Message, "Enter a parcel number.") {
		t.Fatalf("text content lost: %q", field.View().Message)
	}
}

func TestClearFieldState(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	field, _ := doc.Field("parcel")
	opts := engine.DefaultOptions()

	presenter.ApplyFieldState(doc, field, engine.Verdict{Message: "Required."}, opts)
	presenter.ClearFieldState(doc, field, opts)

	view := field.View()
	if view.StateClass != "" || view.Message != "" || view.MessageClass != "" {
		t.Fatalf("view not cleared: %+v", view)
	}
}

func TestRenderSummaryIntoContainer(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	opts := engine.DefaultOptions()
	opts.CustomErrorContainer = "appeal-errors"

	presenter.RenderSummary(doc, map[string]string{
		"reason": "This field is required.",
		"parcel": "Please match the requested format.",
	}, opts)

	markup, ok := presenter.SummaryHTML("appeal")
	if !ok {
		t.Fatal("no summary rendered")
	}
	if !strings.Contains(markup, `id="appeal-errors"`) {
		t.Fatalf("container id missing:\n%s", markup)
	}
	// Declaration order, with resolved labels: parcel has a label, reason
	// falls back to its placeholder.
	parcelAt := strings.Index(markup, "Parcel number: Please match the requested format.")
	reasonAt := strings.Index(markup, "Reason for appeal: This field is required.")
	if parcelAt == -1 || reasonAt == -1 {
		t.Fatalf("summary entries missing:\n%s", markup)
	}
	if parcelAt > reasonAt {
		t.Fatalf("summary not in declaration order:\n%s", markup)
	}
	if strings.Contains(markup, "hidden") {
		t.Fatalf("populated summary must be visible:\n%s", markup)
	}
}

func TestRenderSummaryHiddenWhenClean(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	opts := engine.DefaultOptions()
	opts.CustomErrorContainer = "appeal-errors"

	presenter.RenderSummary(doc, map[string]string{"parcel": "Required."}, opts)
	presenter.RenderSummary(doc, map[string]string{}, opts)

	markup, ok := presenter.SummaryHTML("appeal")
	if !ok {
		t.Fatal("no summary rendered")
	}
	if !strings.Contains(markup, "hidden") {
		t.Fatalf("empty summary must be hidden:\n%s", markup)
	}
	if strings.Contains(markup, "<li") {
		t.Fatalf("stale entries survived:\n%s", markup)
	}
}

func TestRenderSummaryForwardsToNotifierWithoutContainer(t *testing.T) {
	var gotForm string
	var gotErrs map[string]string
	presenter := newPresenter(t, present.WithNotifier(notify.Func(func(formID string, errs map[string]string) {
		gotForm = formID
		gotErrs = errs
	})))
	doc := appealDoc(t)
	opts := engine.DefaultOptions()

	presenter.RenderSummary(doc, map[string]string{"parcel": "Required."}, opts)

	if gotForm != "appeal" || gotErrs["parcel"] != "Required." {
		t.Fatalf("notifier not invoked: form=%q errs=%v", gotForm, gotErrs)
	}
	if _, ok := presenter.SummaryHTML("appeal"); ok {
		t.Fatal("summary rendered despite notifier path")
	}
}

func TestNotifierSkippedWhenContainerConfigured(t *testing.T) {
	called := false
	presenter := newPresenter(t, present.WithNotifier(notify.Func(func(string, map[string]string) {
		called = true
	})))
	doc := appealDoc(t)
	opts := engine.DefaultOptions()
	opts.CustomErrorContainer = "appeal-errors"

	presenter.RenderSummary(doc, map[string]string{"parcel": "Required."}, opts)

	if called {
		t.Fatal("notifier and container paths must be mutually exclusive")
	}
}

func TestRenderFieldMarkup(t *testing.T) {
	presenter := newPresenter(t)
	doc := appealDoc(t)
	field, _ := doc.Field("parcel")
	field.SetValue(model.TextValue("12-345-678"))
	opts := engine.DefaultOptions()

	presenter.ApplyFieldState(doc, field, engine.Verdict{Message: "Please match the requested format."}, opts)
	markup := presenter.RenderField(field, opts)

	for _, want := range []string{
		`<label for="parcel">Parcel number</label>`,
		`name="parcel"`,
		`class="is-invalid"`,
		`value="12-345-678"`,
		`aria-describedby="parcel-message"`,
		`class="invalid-feedback"`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderDocumentIncludesThemeAndSummary(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "county",
		Variant: "default",
		CSSVars: map[string]string{"--brand": "#123456"},
		AssetURL: func(key string) string {
			if key == "stylesheet" {
				return "/assets/themes/county/theme.css"
			}
			return ""
		},
	}
	presenter := newPresenter(t, present.WithThemeConfig(cfg))
	doc := appealDoc(t)
	opts := engine.DefaultOptions()
	opts.CustomErrorContainer = "appeal-errors"

	markup := presenter.RenderDocument(doc, opts)

	for _, want := range []string{
		"--brand: #123456;",
		`href="/assets/themes/county/theme.css"`,
		`<form id="appeal" novalidate>`,
		`id="appeal-errors"`,
		"hidden",
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}
