package model_test

import (
	"strings"
	"testing"

	"github.com/terrafusion/go-formval/pkg/model"
)

func TestNewDocumentPreservesOrder(t *testing.T) {
	doc, err := model.NewDocument("signup",
		model.Field{Name: "email"},
		model.Field{Name: "password"},
		model.Field{Name: "confirm"},
	)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	var names []string
	for _, field := range doc.Fields() {
		names = append(names, field.Name)
	}
	if got := strings.Join(names, ","); got != "email,password,confirm" {
		t.Fatalf("unexpected field order: %s", got)
	}
}

func TestNewDocumentRejectsDuplicates(t *testing.T) {
	_, err := model.NewDocument("signup",
		model.Field{Name: "email"},
		model.Field{Name: "email"},
	)
	if err == nil {
		t.Fatal("expected duplicate field error")
	}
}

func TestPageLookup(t *testing.T) {
	page, err := model.NewPage(
		model.MustNewDocument("signup", model.Field{Name: "email"}),
		model.MustNewDocument("contact", model.Field{Name: "message"}),
	)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	if _, ok := page.Document("signup"); !ok {
		t.Fatal("signup form missing from page")
	}
	if _, ok := page.Document("missing"); ok {
		t.Fatal("unexpected document for unknown id")
	}

	page.Remove("signup")
	if _, ok := page.Document("signup"); ok {
		t.Fatal("document survived removal")
	}
}

func TestDisplayLabelPreference(t *testing.T) {
	cases := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"label wins", model.Field{Name: "owner_name", Label: "Owner", Placeholder: "Owner name"}, "Owner"},
		{"placeholder next", model.Field{Name: "owner_name", Placeholder: "Owner name"}, "Owner name"},
		{"accessible name next", model.Field{Name: "owner_name", AccessibleName: "Owner full name"}, "Owner full name"},
		{"humanized fallback", model.Field{Name: "parcelNumber"}, "Parcel Number"},
		{"multibyte name", model.Field{Name: "straßeZusatz2"}, "Straße Zusatz 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := model.MustNewDocument("form", tc.field)
			field, _ := doc.Field(tc.field.Name)
			if got := field.DisplayLabel(); got != tc.want {
				t.Fatalf("DisplayLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}
