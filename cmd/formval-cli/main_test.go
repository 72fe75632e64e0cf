package main

import (
	"testing"

	formval "github.com/terrafusion/go-formval"
)

func promptSession(t *testing.T) *formval.Session {
	t.Helper()

	doc, err := formval.NewDocument("appeal",
		formval.Field{Name: "parcel", Kind: formval.KindText},
		formval.Field{Name: "terms", Kind: formval.KindCheckbox, Label: "Terms"},
	)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	page, err := formval.NewPage(doc)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	system := formval.New(formval.WithPage(page))
	session := system.Register("appeal", nil, formval.RuleSet{
		"parcel": {formval.Named("required", "")},
		"terms":  {formval.Named("required", "")},
	})
	if session == nil {
		t.Fatal("Register returned nil")
	}
	return session
}

func TestCheckboxValidatorReprompts(t *testing.T) {
	session := promptSession(t)
	validate := checkboxValidator(session, "terms")

	if err := validate(false); err == nil {
		t.Fatal("declined required checkbox passed validation")
	} else if err.Error() != "This field is required." {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if err := validate(true); err != nil {
		t.Fatalf("ticked checkbox rejected: %v", err)
	}
}

func TestTextValidatorReprompts(t *testing.T) {
	session := promptSession(t)
	validate := textValidator(session, "parcel")

	if err := validate(""); err == nil {
		t.Fatal("empty required field passed validation")
	}
	if err := validate("12-345-6789"); err != nil {
		t.Fatalf("filled field rejected: %v", err)
	}
}
