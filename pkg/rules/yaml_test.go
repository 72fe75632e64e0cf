package rules_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/terrafusion/go-formval/pkg/rules"
)

func TestParseYAMLPreservesDeclarationOrder(t *testing.T) {
	raw := []byte(`
email:
  required: true
  email: true
  maxLength: 120
password:
  required: true
  minLength: 8
`)

	set, err := rules.ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	want := rules.RuleSet{
		"email": {
			rules.Named("required", ""),
			rules.Named("email", ""),
			rules.Named("maxLength", "120"),
		},
		"password": {
			rules.Named("required", ""),
			rules.Named("minLength", "8"),
		},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("rule set mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLMappingForm(t *testing.T) {
	raw := []byte(`
bio:
  maxLength:
    param: 200
    message: Keep it short.
`)

	set, err := rules.ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	want := rules.RuleSet{
		"bio": {rules.NamedWithMessage("maxLength", "200", "Keep it short.")},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("rule set mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLFalseDisablesRule(t *testing.T) {
	raw := []byte(`
email:
  required: false
  email: true
`)

	set, err := rules.ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	want := rules.RuleSet{
		"email": {rules.Named("email", "")},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("rule set mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLRejectsMalformedShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"scalar root", `just a string`},
		{"sequence rules", "email:\n  - required\n"},
		{"unknown rule key", "email:\n  pattern:\n    regex: abc\n"},
		{"duplicate field", "email:\n  required: true\nemail:\n  email: true\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := rules.ParseYAML([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
		})
	}
}
