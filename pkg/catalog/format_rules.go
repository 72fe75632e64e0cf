package catalog

import (
	"net/mail"
	"strings"
	"time"

	"github.com/terrafusion/go-formval/pkg/model"
)

// dateLayouts are tried in order when a date rule declares no explicit
// layout parameter.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

func emailDefinition() Definition {
	return Definition{
		Name: RuleEmail,
		Validate: func(_ RuleContext, value model.Value, _ string) bool {
			if value.IsEmpty() {
				return true
			}
			raw := strings.TrimSpace(value.Scalar())
			addr, err := mail.ParseAddress(raw)
			if err != nil {
				return false
			}
			// mail.ParseAddress accepts display names and domains without a
			// dot; form input expects a bare, qualified address.
			if addr.Address != raw {
				return false
			}
			at := strings.LastIndex(raw, "@")
			return at > 0 && strings.Contains(raw[at+1:], ".")
		},
		Message: "Please enter a valid email address.",
	}
}

func dateDefinition() Definition {
	return Definition{
		Name: RuleDate,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			raw := strings.TrimSpace(value.Scalar())
			layouts := dateLayouts
			if layout := strings.TrimSpace(param); layout != "" && layout != "true" {
				layouts = []string{layout}
			}
			for _, layout := range layouts {
				if _, err := time.Parse(layout, raw); err == nil {
					return true
				}
			}
			return false
		},
		Message: "Please enter a valid date.",
	}
}
