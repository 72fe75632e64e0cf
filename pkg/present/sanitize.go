package present

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage strips any markup from a validation message before it
// reaches field views or summary output. Messages are plain text by
// contract; custom validators and rule overrides supply free-form strings,
// so the strict policy is applied to all of them.
func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(messageSanitizer().Sanitize(trimmed))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
