package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/terrafusion/go-formval/pkg/model"
)

// Built-in validator names. Rule sets reference validators by these keys.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RulePattern   = "pattern"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleNumeric   = "numeric"
	RuleInteger   = "integer"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleEqualTo   = "equalTo"
	RuleDate      = "date"
)

// Default builds the built-in catalog. Every validator except required treats
// an empty value as valid: emptiness is required's job, shape checks apply
// only once a value is present.
func Default() *Catalog {
	c := New()
	c.MustRegister(requiredDefinition())
	c.MustRegister(minLengthDefinition())
	c.MustRegister(maxLengthDefinition())
	c.MustRegister(patternDefinition())
	c.MustRegister(equalToDefinition())
	c.MustRegister(emailDefinition())
	c.MustRegister(dateDefinition())
	c.MustRegister(numericDefinition())
	c.MustRegister(integerDefinition())
	c.MustRegister(minDefinition())
	c.MustRegister(maxDefinition())
	return c
}

func requiredDefinition() Definition {
	return Definition{
		Name: RuleRequired,
		Validate: func(_ RuleContext, value model.Value, _ string) bool {
			return !value.IsEmpty()
		},
		Message: "This field is required.",
	}
}

func minLengthDefinition() Definition {
	return Definition{
		Name: RuleMinLength,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			limit, ok := paramInt(param)
			if !ok {
				return true
			}
			return value.Length() >= limit
		},
		MessageFunc: func(param string) string {
			return fmt.Sprintf("Please enter at least %s characters.", strings.TrimSpace(param))
		},
	}
}

func maxLengthDefinition() Definition {
	return Definition{
		Name: RuleMaxLength,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			limit, ok := paramInt(param)
			if !ok {
				return true
			}
			return value.Length() <= limit
		},
		MessageFunc: func(param string) string {
			return fmt.Sprintf("Please enter no more than %s characters.", strings.TrimSpace(param))
		},
	}
}

func patternDefinition() Definition {
	return Definition{
		Name: RulePattern,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			re, err := compilePattern(param)
			if err != nil {
				// An unparseable pattern is a configuration problem, not a
				// user-input failure; pass conservatively.
				return true
			}
			return re.MatchString(value.Scalar())
		},
		Message: "Please match the requested format.",
	}
}

// equalToDefinition resolves its target through the RuleContext, which is
// scoped to the evaluating form. A target in another form never matches.
func equalToDefinition() Definition {
	return Definition{
		Name: RuleEqualTo,
		Validate: func(ctx RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			if ctx == nil {
				return false
			}
			target := strings.TrimPrefix(strings.TrimSpace(param), "#")
			if target == "" {
				return false
			}
			peer, ok := ctx.Peer(target)
			if !ok {
				return false
			}
			return value.Scalar() == peer.Scalar()
		},
		Message: "Values do not match.",
	}
}

var patternCache struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

func compilePattern(raw string) (*regexp.Regexp, error) {
	patternCache.mu.Lock()
	defer patternCache.mu.Unlock()

	if patternCache.compiled == nil {
		patternCache.compiled = make(map[string]*regexp.Regexp)
	}
	if re, ok := patternCache.compiled[raw]; ok {
		return re, nil
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, err
	}
	patternCache.compiled[raw] = re
	return re, nil
}
