package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terrafusion/go-formval/pkg/model"
)

func numericDefinition() Definition {
	return Definition{
		Name: RuleNumeric,
		Validate: func(_ RuleContext, value model.Value, _ string) bool {
			if value.IsEmpty() {
				return true
			}
			_, err := strconv.ParseFloat(strings.TrimSpace(value.Scalar()), 64)
			return err == nil
		},
		Message: "Please enter a number.",
	}
}

func integerDefinition() Definition {
	return Definition{
		Name: RuleInteger,
		Validate: func(_ RuleContext, value model.Value, _ string) bool {
			if value.IsEmpty() {
				return true
			}
			_, err := strconv.ParseInt(strings.TrimSpace(value.Scalar()), 10, 64)
			return err == nil
		},
		Message: "Please enter a whole number.",
	}
}

func minDefinition() Definition {
	return Definition{
		Name: RuleMin,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			bound, ok := paramFloat(param)
			if !ok {
				return true
			}
			current, err := strconv.ParseFloat(strings.TrimSpace(value.Scalar()), 64)
			if err != nil {
				// Shape is numeric's concern; min only compares numbers.
				return true
			}
			return current >= bound
		},
		MessageFunc: func(param string) string {
			return fmt.Sprintf("Please enter a value of at least %s.", strings.TrimSpace(param))
		},
	}
}

func maxDefinition() Definition {
	return Definition{
		Name: RuleMax,
		Validate: func(_ RuleContext, value model.Value, param string) bool {
			if value.IsEmpty() {
				return true
			}
			bound, ok := paramFloat(param)
			if !ok {
				return true
			}
			current, err := strconv.ParseFloat(strings.TrimSpace(value.Scalar()), 64)
			if err != nil {
				return true
			}
			return current <= bound
		},
		MessageFunc: func(param string) string {
			return fmt.Sprintf("Please enter a value of at most %s.", strings.TrimSpace(param))
		},
	}
}

func paramInt(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return value, true
}

func paramFloat(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
