package model

import "strings"

// Value is the tagged union of current control values. Exactly one branch is
// meaningful per Kind: Text for text and radio-group controls, Checked for
// checkboxes, Selected for multi-selects, and Files for file lists.
type Value struct {
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
	Selected []string  `json:"selected,omitempty"`
	Files    []FileRef `json:"files,omitempty"`
}

// TextValue builds a text (or radio-group selection) value.
func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

// CheckboxValue builds a checkbox value.
func CheckboxValue(checked bool) Value {
	return Value{Kind: KindCheckbox, Checked: checked}
}

// RadioValue builds a radio-group value carrying the selected option, or the
// empty string when nothing is selected.
func RadioValue(selected string) Value {
	return Value{Kind: KindRadioGroup, Text: selected}
}

// MultiSelectValue builds a multi-select value preserving selection order.
func MultiSelectValue(selected ...string) Value {
	return Value{Kind: KindMultiSelect, Selected: selected}
}

// FileListValue builds a file-list value.
func FileListValue(files ...FileRef) Value {
	return Value{Kind: KindFileList, Files: files}
}

// forKind coerces the value onto a field's kind so adapters that only produce
// text values still populate checkbox and select controls sensibly.
func (v Value) forKind(kind Kind) Value {
	if v.Kind == kind {
		return v
	}
	switch kind {
	case KindCheckbox:
		checked := v.Checked
		if v.Kind == KindText || v.Kind == KindRadioGroup {
			checked = isTruthy(v.Text)
		}
		return Value{Kind: KindCheckbox, Checked: checked}
	case KindRadioGroup:
		return Value{Kind: KindRadioGroup, Text: v.Text}
	case KindMultiSelect:
		selected := v.Selected
		if len(selected) == 0 && strings.TrimSpace(v.Text) != "" {
			selected = []string{v.Text}
		}
		return Value{Kind: KindMultiSelect, Selected: selected}
	case KindFileList:
		return Value{Kind: KindFileList, Files: v.Files}
	default:
		text := v.Text
		if text == "" && len(v.Selected) > 0 {
			text = v.Selected[0]
		}
		return Value{Kind: KindText, Text: text}
	}
}

// IsEmpty reports whether the value counts as empty for validation purposes:
// blank-after-trim text, an unchecked checkbox, no radio selection, an empty
// selection list, or an empty file list.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindCheckbox:
		return !v.Checked
	case KindMultiSelect:
		return len(v.Selected) == 0
	case KindFileList:
		return len(v.Files) == 0
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// Scalar returns the single text representation of the value: the text branch
// for text and radio-group values, the first selection for multi-selects, and
// the first file name for file lists. Checkbox values report "true"/"false".
func (v Value) Scalar() string {
	switch v.Kind {
	case KindCheckbox:
		if v.Checked {
			return "true"
		}
		return "false"
	case KindMultiSelect:
		if len(v.Selected) == 0 {
			return ""
		}
		return v.Selected[0]
	case KindFileList:
		if len(v.Files) == 0 {
			return ""
		}
		return v.Files[0].Name
	default:
		return v.Text
	}
}

// Length returns the measure length validators operate on: rune count for
// scalar values, list length for multi-selects and file lists.
func (v Value) Length() int {
	switch v.Kind {
	case KindMultiSelect:
		return len(v.Selected)
	case KindFileList:
		return len(v.Files)
	default:
		return len([]rune(v.Text))
	}
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes", "checked":
		return true
	default:
		return false
	}
}
