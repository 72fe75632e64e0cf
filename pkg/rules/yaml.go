package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a rule set from YAML. Decoding walks the raw node tree
// rather than unmarshalling into a map so rule declaration order survives;
// fail-fast evaluation depends on it.
//
// Shape:
//
//	email:
//	  required: true
//	  email: true
//	password:
//	  minLength: 8
//	confirm:
//	  equalTo: "#password"
//	bio:
//	  maxLength:
//	    param: 200
//	    message: Keep it short.
//
// A scalar rule value becomes the rule parameter. The literal false disables
// the rule; true enables a parameterless rule. The mapping form accepts
// param and message keys.
func ParseYAML(raw []byte) (RuleSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rules: parse yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return RuleSet{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return RuleSet{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules: expected a mapping of field names, got yaml kind %d", root.Kind)
	}

	out := make(RuleSet, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		fieldNode := root.Content[i]
		rulesNode := root.Content[i+1]

		field := strings.TrimSpace(fieldNode.Value)
		if field == "" {
			return nil, fmt.Errorf("rules: line %d: empty field name", fieldNode.Line)
		}
		if _, exists := out[field]; exists {
			return nil, fmt.Errorf("rules: line %d: duplicate field %q", fieldNode.Line, field)
		}

		list, err := parseFieldRules(field, rulesNode)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			out[field] = list
		}
	}
	return out, nil
}

func parseFieldRules(field string, node *yaml.Node) (FieldRules, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules: field %q: expected a mapping of rule names (line %d)", field, node.Line)
	}

	var list FieldRules
	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode := node.Content[i]
		valueNode := node.Content[i+1]

		name := strings.TrimSpace(nameNode.Value)
		if name == "" {
			return nil, fmt.Errorf("rules: field %q: empty rule name (line %d)", field, nameNode.Line)
		}

		rule, enabled, err := parseRuleValue(field, name, valueNode)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}
		list = append(list, rule)
	}
	return list, nil
}

func parseRuleValue(field, name string, node *yaml.Node) (Rule, bool, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" && strings.EqualFold(node.Value, "false") {
			return Rule{}, false, nil
		}
		param := node.Value
		if node.Tag == "!!bool" {
			param = ""
		}
		return Named(name, param), true, nil
	case yaml.MappingNode:
		rule := Named(name, "")
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := strings.TrimSpace(node.Content[i].Value)
			value := node.Content[i+1]
			switch key {
			case "param":
				rule.Param = value.Value
			case "message":
				rule.Message = value.Value
			default:
				return Rule{}, false, fmt.Errorf("rules: field %q rule %q: unknown key %q (line %d)", field, name, key, node.Content[i].Line)
			}
		}
		return rule, true, nil
	default:
		return Rule{}, false, fmt.Errorf("rules: field %q rule %q: unsupported value (line %d)", field, name, node.Line)
	}
}
