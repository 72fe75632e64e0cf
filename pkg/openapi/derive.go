// Package openapi derives form documents and rule sets from OpenAPI
// operation schemas, so a portal can reuse its API contract as the single
// source of validation truth. Parsing is backed by kin-openapi; consumers
// only see model and rules types.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/terrafusion/go-formval/pkg/catalog"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/rules"
)

// request media types probed for a form schema, in preference order.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Options configures derivation.
type Options struct {
	// ValidateDocument runs kin-openapi validation (with example checks
	// disabled) before deriving, resolving internal references.
	ValidateDocument bool
	// DateLayout overrides the layout parameter attached to date rules.
	// Empty keeps the rule's built-in layouts.
	DateLayout string
}

// Deriver turns OpenAPI operations into documents and rule sets.
type Deriver struct {
	options Options
}

// New constructs a Deriver.
func New(options Options) *Deriver {
	return &Deriver{options: options}
}

// Derivation is the result of deriving one operation: the form document and
// the rule set to register it with.
type Derivation struct {
	OperationID string
	Method      string
	Path        string
	Document    *model.Document
	Rules       rules.RuleSet
}

// Derive loads the raw OpenAPI payload and derives the form for the given
// operation id. The document's fields come from the operation's request body
// schema properties, ordered by name for stable output.
func (d *Deriver) Derive(ctx context.Context, raw []byte, operationID string) (Derivation, error) {
	if err := ctx.Err(); err != nil {
		return Derivation{}, err
	}
	if len(raw) == 0 {
		return Derivation{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Derivation{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if d.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return Derivation{}, fmt.Errorf("openapi: validate document: %w", err)
		}
	}

	method, path, operation, err := findOperation(spec, operationID)
	if err != nil {
		return Derivation{}, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return Derivation{}, fmt.Errorf("openapi: operation %q has no request schema", operationID)
	}

	doc, set, err := d.deriveSchema(operationID, schema)
	if err != nil {
		return Derivation{}, err
	}
	return Derivation{
		OperationID: operationID,
		Method:      method,
		Path:        path,
		Document:    doc,
		Rules:       set,
	}, nil
}

// OperationIDs lists the operation ids present in the raw document, sorted.
func (d *Deriver) OperationIDs(ctx context.Context, raw []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	var ids []string
	forEachOperation(spec, func(_, _ string, op *openapi3.Operation) {
		if op.OperationID != "" {
			ids = append(ids, op.OperationID)
		}
	})
	sort.Strings(ids)
	return ids, nil
}

func (d *Deriver) deriveSchema(operationID string, schema *openapi3.Schema) (*model.Document, rules.RuleSet, error) {
	if len(schema.Properties) == 0 {
		return nil, nil, fmt.Errorf("openapi: operation %q request schema has no properties", operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	set := make(rules.RuleSet, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			fields = append(fields, model.Field{Name: name})
			continue
		}
		prop := ref.Value

		fields = append(fields, model.Field{
			Name:  name,
			Kind:  fieldKind(prop),
			Label: prop.Title,
		})
		if fieldRules := d.propertyRules(prop, required[name]); len(fieldRules) > 0 {
			set[name] = fieldRules
		}
	}

	doc, err := model.NewDocument(operationID, fields...)
	if err != nil {
		return nil, nil, fmt.Errorf("openapi: build document for %q: %w", operationID, err)
	}
	return doc, set, nil
}

// propertyRules maps one property schema onto rules, ordered so the cheapest
// and most fundamental checks run first.
func (d *Deriver) propertyRules(prop *openapi3.Schema, isRequired bool) rules.FieldRules {
	var out rules.FieldRules
	if isRequired {
		out = append(out, rules.Named(catalog.RuleRequired, ""))
	}

	switch schemaType(prop) {
	case "integer":
		out = append(out, rules.Named(catalog.RuleInteger, ""))
	case "number":
		out = append(out, rules.Named(catalog.RuleNumeric, ""))
	}

	if prop.Min != nil {
		out = append(out, rules.Named(catalog.RuleMin, formatFloat(*prop.Min)))
	}
	if prop.Max != nil {
		out = append(out, rules.Named(catalog.RuleMax, formatFloat(*prop.Max)))
	}
	if prop.MinLength != 0 {
		out = append(out, rules.Named(catalog.RuleMinLength, strconv.FormatUint(prop.MinLength, 10)))
	}
	if prop.MaxLength != nil {
		out = append(out, rules.Named(catalog.RuleMaxLength, strconv.FormatUint(*prop.MaxLength, 10)))
	}
	if prop.Pattern != "" {
		out = append(out, rules.Named(catalog.RulePattern, prop.Pattern))
	}

	switch prop.Format {
	case "email":
		out = append(out, rules.Named(catalog.RuleEmail, ""))
	case "date":
		out = append(out, rules.Named(catalog.RuleDate, d.dateParam("2006-01-02")))
	case "date-time":
		out = append(out, rules.Named(catalog.RuleDate, d.dateParam("2006-01-02T15:04:05Z07:00")))
	}
	return out
}

func (d *Deriver) dateParam(layout string) string {
	if d.options.DateLayout != "" {
		return d.options.DateLayout
	}
	return layout
}

// fieldKind picks the control kind for a property: booleans become
// checkboxes, binary payloads file lists, string arrays multi-selects, and
// everything else a text control.
func fieldKind(prop *openapi3.Schema) model.Kind {
	switch schemaType(prop) {
	case "boolean":
		return model.KindCheckbox
	case "array":
		if prop.Items != nil && prop.Items.Value != nil && prop.Items.Value.Format == "binary" {
			return model.KindFileList
		}
		return model.KindMultiSelect
	case "string":
		if prop.Format == "binary" {
			return model.KindFileList
		}
	}
	return model.KindText
}

func schemaType(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func findOperation(spec *openapi3.T, operationID string) (method, path string, operation *openapi3.Operation, err error) {
	forEachOperation(spec, func(m, p string, op *openapi3.Operation) {
		if op.OperationID == operationID && operation == nil {
			method, path, operation = m, p, op
		}
	})
	if operation == nil {
		return "", "", nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return method, path, operation, nil
}

func forEachOperation(spec *openapi3.T, visit func(method, path string, op *openapi3.Operation)) {
	if spec == nil || spec.Paths == nil {
		return
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range map[string]*openapi3.Operation{
			"GET":    item.Get,
			"PUT":    item.Put,
			"POST":   item.Post,
			"DELETE": item.Delete,
			"PATCH":  item.Patch,
		} {
			if op != nil {
				visit(method, path, op)
			}
		}
	}
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
