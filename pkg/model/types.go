package model

import (
	"fmt"
	"strings"
)

// Kind is the simplified enum for form-friendly control kinds. Each kind has
// its own value-extraction strategy; callers pick the kind at form definition
// time instead of sniffing control type strings at validation time.
type Kind string

const (
	KindText        Kind = "text"
	KindCheckbox    Kind = "checkbox"
	KindRadioGroup  Kind = "radio-group"
	KindMultiSelect Kind = "multi-select"
	KindFileList    Kind = "file-list"
)

// FileRef describes one entry in a file-list control. The engine never reads
// file contents; it only needs enough metadata for presence checks.
type FileRef struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// FieldView carries the visual state the presentation layer maintains for a
// field: the state class applied to the control, the rendered message, and
// the class the message element carries. The presentation adapter is the only
// writer; everything else treats it as read-only.
type FieldView struct {
	StateClass   string `json:"stateClass,omitempty"`
	Message      string `json:"message,omitempty"`
	MessageClass string `json:"messageClass,omitempty"`
}

// Clear resets the view to its unvalidated state.
func (v *FieldView) Clear() {
	if v == nil {
		return
	}
	v.StateClass = ""
	v.Message = ""
	v.MessageClass = ""
}

// Field models an individual control inside a registered form.
type Field struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	// AccessibleName mirrors an aria-label style attribute and participates in
	// summary label resolution after Label and Placeholder.
	AccessibleName string `json:"accessibleName,omitempty"`
	// SuccessMessage, when set, is rendered by the presentation layer once the
	// field validates successfully.
	SuccessMessage string `json:"successMessage,omitempty"`

	value Value
	view  FieldView
}

// Value returns the field's current, kind-normalized value.
func (f *Field) Value() Value {
	return f.value
}

// SetValue replaces the field's current value. Values of a different kind are
// coerced onto the field's kind so a text write to a checkbox still behaves
// predictably.
func (f *Field) SetValue(v Value) {
	f.value = v.forKind(f.Kind)
}

// View exposes the field's visual state for rendering and assertions.
func (f *Field) View() *FieldView {
	return &f.view
}

// Document is the in-memory form a session validates against: an identifier
// plus named fields in declaration order. It is the Go-side stand-in for a
// form element; adapters (httpform, the CLI) populate its values.
type Document struct {
	id     string
	fields []*Field
	index  map[string]*Field
}

// NewDocument builds a Document from fields, preserving declaration order.
// Duplicate or unnamed fields are rejected since rule ordering and error maps
// key off the field name.
func NewDocument(id string, fields ...Field) (*Document, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("model: document id is required")
	}

	doc := &Document{
		id:    trimmed,
		index: make(map[string]*Field, len(fields)),
	}
	for i := range fields {
		field := fields[i]
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, fmt.Errorf("model: document %q: field %d has no name", trimmed, i)
		}
		if _, exists := doc.index[name]; exists {
			return nil, fmt.Errorf("model: document %q: duplicate field %q", trimmed, name)
		}
		field.Name = name
		if field.Kind == "" {
			field.Kind = KindText
		}
		field.value = field.value.forKind(field.Kind)
		ptr := &field
		doc.fields = append(doc.fields, ptr)
		doc.index[name] = ptr
	}
	return doc, nil
}

// MustNewDocument panics on construction failure. Useful in tests and
// init-time wiring.
func MustNewDocument(id string, fields ...Field) *Document {
	doc, err := NewDocument(id, fields...)
	if err != nil {
		panic(err)
	}
	return doc
}

// ID returns the document identifier used as the registry key.
func (d *Document) ID() string {
	return d.id
}

// Field looks up a field by name.
func (d *Document) Field(name string) (*Field, bool) {
	field, ok := d.index[name]
	return field, ok
}

// Fields returns the fields in declaration order.
func (d *Document) Fields() []*Field {
	return d.fields
}

// SetValue writes a value into the named field. Unknown names report false.
func (d *Document) SetValue(name string, v Value) bool {
	field, ok := d.index[name]
	if !ok {
		return false
	}
	field.SetValue(v)
	return true
}

// Page is a named collection of documents, the context form registration
// resolves identifiers against. A server-rendered page typically owns one
// Page holding every form it emits.
type Page struct {
	docs map[string]*Document
}

// NewPage builds a Page from documents. Duplicate ids are rejected.
func NewPage(docs ...*Document) (*Page, error) {
	page := &Page{docs: make(map[string]*Document, len(docs))}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := page.Add(doc); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// Add registers a document on the page.
func (p *Page) Add(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("model: document is required")
	}
	if p.docs == nil {
		p.docs = make(map[string]*Document)
	}
	if _, exists := p.docs[doc.ID()]; exists {
		return fmt.Errorf("model: document %q already on page", doc.ID())
	}
	p.docs[doc.ID()] = doc
	return nil
}

// Document looks up a document by id.
func (p *Page) Document(id string) (*Document, bool) {
	if p == nil {
		return nil, false
	}
	doc, ok := p.docs[id]
	return doc, ok
}

// Remove drops a document from the page. Used when a session is disposed.
func (p *Page) Remove(id string) {
	if p == nil {
		return
	}
	delete(p.docs, id)
}
