// Package httpform binds incoming HTTP form submissions onto form documents,
// covering urlencoded and multipart payloads. It is the server-side entry
// into the validation engine: bind the request, run the submit cycle, decide.
package httpform

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/terrafusion/go-formval/pkg/engine"
	"github.com/terrafusion/go-formval/pkg/model"
)

// DefaultMaxMemory caps in-memory multipart parsing (10MB); larger parts
// spill to disk per net/http semantics.
const DefaultMaxMemory = 10 << 20

var (
	ErrMissingContentType   = errors.New("httpform: missing content type")
	ErrUnsupportedMediaType = errors.New("httpform: unsupported media type")
	ErrInvalidForm          = errors.New("httpform: invalid form payload")
)

// Bind populates the document's field values from the request body. Only
// fields present in the payload are written; declared fields the client
// omitted keep their current value. Unknown payload keys are ignored.
func Bind(r *http.Request, doc *model.Document) error {
	if r == nil || doc == nil {
		return fmt.Errorf("%w: request and document are required", ErrInvalidForm)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return ErrMissingContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: parse content type: %v", ErrInvalidForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		bindValues(doc, r.PostForm, nil)
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		bindValues(doc, r.MultipartForm.Value, r.MultipartForm.File)
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
}

// BindAndValidate binds the request onto the session's document and runs the
// submit cycle. Binding failures surface before any validation runs.
func BindAndValidate(r *http.Request, session *engine.Session) (engine.SubmitResult, error) {
	if session == nil {
		return engine.SubmitResult{}, fmt.Errorf("%w: session is required", ErrInvalidForm)
	}
	if err := Bind(r, session.Document()); err != nil {
		return engine.SubmitResult{}, err
	}
	return session.HandleSubmit(), nil
}

func bindValues(doc *model.Document, values map[string][]string, files map[string][]*multipart.FileHeader) {
	for _, field := range doc.Fields() {
		if field.Kind == model.KindFileList {
			if headers, ok := files[field.Name]; ok {
				field.SetValue(model.FileListValue(fileRefs(headers)...))
			}
			continue
		}

		sent, ok := values[field.Name]
		if !ok {
			// Browsers omit unchecked checkboxes entirely; an explicit bind
			// of the form still means "unchecked" for them.
			if field.Kind == model.KindCheckbox {
				field.SetValue(model.CheckboxValue(false))
			}
			continue
		}

		switch field.Kind {
		case model.KindCheckbox:
			// Presence means checked regardless of the control's value
			// attribute; browsers only send the key for ticked boxes.
			field.SetValue(model.CheckboxValue(true))
		case model.KindMultiSelect:
			field.SetValue(model.MultiSelectValue(sent...))
		case model.KindRadioGroup:
			field.SetValue(model.RadioValue(first(sent)))
		default:
			field.SetValue(model.TextValue(first(sent)))
		}
	}
}

func fileRefs(headers []*multipart.FileHeader) []model.FileRef {
	refs := make([]model.FileRef, 0, len(headers))
	for _, header := range headers {
		if header == nil {
			continue
		}
		refs = append(refs, model.FileRef{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}
	return refs
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
