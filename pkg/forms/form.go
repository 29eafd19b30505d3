// Package forms binds document schemas to submitted form data: field
// generation at construction, exhaustive validation into a per-field error
// collection, and write-back onto document instances.
package forms

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/fields"
	"github.com/goliatone/go-docforms/pkg/generator"
	"github.com/goliatone/go-docforms/pkg/schema"
	"github.com/goliatone/go-docforms/pkg/widgets"
)

// Options configures one form. Everything is explicit and fixed at
// construction; validation never reaches for ambient state.
type Options struct {
	// Include limits the form to the named schema fields, in schema order.
	Include []string
	// Exclude removes the named schema fields from the form.
	Exclude []string
	// Widgets overrides the rendering widget per field name.
	Widgets map[string]widgets.Widget
	// Generator overrides the default field generator for this form.
	Generator *generator.Generator
	// Blobs stores uploaded file content on save. Without it, file fields
	// save the submitted filename as-is.
	Blobs document.BlobStore
	// Instance pre-populates the form and receives the cleaned values on
	// save. Nil means a fresh instance is created at save time.
	Instance *document.Document
	// Prefix namespaces the form's input names as "prefix-name"; form sets
	// rely on it.
	Prefix string
}

// BoundField is one generated form field in declaration order.
type BoundField struct {
	Name  string
	Field fields.Field
}

// DocumentForm derives form fields from a document schema, validates bound
// data, and writes cleaned values back onto an instance.
type DocumentForm struct {
	schema  *schema.Schema
	opts    Options
	ordered []BoundField
	byName  map[string]fields.Field
	initial map[string]any

	bound     bool
	data      widgets.FormData
	validated bool
	cleaned   map[string]any
	errs      Errors
}

// New builds the form's fields from the schema. Misconfiguration (an
// Include name the schema does not declare, or one whose kind generates no
// form field) fails here, at definition time.
func New(s *schema.Schema, opts Options) (*DocumentForm, error) {
	if s == nil {
		return nil, fmt.Errorf("forms: schema is required")
	}
	gen := opts.Generator
	if gen == nil {
		gen = generator.Default()
	}

	form := &DocumentForm{
		schema: s,
		opts:   opts,
		byName: make(map[string]fields.Field),
		errs:   Errors{},
	}

	ignored := map[string]bool{}
	for _, descriptor := range s.Fields() {
		if len(opts.Include) > 0 && !contains(opts.Include, descriptor.Name) {
			continue
		}
		if contains(opts.Exclude, descriptor.Name) {
			continue
		}
		field, err := gen.Generate(descriptor)
		if err != nil {
			return nil, fmt.Errorf("forms: field %q: %w", descriptor.Name, err)
		}
		if field == nil {
			ignored[descriptor.Name] = true
			continue
		}
		if override := opts.Widgets[descriptor.Name]; override != nil {
			if setter, ok := field.(interface{ SetWidget(widgets.Widget) }); ok {
				setter.SetWidget(override)
			}
		}
		form.ordered = append(form.ordered, BoundField{Name: descriptor.Name, Field: field})
		form.byName[descriptor.Name] = field
	}

	for _, name := range opts.Include {
		if _, ok := form.byName[name]; ok {
			continue
		}
		if ignored[name] {
			return nil, fmt.Errorf("forms: field %q of schema %s generates no form field", name, s.Name())
		}
		return nil, fmt.Errorf("forms: unknown field %q specified for schema %s", name, s.Name())
	}

	if opts.Instance != nil {
		form.initial = opts.Instance.ToMap(opts.Include, opts.Exclude)
	}
	return form, nil
}

// Schema returns the document schema behind the form.
func (f *DocumentForm) Schema() *schema.Schema { return f.schema }

// Fields returns the generated form fields in schema order.
func (f *DocumentForm) Fields() []BoundField { return f.ordered }

// Instance returns the instance the form edits, nil for a create form that
// has not been saved.
func (f *DocumentForm) Instance() *document.Document { return f.opts.Instance }

// Bind attaches submitted data. Binding resets any previous validation
// state.
func (f *DocumentForm) Bind(data widgets.FormData) {
	f.data = data
	f.bound = true
	f.validated = false
	f.cleaned = nil
	f.errs = Errors{}
}

// IsBound reports whether the form carries submitted data.
func (f *DocumentForm) IsBound() bool { return f.bound }

// inputName applies the form prefix to a field name.
func (f *DocumentForm) inputName(name string) string {
	if f.opts.Prefix == "" {
		return name
	}
	return f.opts.Prefix + "-" + name
}

// IsValid validates the bound data. Every field is cleaned regardless of
// earlier failures, so the error collection is complete per submission.
func (f *DocumentForm) IsValid(ctx context.Context) bool {
	if !f.bound {
		return false
	}
	if f.validated {
		return !f.errs.Any()
	}
	f.validated = true
	f.cleaned = make(map[string]any, len(f.ordered))
	f.errs = Errors{}

	for _, bf := range f.ordered {
		raw := bf.Field.Widget().ValueFrom(f.data, f.inputName(bf.Name))
		cleaned, err := bf.Field.Clean(ctx, raw)
		if err != nil {
			for _, msg := range fields.Messages(err) {
				f.errs.Add(bf.Name, msg)
			}
			continue
		}
		f.cleaned[bf.Name] = cleaned
	}
	return !f.errs.Any()
}

// Errors returns the per-field validation messages. Empty until IsValid has
// run.
func (f *DocumentForm) Errors() Errors { return f.errs }

// CleanedData returns the validated values keyed by field name. Fields that
// failed validation are absent.
func (f *DocumentForm) CleanedData() map[string]any { return f.cleaned }

// Apply copies the cleaned values onto the instance's matching attributes.
// File values are written last, through the blob store when configured, so
// the stored name lands in the attribute.
func (f *DocumentForm) Apply(ctx context.Context, doc *document.Document) error {
	var fileFields []string
	for _, bf := range f.ordered {
		value, ok := f.cleaned[bf.Name]
		if !ok {
			continue
		}
		if containsFile(value) {
			fileFields = append(fileFields, bf.Name)
			continue
		}
		if err := doc.Set(bf.Name, value); err != nil {
			return err
		}
	}
	for _, name := range fileFields {
		stored, err := f.storeFiles(ctx, f.cleaned[name])
		if err != nil {
			return fmt.Errorf("forms: store upload for %q: %w", name, err)
		}
		if err := doc.Set(name, stored); err != nil {
			return err
		}
	}
	return nil
}

// Save validates, applies the cleaned values, persists the instance through
// the store, and returns it. A validation failure returns ErrNotValid; the
// detail stays in Errors().
func (f *DocumentForm) Save(ctx context.Context, store document.Store) (*document.Document, error) {
	if !f.bound {
		return nil, ErrNotBound
	}
	if !f.IsValid(ctx) {
		return nil, ErrNotValid
	}
	doc := f.opts.Instance
	if doc == nil {
		doc = document.New(f.schema)
		f.opts.Instance = doc
	}
	if err := f.Apply(ctx, doc); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// containsFile reports whether a cleaned value still carries upload content
// that must go through the blob store.
func containsFile(value any) bool {
	switch v := value.(type) {
	case *widgets.File:
		return v != nil
	case []any:
		for _, item := range v {
			if f, ok := item.(*widgets.File); ok && f != nil {
				return true
			}
		}
	}
	return false
}

// storeFiles resolves a cleaned file value into stored blob names.
func (f *DocumentForm) storeFiles(ctx context.Context, value any) (any, error) {
	switch v := value.(type) {
	case *widgets.File:
		return f.storeOne(ctx, v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if upload, ok := item.(*widgets.File); ok && upload != nil {
				stored, err := f.storeOne(ctx, upload)
				if err != nil {
					return nil, err
				}
				out = append(out, stored)
				continue
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return value, nil
	}
}

func (f *DocumentForm) storeOne(ctx context.Context, upload *widgets.File) (string, error) {
	if f.opts.Blobs == nil {
		return upload.Name, nil
	}
	return f.opts.Blobs.Put(ctx, upload.Name, upload.Content)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
