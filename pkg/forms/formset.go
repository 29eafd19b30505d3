package forms

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/schema"
	"github.com/goliatone/go-docforms/pkg/widgets"
)

// TotalFormsField is the management input carrying the bound form count of a
// form set, namespaced by the set prefix.
const TotalFormsField = "TOTAL_FORMS"

// DeleteField is the per-form flag marking a form for deletion on save.
const DeleteField = "DELETE"

// FormSet manages a run of DocumentForms over one schema, each namespaced
// as "prefix-i-field".
type FormSet struct {
	schema *schema.Schema
	opts   Options
	prefix string
	forms  []*DocumentForm

	canDelete bool
	deleted   map[int]bool
}

// FormSetOptions configures a form set.
type FormSetOptions struct {
	Options
	// Prefix namespaces the set's inputs; defaults to the schema name.
	Prefix string
	// Extra is the number of blank forms an unbound set presents.
	Extra int
	// CanDelete enables the per-form delete flag.
	CanDelete bool
}

// NewFormSet builds an unbound set with opts.Extra blank forms, plus one
// form per initial instance.
func NewFormSet(s *schema.Schema, instances []*document.Document, opts FormSetOptions) (*FormSet, error) {
	if opts.Prefix == "" {
		opts.Prefix = s.Name()
	}
	set := &FormSet{
		schema:    s,
		opts:      opts.Options,
		prefix:    opts.Prefix,
		canDelete: opts.CanDelete,
		deleted:   map[int]bool{},
	}

	total := len(instances) + opts.Extra
	if total == 0 {
		total = 1
	}
	for i := 0; i < total; i++ {
		formOpts := opts.Options
		formOpts.Prefix = set.formPrefix(i)
		if i < len(instances) {
			formOpts.Instance = instances[i]
		}
		form, err := New(s, formOpts)
		if err != nil {
			return nil, err
		}
		set.forms = append(set.forms, form)
	}
	return set, nil
}

// Forms returns the member forms in order.
func (s *FormSet) Forms() []*DocumentForm { return s.forms }

// Prefix returns the set's input namespace.
func (s *FormSet) Prefix() string { return s.prefix }

func (s *FormSet) formPrefix(i int) string {
	return fmt.Sprintf("%s-%d", s.prefix, i)
}

// Bind attaches submitted data, sizing the set from the management count.
func (s *FormSet) Bind(data widgets.FormData) error {
	totalRaw := data.Get(s.prefix + "-" + TotalFormsField)
	total, err := strconv.Atoi(totalRaw)
	if err != nil || total < 0 {
		return fmt.Errorf("forms: form set %q has no valid %s value", s.prefix, TotalFormsField)
	}

	// Grow or shrink to the submitted count, keeping bound instances.
	for len(s.forms) < total {
		formOpts := s.opts
		formOpts.Prefix = s.formPrefix(len(s.forms))
		form, err := New(s.schema, formOpts)
		if err != nil {
			return err
		}
		s.forms = append(s.forms, form)
	}
	s.forms = s.forms[:total]

	s.deleted = map[int]bool{}
	for i, form := range s.forms {
		form.Bind(data)
		if s.canDelete {
			flag := data.Get(s.formPrefix(i) + "-" + DeleteField)
			s.deleted[i] = flag == "on" || flag == "true" || flag == "1"
		}
	}
	return nil
}

// IsValid validates every member form; one invalid form does not stop the
// others from validating.
func (s *FormSet) IsValid(ctx context.Context) bool {
	valid := true
	for i, form := range s.forms {
		if s.deleted[i] {
			continue
		}
		if !form.IsValid(ctx) {
			valid = false
		}
	}
	return valid
}

// Errors returns the error collections of the member forms, indexed like
// Forms().
func (s *FormSet) Errors() []Errors {
	out := make([]Errors, len(s.forms))
	for i, form := range s.forms {
		out[i] = form.Errors()
	}
	return out
}

// Save persists every member form that is not flagged for deletion and
// returns the saved instances. Deleted members with a persisted instance
// are removed from the store.
func (s *FormSet) Save(ctx context.Context, store document.Store) ([]*document.Document, error) {
	var saved []*document.Document
	for i, form := range s.forms {
		if s.deleted[i] {
			if instance := form.Instance(); instance != nil && instance.ID() != "" {
				if err := store.Delete(ctx, s.schema, instance.ID()); err != nil {
					return nil, err
				}
			}
			continue
		}
		doc, err := form.Save(ctx, store)
		if err != nil {
			return nil, err
		}
		saved = append(saved, doc)
	}
	return saved, nil
}

// InlineFormSet manages a run of forms over the embedded schema of a
// parent's list field. Saving writes the member instances back into the
// parent's list in memory; persisting the parent stays the caller's
// responsibility, as with EmbeddedDocumentForm.
type InlineFormSet struct {
	*FormSet

	parent    *document.Document
	fieldName string
}

// NewInlineFormSet builds a set over the embedded documents currently held
// in the parent's list field, plus opts.Extra blank forms.
func NewInlineFormSet(parent *document.Document, fieldName string, opts FormSetOptions) (*InlineFormSet, error) {
	if parent == nil {
		return nil, fmt.Errorf("forms: inline form set requires a parent document")
	}
	descriptor, ok := parent.Schema().Field(fieldName)
	if !ok {
		return nil, fmt.Errorf("forms: parent schema %s declares no field %q",
			parent.Schema().Name(), fieldName)
	}
	embedded, isList, err := embeddedSchemaOf(descriptor)
	if err != nil {
		return nil, err
	}
	if !isList {
		return nil, fmt.Errorf("forms: field %q holds no embedded document list", fieldName)
	}
	if opts.Prefix == "" {
		opts.Prefix = fieldName
	}

	set, err := NewFormSet(embedded, embeddedList(parent, fieldName), opts)
	if err != nil {
		return nil, err
	}
	return &InlineFormSet{FormSet: set, parent: parent, fieldName: fieldName}, nil
}

// Parent returns the parent document the set writes into.
func (s *InlineFormSet) Parent() *document.Document { return s.parent }

// Save validates every member and replaces the parent's list with the
// updated instances, dropping members flagged for deletion and appending
// instances for forms beyond the original list. The parent is only mutated
// in memory, never persisted here.
func (s *InlineFormSet) Save(ctx context.Context) ([]*document.Document, error) {
	for _, form := range s.forms {
		if !form.bound {
			return nil, ErrNotBound
		}
	}
	if !s.IsValid(ctx) {
		return nil, ErrNotValid
	}

	out := make([]*document.Document, 0, len(s.forms))
	for i, form := range s.forms {
		if s.deleted[i] {
			continue
		}
		instance := form.opts.Instance
		if instance == nil {
			instance = document.New(s.schema)
			form.opts.Instance = instance
		}
		if err := form.Apply(ctx, instance); err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	if err := s.parent.Set(s.fieldName, out); err != nil {
		return nil, err
	}
	return out, nil
}
