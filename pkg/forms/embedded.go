package forms

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/schema"
)

// EmbeddedOptions configures an embedded-document form on top of the plain
// form options.
type EmbeddedOptions struct {
	Options
	// Position selects which element of a list slot the form edits. Nil
	// means append on save. Meaningless for a scalar embedded slot.
	Position *int
}

// EmbeddedDocumentForm edits a document-shaped value held inside a parent
// document's field: a scalar embedded slot or an element of an embedded
// list. Saving only mutates the parent in memory; persisting the parent
// stays the caller's responsibility.
type EmbeddedDocumentForm struct {
	*DocumentForm

	parent    *document.Document
	fieldName string
	position  *int
	isList    bool
}

// NewEmbedded builds a form over the embedded schema of the parent's named
// field. Resolution of the instance being edited:
//   - opts.Instance set: edit that instance, whatever the position says.
//   - no instance, position set, list slot: edit the element at that index;
//     an index beyond the current list is ErrPositionOutOfRange.
//   - no instance, no position: start from a fresh instance.
//   - scalar slot: position is ignored, saves overwrite the slot.
func NewEmbedded(parent *document.Document, fieldName string, opts EmbeddedOptions) (*EmbeddedDocumentForm, error) {
	if parent == nil {
		return nil, fmt.Errorf("forms: embedded form requires a parent document")
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

	if opts.Instance == nil {
		instance, err := resolveEmbeddedInstance(parent, fieldName, isList, opts.Position, embedded)
		if err != nil {
			return nil, err
		}
		opts.Instance = instance
	}

	inner, err := New(embedded, opts.Options)
	if err != nil {
		return nil, err
	}
	return &EmbeddedDocumentForm{
		DocumentForm: inner,
		parent:       parent,
		fieldName:    fieldName,
		position:     opts.Position,
		isList:       isList,
	}, nil
}

func embeddedSchemaOf(descriptor *schema.Field) (*schema.Schema, bool, error) {
	switch descriptor.Kind.Normalize() {
	case schema.KindEmbedded:
		return descriptor.Embedded, false, nil
	case schema.KindList:
		if descriptor.Elem != nil && descriptor.Elem.Kind.Normalize() == schema.KindEmbedded {
			return descriptor.Elem.Embedded, true, nil
		}
	}
	return nil, false, fmt.Errorf("forms: field %q holds no embedded document", descriptor.Name)
}

func resolveEmbeddedInstance(parent *document.Document, fieldName string, isList bool, position *int, embedded *schema.Schema) (*document.Document, error) {
	if !isList || position == nil {
		if !isList {
			// Scalar slot: edit the current value when present, otherwise
			// start fresh. Saves overwrite the slot either way.
			if current := embeddedList(parent, fieldName); len(current) == 1 {
				return current[0], nil
			}
		}
		return document.New(embedded), nil
	}

	current := embeddedList(parent, fieldName)
	p := *position
	if p < 0 || p >= len(current) {
		return nil, fmt.Errorf("%w: position %d, list length %d",
			ErrPositionOutOfRange, p, len(current))
	}
	return current[p], nil
}

// Parent returns the parent document the form writes into.
func (f *EmbeddedDocumentForm) Parent() *document.Document { return f.parent }

// Save validates and writes the embedded instance into the parent: append
// for a list slot without position, replace at the position otherwise,
// plain overwrite for a scalar slot. The parent is never persisted here.
func (f *EmbeddedDocumentForm) Save(ctx context.Context) (*document.Document, error) {
	if !f.bound {
		return nil, ErrNotBound
	}
	if !f.IsValid(ctx) {
		return nil, ErrNotValid
	}

	instance := f.opts.Instance
	if instance == nil {
		instance = document.New(f.schema)
		f.opts.Instance = instance
	}
	if err := f.Apply(ctx, instance); err != nil {
		return nil, err
	}

	if !f.isList {
		if err := f.parent.Set(f.fieldName, instance); err != nil {
			return nil, err
		}
		return instance, nil
	}

	current := embeddedList(f.parent, f.fieldName)
	if f.position == nil {
		current = append(current, instance)
	} else {
		p := *f.position
		if p < 0 || p >= len(current) {
			return nil, fmt.Errorf("%w: position %d, list length %d",
				ErrPositionOutOfRange, p, len(current))
		}
		current[p] = instance
	}
	if err := f.parent.Set(f.fieldName, current); err != nil {
		return nil, err
	}
	return instance, nil
}

// embeddedList reads the parent attribute as a list of embedded instances.
// A scalar slot yields a one-element list, an unset attribute an empty one.
func embeddedList(parent *document.Document, fieldName string) []*document.Document {
	value, ok := parent.Get(fieldName)
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case []*document.Document:
		return v
	case *document.Document:
		return []*document.Document{v}
	case []any:
		out := make([]*document.Document, 0, len(v))
		for _, item := range v {
			if doc, ok := item.(*document.Document); ok {
				out = append(out, doc)
			}
		}
		return out
	default:
		return nil
	}
}
