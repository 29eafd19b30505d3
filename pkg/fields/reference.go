package fields

import (
	"context"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/schema"
)

// Reference validates that a submitted identifier resolves to a persisted
// document of the referenced schema. The cleaned value is the identifier.
type Reference struct {
	Base
	Finder document.Finder
	Ref    *schema.Schema
}

func (f *Reference) Clean(ctx context.Context, value any) (any, error) {
	s, present, err := cleanString(value)
	if err != nil {
		return nil, err
	}
	if !present {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	if f.Finder == nil || f.Ref == nil {
		// No store wired: accept the raw identifier, resolution is the
		// caller's problem.
		return s, nil
	}
	ok, err := f.Finder.Exists(ctx, f.Ref, s)
	if err != nil {
		return nil, Errf(CodeInvalid, "Could not verify the selected choice.")
	}
	if !ok {
		return nil, Errf(CodeInvalidChoice,
			"Select a valid choice. %s is not one of the available choices.", s)
	}
	return s, nil
}

// MultiReference validates a list of identifiers against the referenced
// schema. The cleaned value is the list of identifiers.
type MultiReference struct {
	Base
	Finder document.Finder
	Ref    *schema.Schema
}

func (f *MultiReference) Clean(ctx context.Context, value any) (any, error) {
	values := stringSlice(value)
	if len(values) == 0 {
		if f.Required() {
			return nil, requiredError()
		}
		return []any{}, nil
	}

	single := &Reference{Base: f.Base, Finder: f.Finder, Ref: f.Ref}
	out := make([]any, 0, len(values))
	for _, v := range values {
		cleaned, err := single.Clean(ctx, v)
		if err != nil {
			return nil, err
		}
		if cleaned != nil {
			out = append(out, cleaned)
		}
	}
	return out, nil
}
