package fields

import (
	"context"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// CoerceFunc converts a validated choice value into its attribute
// representation.
type CoerceFunc func(string) (any, error)

// TypedChoice validates a submitted value against a fixed choice list and
// coerces it into the attribute type.
type TypedChoice struct {
	Base
	Choices []schema.Choice
	Coerce  CoerceFunc
}

func (f *TypedChoice) Clean(ctx context.Context, value any) (any, error) {
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
	if !f.allowed(s) {
		return nil, Errf(CodeInvalidChoice,
			"Select a valid choice. %s is not one of the available choices.", s)
	}
	if f.Coerce == nil {
		return s, nil
	}
	coerced, err := f.Coerce(s)
	if err != nil {
		return nil, Errf(CodeInvalid, "Enter a valid value.")
	}
	return coerced, nil
}

func (f *TypedChoice) allowed(value string) bool {
	for _, choice := range f.Choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// MultiChoice validates a list of submitted values against a fixed choice
// list.
type MultiChoice struct {
	Base
	Choices []schema.Choice
	Coerce  CoerceFunc
}

func (f *MultiChoice) Clean(ctx context.Context, value any) (any, error) {
	values := stringSlice(value)
	if len(values) == 0 {
		if f.Required() {
			return nil, requiredError()
		}
		return []any{}, nil
	}

	single := &TypedChoice{Base: f.Base, Choices: f.Choices, Coerce: f.Coerce}
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

func stringSlice(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
