package fields

import (
	"context"
	"errors"

	"github.com/goliatone/go-docforms/pkg/widgets"
)

// List cleans every present entry of a list submission with the element
// field. Wholly blank entries are skipped: the trailing blank input a list
// widget always renders never produces a value or an error, and neither does
// any other empty entry. Entry errors are collected, not short-circuited.
type List struct {
	Base
	Elem Field
}

func (f *List) Clean(ctx context.Context, value any) (any, error) {
	entries, ok := value.([]any)
	if !ok && value != nil {
		if coerced := stringSlice(value); coerced != nil {
			entries = make([]any, len(coerced))
			for i, s := range coerced {
				entries[i] = s
			}
		} else {
			return nil, Errf(CodeInvalid, "Enter a list of values.")
		}
	}

	cleaned := make([]any, 0, len(entries))
	var entryErrors []error
	for i, entry := range entries {
		if Blank(entry) {
			continue
		}
		cleanedEntry, err := f.Elem.Clean(ctx, entry)
		if err != nil {
			for _, msg := range Messages(err) {
				entryErrors = append(entryErrors, Errf(CodeInvalid, "Entry %d: %s", i+1, msg))
			}
			continue
		}
		cleaned = append(cleaned, cleanedEntry)
	}
	if len(entryErrors) > 0 {
		return nil, errors.Join(entryErrors...)
	}
	if len(cleaned) == 0 {
		if f.Required() {
			return nil, requiredError()
		}
		return []any{}, nil
	}
	return cleaned, nil
}

// Map cleans the submitted key/value pairs of a map widget. Pairs with a
// blank key were already dropped at extraction; blank values are skipped the
// same way list entries are. The cleaned value is a map keyed by the
// submitted keys.
type Map struct {
	Base
	Elem Field
}

func (f *Map) Clean(ctx context.Context, value any) (any, error) {
	entries, ok := value.([]widgets.MapEntry)
	if !ok && value != nil {
		return nil, Errf(CodeInvalid, "Enter a list of key/value pairs.")
	}

	cleaned := make(map[string]any, len(entries))
	var entryErrors []error
	for _, entry := range entries {
		if Blank(entry.Value) {
			continue
		}
		cleanedValue, err := f.Elem.Clean(ctx, entry.Value)
		if err != nil {
			for _, msg := range Messages(err) {
				entryErrors = append(entryErrors, Errf(CodeInvalid, "Key %q: %s", entry.Key, msg))
			}
			continue
		}
		cleaned[entry.Key] = cleanedValue
	}
	if len(entryErrors) > 0 {
		return nil, errors.Join(entryErrors...)
	}
	if len(cleaned) == 0 && f.Required() {
		return nil, requiredError()
	}
	return cleaned, nil
}
