package forms

import (
	"errors"
	"sort"
)

// NonFieldKey collects errors that belong to the whole submission rather
// than one field.
const NonFieldKey = "__all__"

// Sentinel errors of the form layer.
var (
	// ErrNotValid is returned by Save when the bound data failed
	// validation; the per-field detail lives in Errors().
	ErrNotValid = errors.New("forms: submitted data did not validate")
	// ErrPositionOutOfRange is returned when an embedded-document position
	// points outside the parent's current list.
	ErrPositionOutOfRange = errors.New("forms: embedded document position out of range")
	// ErrNotBound is returned when validation or save is attempted on a
	// form that was never bound to submitted data.
	ErrNotBound = errors.New("forms: form is not bound to submitted data")
)

// Errors maps field names to their validation messages. The collection is
// always per-field; a failing field never hides failures of the others.
type Errors map[string][]string

// Add appends a message under the field name.
func (e Errors) Add(name, message string) {
	e[name] = append(e[name], message)
}

// Get returns the messages collected for a field.
func (e Errors) Get(name string) []string { return e[name] }

// Any reports whether any field collected an error.
func (e Errors) Any() bool { return len(e) > 0 }

// Fields returns the failing field names, sorted for stable output.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
