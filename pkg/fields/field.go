// Package fields implements the validator half of a form field: each type
// cleans one submitted value shape into a document attribute value, paired
// with the widget that renders and extracts it.
package fields

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docforms/pkg/widgets"
)

// Field cleans a widget-extracted value into a document attribute value.
type Field interface {
	// Clean validates value and returns the cleaned attribute value. An
	// empty optional value cleans to nil.
	Clean(ctx context.Context, value any) (any, error)
	Widget() widgets.Widget
	Required() bool
	Label() string
	HelpText() string
	Default() any
}

// Stable validation error codes.
const (
	CodeRequired         = "required"
	CodeInvalid          = "invalid"
	CodeInvalidChoice    = "invalid_choice"
	CodeMinLength        = "min_length"
	CodeMaxLength        = "max_length"
	CodeMinValue         = "min_value"
	CodeMaxValue         = "max_value"
	CodeMaxDecimalPlaces = "max_decimal_places"
)

// Error is one validation failure with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errf builds a coded validation error.
func Errf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func requiredError() *Error {
	return Errf(CodeRequired, "This field is required.")
}

// Messages flattens a validation error into its user-facing messages,
// expanding joined container-entry errors.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, sub := range joined.Unwrap() {
			out = append(out, Messages(sub)...)
		}
		return out
	}
	return []string{err.Error()}
}

// Base carries the attributes shared by every field implementation.
type Base struct {
	label    string
	helpText string
	required bool
	def      any
	widget   widgets.Widget
}

// NewBase builds the shared attribute set.
func NewBase(label, helpText string, required bool, def any, widget widgets.Widget) Base {
	if widget == nil {
		widget = widgets.NewTextInput()
	}
	return Base{label: label, helpText: helpText, required: required, def: def, widget: widget}
}

func (b *Base) Widget() widgets.Widget { return b.widget }
func (b *Base) Required() bool         { return b.required }
func (b *Base) Label() string          { return b.label }
func (b *Base) HelpText() string       { return b.helpText }
func (b *Base) Default() any           { return b.def }

// SetWidget swaps the rendering widget; the generator uses it to apply
// widget overrides.
func (b *Base) SetWidget(w widgets.Widget) {
	if w != nil {
		b.widget = w
	}
}

// Blank reports whether an extracted value carries no user input, whatever
// its widget shape. Container cleaning skips blank entries entirely.
func Blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case [2]string:
		return v[0] == "" && v[1] == ""
	case *widgets.File:
		return v == nil
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case bool:
		return false
	default:
		return false
	}
}

func cleanString(value any) (string, bool, error) {
	if Blank(value) {
		return "", false, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", false, Errf(CodeInvalid, "Enter a valid value.")
	}
	return s, true, nil
}
