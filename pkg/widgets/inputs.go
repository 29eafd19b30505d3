package widgets

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-docforms/pkg/schema"
)

// TextInput renders `<input>` with the given type: text, email, url, number,
// date, time, password.
type TextInput struct {
	Type string
}

// NewTextInput returns a plain text input.
func NewTextInput() *TextInput { return &TextInput{Type: "text"} }

func (w *TextInput) Render(name string, value any, attrs Attrs) string {
	inputType := w.Type
	if inputType == "" {
		inputType = "text"
	}
	return fmt.Sprintf(`<input type="%s" name="%s" id="%s" value="%s"%s>`,
		html.EscapeString(inputType),
		html.EscapeString(name),
		html.EscapeString(IDFor(name)),
		html.EscapeString(stringValue(value)),
		renderAttrs(attrs))
}

func (w *TextInput) ValueFrom(data FormData, name string) any {
	return data.Get(name)
}

// HiddenInput renders `<input type="hidden">`.
type HiddenInput struct{}

func (w *HiddenInput) Render(name string, value any, attrs Attrs) string {
	return (&TextInput{Type: "hidden"}).Render(name, value, attrs)
}

func (w *HiddenInput) ValueFrom(data FormData, name string) any {
	return data.Get(name)
}

// Textarea renders a multi-line text input.
type Textarea struct {
	Rows int
}

func (w *Textarea) Render(name string, value any, attrs Attrs) string {
	rows := w.Rows
	if rows <= 0 {
		rows = 6
	}
	return fmt.Sprintf(`<textarea name="%s" id="%s" rows="%d"%s>%s</textarea>`,
		html.EscapeString(name),
		html.EscapeString(IDFor(name)),
		rows,
		renderAttrs(attrs),
		html.EscapeString(stringValue(value)))
}

func (w *Textarea) ValueFrom(data FormData, name string) any {
	return data.Get(name)
}

// CheckboxInput renders a checkbox. A present submission counts as checked.
type CheckboxInput struct{}

func (w *CheckboxInput) Render(name string, value any, attrs Attrs) string {
	checked := ""
	if b, ok := value.(bool); ok && b {
		checked = " checked"
	}
	return fmt.Sprintf(`<input type="checkbox" name="%s" id="%s"%s%s>`,
		html.EscapeString(name),
		html.EscapeString(IDFor(name)),
		checked,
		renderAttrs(attrs))
}

func (w *CheckboxInput) ValueFrom(data FormData, name string) any {
	if !data.Has(name) {
		return false
	}
	switch strings.ToLower(data.Get(name)) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}

// Select renders a single-choice dropdown. An empty-valued blank option is
// emitted first unless the widget is marked required.
type Select struct {
	Choices    []schema.Choice
	BlankLabel string
}

func (w *Select) Render(name string, value any, attrs Attrs) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<select name="%s" id="%s"%s>`,
		html.EscapeString(name), html.EscapeString(IDFor(name)), renderAttrs(attrs))

	blank := w.BlankLabel
	if blank == "" {
		blank = "---------"
	}
	fmt.Fprintf(&b, `<option value="">%s</option>`, html.EscapeString(blank))

	current := stringValue(value)
	for _, choice := range w.Choices {
		selected := ""
		if choice.Value == current && current != "" {
			selected = " selected"
		}
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
			html.EscapeString(choice.Value), selected, html.EscapeString(label))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func (w *Select) ValueFrom(data FormData, name string) any {
	return data.Get(name)
}

// SelectMultiple renders a multi-choice list. ValueFrom returns every
// submitted value under the name.
type SelectMultiple struct {
	Choices []schema.Choice
}

func (w *SelectMultiple) Render(name string, value any, attrs Attrs) string {
	selectedValues := map[string]bool{}
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			selectedValues[s] = true
		}
	case []any:
		for _, s := range v {
			selectedValues[stringValue(s)] = true
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<select multiple name="%s" id="%s"%s>`,
		html.EscapeString(name), html.EscapeString(IDFor(name)), renderAttrs(attrs))
	for _, choice := range w.Choices {
		selected := ""
		if selectedValues[choice.Value] {
			selected = " selected"
		}
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
			html.EscapeString(choice.Value), selected, html.EscapeString(label))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func (w *SelectMultiple) ValueFrom(data FormData, name string) any {
	if data.Values == nil {
		return []string(nil)
	}
	return data.Values[name]
}

// FileInput renders `<input type="file">`. ValueFrom returns a *File or nil.
type FileInput struct{}

func (w *FileInput) Render(name string, _ any, attrs Attrs) string {
	return fmt.Sprintf(`<input type="file" name="%s" id="%s"%s>`,
		html.EscapeString(name), html.EscapeString(IDFor(name)), renderAttrs(attrs))
}

func (w *FileInput) ValueFrom(data FormData, name string) any {
	if f, ok := data.File(name); ok {
		return &f
	}
	return (*File)(nil)
}

// SplitDateTime renders a date input and a time input as `name_0` / `name_1`,
// the HTML5 variant of the classic split datetime widget.
type SplitDateTime struct{}

func (w *SplitDateTime) Render(name string, value any, attrs Attrs) string {
	date, clock := splitDateTimeValue(value)
	dateInput := &TextInput{Type: "date"}
	timeInput := &TextInput{Type: "time"}
	return dateInput.Render(name+"_0", date, attrs) + timeInput.Render(name+"_1", clock, attrs)
}

func (w *SplitDateTime) ValueFrom(data FormData, name string) any {
	return [2]string{data.Get(name + "_0"), data.Get(name + "_1")}
}

func splitDateTimeValue(value any) (string, string) {
	switch v := value.(type) {
	case [2]string:
		return v[0], v[1]
	case string:
		if v == "" {
			return "", ""
		}
		parts := strings.SplitN(v, "T", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		parts = strings.SplitN(v, " ", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return v, ""
	default:
		return "", ""
	}
}
