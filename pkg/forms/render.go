package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docforms/pkg/widgets"
)

// helpPolicy strips everything but basic inline markup from help texts
// before they reach rendered output.
var helpPolicy = bluemonday.UGCPolicy()

// RenderHTML renders the form body: one labelled widget per field with its
// help text and collected errors. The caller supplies the surrounding
// <form> element and submit controls.
func (f *DocumentForm) RenderHTML() string {
	var b strings.Builder
	for _, bf := range f.ordered {
		name := f.inputName(bf.Name)
		value := f.displayValue(bf)

		fmt.Fprintf(&b, `<div class="form-field form-field-%s">`, html.EscapeString(bf.Name))
		fmt.Fprintf(&b, `<label for="%s">%s</label>`,
			html.EscapeString(widgets.IDFor(name)),
			html.EscapeString(bf.Field.Label()))
		b.WriteString(bf.Field.Widget().Render(name, value, nil))
		if help := bf.Field.HelpText(); help != "" {
			fmt.Fprintf(&b, `<span class="help-text">%s</span>`, helpPolicy.Sanitize(help))
		}
		for _, msg := range f.errs.Get(bf.Name) {
			fmt.Fprintf(&b, `<span class="field-error">%s</span>`, html.EscapeString(msg))
		}
		b.WriteString(`</div>`)
	}
	for _, msg := range f.errs.Get(NonFieldKey) {
		fmt.Fprintf(&b, `<span class="form-error">%s</span>`, html.EscapeString(msg))
	}
	return b.String()
}

// displayValue picks what a field renders with: the submitted raw value when
// bound, otherwise the instance's initial value, otherwise the descriptor
// default.
func (f *DocumentForm) displayValue(bf BoundField) any {
	if f.bound {
		return bf.Field.Widget().ValueFrom(f.data, f.inputName(bf.Name))
	}
	if v, ok := f.initial[bf.Name]; ok {
		return v
	}
	return bf.Field.Default()
}
