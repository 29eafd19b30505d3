package widgets

import (
	"fmt"
	"html"
	"strings"
)

// DynamicClassPrefix is the class marker the client-side script uses to
// locate the input group of one repeatable field. The rendered class is
// DynamicClassPrefix + the field name.
const DynamicClassPrefix = "dynamic-list-field_"

// DynamicListWidget is a ListWidget whose inputs carry the class marker
// consumed by assets/dynamiclist.js, plus an add-entry control. The script
// clones the first input to append entries client side; extraction is plain
// ListWidget extraction, so arbitrarily many numbered inputs come back.
type DynamicListWidget struct {
	list *ListWidget
}

// NewDynamicListWidget wraps the element widget.
func NewDynamicListWidget(elem Widget) *DynamicListWidget {
	return &DynamicListWidget{list: NewListWidget(elem)}
}

func (w *DynamicListWidget) Render(name string, value any, attrs Attrs) string {
	marker := DynamicClassPrefix + name
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="dynamic-list" data-field="%s">`, html.EscapeString(name))
	b.WriteString(w.list.Render(name, value, withClass(attrs, marker)))
	fmt.Fprintf(&b, `<button type="button" class="dynamic-list-add" data-field="%s">Add</button>`,
		html.EscapeString(name))
	b.WriteString(`</div>`)
	return b.String()
}

func (w *DynamicListWidget) ValueFrom(data FormData, name string) any {
	return w.list.ValueFrom(data, name)
}
