// Package widgets pairs HTML rendering with submitted-value extraction for
// every input shape the form layer uses. Container widgets follow the
// indexed-name convention `name_0 ... name_N` (plus `name_key_i` /
// `name_value_i` for maps) and always render one blank trailing input.
package widgets

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Attrs holds extra HTML attributes for a rendered input.
type Attrs map[string]string

// Widget renders one named input and extracts its submitted value back out
// of a form payload.
type Widget interface {
	// Render returns the HTML for the input holding value. Values and
	// attributes are escaped.
	Render(name string, value any, attrs Attrs) string
	// ValueFrom pulls the widget's value out of submitted form data. The
	// returned shape is widget specific: string for scalar inputs, []any for
	// lists, []MapEntry for maps, *File for uploads.
	ValueFrom(data FormData, name string) any
}

// IDFor returns the DOM id rendered for an input name.
func IDFor(name string) string { return "id_" + name }

func renderAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(k), html.EscapeString(attrs[k]))
	}
	return b.String()
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func withClass(attrs Attrs, class string) Attrs {
	merged := make(Attrs, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	if existing := merged["class"]; existing != "" {
		merged["class"] = existing + " " + class
	} else {
		merged["class"] = class
	}
	return merged
}
