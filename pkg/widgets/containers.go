package widgets

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// indexedName builds the contiguous zero-based input name for entry i.
func indexedName(name string, i int) string {
	return fmt.Sprintf("%s_%d", name, i)
}

// ListWidget renders one inner input per current value plus a single blank
// trailing input, and reads back the contiguous `name_0 ... name_N` run.
type ListWidget struct {
	Elem Widget
}

// NewListWidget wraps the element widget; a nil element defaults to a plain
// text input.
func NewListWidget(elem Widget) *ListWidget {
	if elem == nil {
		elem = NewTextInput()
	}
	return &ListWidget{Elem: elem}
}

func (w *ListWidget) Render(name string, value any, attrs Attrs) string {
	values := listValues(value)
	values = append(values, "")

	var b strings.Builder
	for i, entry := range values {
		b.WriteString(w.Elem.Render(indexedName(name, i), entry, attrs))
	}
	return b.String()
}

// ValueFrom walks indexes from zero until the first absent name, so the
// caller sees exactly the contiguous run the client submitted.
func (w *ListWidget) ValueFrom(data FormData, name string) any {
	var out []any
	for i := 0; data.Has(indexedName(name, i)); i++ {
		out = append(out, w.Elem.ValueFrom(data, indexedName(name, i)))
	}
	return out
}

func listValues(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return append([]any(nil), v...)
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

// MapEntry is one submitted key/value pair of a MapWidget, in submission
// order.
type MapEntry struct {
	Key   string
	Value any
}

// MapWidget renders `name_key_i` / `name_value_i` pairs inside fieldsets plus
// one blank trailing pair. Extraction keeps pairs with a non-empty key.
type MapWidget struct {
	Elem   Widget
	Key    Widget
	hidden bool
}

// NewMapWidget wraps the value widget; keys are plain text inputs.
func NewMapWidget(elem Widget) *MapWidget {
	if elem == nil {
		elem = NewTextInput()
	}
	return &MapWidget{Elem: elem, Key: NewTextInput()}
}

// NewHiddenMapWidget carries map state through hidden inputs.
func NewHiddenMapWidget() *MapWidget {
	return &MapWidget{Elem: &HiddenInput{}, Key: &HiddenInput{}, hidden: true}
}

func (w *MapWidget) Render(name string, value any, attrs Attrs) string {
	entries := mapEntries(value)
	entries = append(entries, MapEntry{})

	var b strings.Builder
	for i, entry := range entries {
		if !w.hidden {
			fmt.Fprintf(&b, `<fieldset id="fieldset_%s_%d">`, html.EscapeString(IDFor(name)), i)
		}
		b.WriteString(w.Key.Render(fmt.Sprintf("%s_key_%d", name, i), entry.Key, attrs))
		b.WriteString(w.Elem.Render(fmt.Sprintf("%s_value_%d", name, i), entry.Value, attrs))
		if !w.hidden {
			b.WriteString(`</fieldset>`)
		}
	}
	return b.String()
}

func (w *MapWidget) ValueFrom(data FormData, name string) any {
	var out []MapEntry
	for i := 0; data.Has(fmt.Sprintf("%s_key_%d", name, i)); i++ {
		key := data.Get(fmt.Sprintf("%s_key_%d", name, i))
		value := w.Elem.ValueFrom(data, fmt.Sprintf("%s_value_%d", name, i))
		if key == "" {
			continue
		}
		out = append(out, MapEntry{Key: key, Value: value})
	}
	return out
}

func mapEntries(value any) []MapEntry {
	switch v := value.(type) {
	case nil:
		return nil
	case []MapEntry:
		return append([]MapEntry(nil), v...)
	case map[string]any:
		out := make([]MapEntry, 0, len(v))
		for _, key := range sortedKeys(v) {
			out = append(out, MapEntry{Key: key, Value: v[key]})
		}
		return out
	default:
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
