package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Choice is one enumerated value a field accepts, with its display label.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Field describes one declared attribute of a document type. Descriptors are
// immutable once the owning Schema has been constructed.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	VerboseName string   `json:"verboseName,omitempty" yaml:"verbose_name,omitempty"`
	HelpText    string   `json:"helpText,omitempty" yaml:"help_text,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Choices     []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	MinLength int      `json:"minLength,omitempty" yaml:"min_length,omitempty"`
	MaxLength int      `json:"maxLength,omitempty" yaml:"max_length,omitempty"`
	MinValue  *float64 `json:"minValue,omitempty" yaml:"min_value,omitempty"`
	MaxValue  *float64 `json:"maxValue,omitempty" yaml:"max_value,omitempty"`
	Precision int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Widget names a registered rendering widget, overriding the one the
	// field's kind implies. Resolution happens in the widget registry.
	Widget string `json:"widget,omitempty" yaml:"widget,omitempty"`

	// Ref names the schema a reference kind points at.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`
	// Elem is the element descriptor of a list or map kind.
	Elem *Field `json:"elem,omitempty" yaml:"elem,omitempty"`
	// Embedded is the schema of an embedded kind, or of a list-of-embedded
	// element.
	Embedded *Schema `json:"embedded,omitempty" yaml:"embedded,omitempty"`

	pattern *regexp.Regexp
}

// CompiledPattern returns the compiled Pattern expression, or nil when the
// descriptor declares none.
func (f *Field) CompiledPattern() *regexp.Regexp { return f.pattern }

// Label resolves the human label for the field: explicit verbose name first,
// then the attribute name with underscores spaced out, capitalised.
func (f *Field) Label() string {
	if f.VerboseName != "" {
		return capfirst(f.VerboseName)
	}
	return capfirst(strings.ReplaceAll(f.Name, "_", " "))
}

// Schema is a named, ordered set of field descriptors.
type Schema struct {
	name   string
	fields []*Field
	byName map[string]*Field
}

// New validates the supplied descriptors and builds a schema. Invalid
// descriptors fail here, at definition time, never on a later request path.
func New(name string, fields ...*Field) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("schema: name is required")
	}
	s := &Schema{
		name:   name,
		fields: make([]*Field, 0, len(fields)),
		byName: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		if err := validateField(f); err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %q", name, f.Name)
		}
		s.fields = append(s.fields, f)
		s.byName[f.Name] = f
	}
	return s, nil
}

// MustNew panics on a bad definition. Useful for package-level schemas.
func MustNew(name string, fields ...*Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateField(f *Field) error {
	if f == nil {
		return fmt.Errorf("nil field descriptor")
	}
	if f.Name == "" {
		return fmt.Errorf("field descriptor without a name")
	}
	if _, err := ParseKind(string(f.Kind)); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	if f.Pattern != "" {
		compiled, err := regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("field %q: invalid pattern: %w", f.Name, err)
		}
		f.pattern = compiled
	}
	switch f.Kind.Normalize() {
	case KindList, KindMap:
		if f.Elem == nil {
			return fmt.Errorf("field %q: %s kind requires an element descriptor", f.Name, f.Kind)
		}
		if f.Elem.Name == "" {
			f.Elem.Name = f.Name
		}
		if err := validateField(f.Elem); err != nil {
			return err
		}
	case KindReference:
		if f.Ref == "" {
			return fmt.Errorf("field %q: reference kind requires a referenced schema name", f.Name)
		}
	case KindEmbedded:
		if f.Embedded == nil {
			return fmt.Errorf("field %q: embedded kind requires an embedded schema", f.Name)
		}
	}
	return nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []*Field { return s.fields }

// Field looks a descriptor up by attribute name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

func capfirst(v string) string {
	if v == "" {
		return ""
	}
	runes := []rune(v)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
