// Package generator resolves schema field descriptors into form fields. The
// dispatch table is closed over schema.Kinds and checked when the generator
// is built, so a misconfigured override table fails at definition time
// instead of on the first submission.
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/fields"
	"github.com/goliatone/go-docforms/pkg/schema"
	"github.com/goliatone/go-docforms/pkg/widgets"
)

// FieldFactory builds a form field for a descriptor, overriding the built-in
// mapping for its kind.
type FieldFactory func(f *schema.Field, g *Generator) (fields.Field, error)

// WidgetFactory overrides the widget of a generated field.
type WidgetFactory func(f *schema.Field) widgets.Widget

// Config is the explicit configuration surface of a generator. Nothing is
// resolved from ambient state later: overrides, the reference finder, and the
// schema registry are all fixed here.
type Config struct {
	// FieldOverrides replaces the built-in field mapping per kind.
	FieldOverrides map[schema.Kind]FieldFactory
	// WidgetOverrides replaces the generated field's widget per kind.
	WidgetOverrides map[schema.Kind]WidgetFactory
	// Registry resolves descriptors carrying a widget name, and any matcher
	// rules registered on it. Kind overrides above still win.
	Registry *widgets.Registry
	// Fallback maps any failed generation onto a plain text field instead of
	// erroring, the permissive default-generator behaviour.
	Fallback bool
	// DynamicLists renders list kinds with the repeatable-entry widget the
	// client script drives.
	DynamicLists bool

	// Finder resolves reference kinds; nil accepts identifiers unchecked.
	Finder document.Finder
	// Schemas resolves a descriptor's Ref name. Reference kinds whose name
	// is missing here fail at generator construction when Finder is set.
	Schemas map[string]*schema.Schema

	// ReferenceChoices supplies the rendered choice list for a reference
	// kind; nil renders an empty select.
	ReferenceChoices func(ref *schema.Schema) []schema.Choice
}

// Generator maps schema field descriptors to form fields.
type Generator struct {
	cfg Config
}

// New validates the configuration against the closed kind set and returns
// the generator.
func New(cfg Config) (*Generator, error) {
	known := make(map[schema.Kind]bool, len(schema.Kinds()))
	for _, k := range schema.Kinds() {
		known[k] = true
	}
	for k := range cfg.FieldOverrides {
		if !known[k] {
			return nil, fmt.Errorf("generator: field override for unknown kind %q", k)
		}
	}
	for k := range cfg.WidgetOverrides {
		if !known[k] {
			return nil, fmt.Errorf("generator: widget override for unknown kind %q", k)
		}
	}
	return &Generator{cfg: cfg}, nil
}

// MustNew panics on a bad configuration. Useful for package-level wiring.
func MustNew(cfg Config) *Generator {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// Default returns a generator with the built-in mapping and no overrides.
func Default() *Generator { return MustNew(Config{Fallback: true}) }

// Dynamic returns the default generator with repeatable-entry list widgets.
func Dynamic() *Generator { return MustNew(Config{Fallback: true, DynamicLists: true}) }

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate resolves the descriptor into a form field. Kinds a form cannot
// carry as a single input (embedded documents, object ids, containers of
// embedded documents) generate nil without error and are skipped by the form
// layer.
func (g *Generator) Generate(f *schema.Field) (fields.Field, error) {
	field, err := g.generate(f)
	if err != nil && g.cfg.Fallback {
		return g.fallbackField(f), nil
	}
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, nil
	}
	if factory, ok := g.cfg.WidgetOverrides[f.Kind.Normalize()]; ok {
		setWidget(field, factory(f))
		return field, nil
	}
	if g.cfg.Registry != nil {
		if w, ok := g.cfg.Registry.Resolve(f); ok {
			setWidget(field, w)
		}
	}
	return field, nil
}

func setWidget(field fields.Field, w widgets.Widget) {
	if setter, ok := field.(interface{ SetWidget(widgets.Widget) }); ok {
		setter.SetWidget(w)
	}
}

func (g *Generator) generate(f *schema.Field) (fields.Field, error) {
	kind := f.Kind.Normalize()

	if factory, ok := g.cfg.FieldOverrides[kind]; ok {
		return factory(f, g)
	}

	switch kind {
	case schema.KindEmbedded, schema.KindObjectID:
		return nil, nil
	case schema.KindString:
		return g.stringField(f), nil
	case schema.KindEmail:
		return &fields.Email{Char: *fields.NewChar(g.base(f, &widgets.TextInput{Type: "email"}), f.MinLength, f.MaxLength, nil)}, nil
	case schema.KindURL:
		return &fields.URL{Char: *fields.NewChar(g.base(f, &widgets.TextInput{Type: "url"}), f.MinLength, f.MaxLength, nil)}, nil
	case schema.KindInt:
		return g.intField(f), nil
	case schema.KindFloat:
		return &fields.Float{Base: g.base(f, &widgets.TextInput{Type: "number"}), MinValue: f.MinValue, MaxValue: f.MaxValue}, nil
	case schema.KindDecimal:
		return &fields.Decimal{Base: g.base(f, &widgets.TextInput{Type: "number"}), Precision: f.Precision}, nil
	case schema.KindBool:
		return g.boolField(f), nil
	case schema.KindDateTime:
		return &fields.DateTime{Base: g.base(f, &widgets.SplitDateTime{})}, nil
	case schema.KindReference:
		return g.referenceField(f)
	case schema.KindList:
		return g.listField(f)
	case schema.KindMap:
		return g.mapField(f)
	case schema.KindFile:
		return &fields.File{Base: g.base(f, &widgets.FileInput{})}, nil
	default:
		return nil, fmt.Errorf("generator: kind %q has no field mapping", f.Kind)
	}
}

func (g *Generator) base(f *schema.Field, w widgets.Widget) fields.Base {
	return fields.NewBase(f.Label(), f.HelpText, f.Required, f.Default, w)
}

func (g *Generator) fallbackField(f *schema.Field) fields.Field {
	return fields.NewChar(g.base(f, widgets.NewTextInput()), f.MinLength, f.MaxLength, nil)
}

func (g *Generator) stringField(f *schema.Field) fields.Field {
	if len(f.Choices) > 0 {
		return &fields.TypedChoice{
			Base:    g.base(f, &widgets.Select{Choices: f.Choices}),
			Choices: f.Choices,
			Coerce:  nil,
		}
	}
	if f.MaxLength == 0 {
		// Unbounded strings render long, the textarea convention.
		return fields.NewChar(g.base(f, &widgets.Textarea{}), f.MinLength, 0, f.CompiledPattern())
	}
	return fields.NewChar(g.base(f, widgets.NewTextInput()), f.MinLength, f.MaxLength, f.CompiledPattern())
}

func (g *Generator) intField(f *schema.Field) fields.Field {
	if len(f.Choices) > 0 {
		return &fields.TypedChoice{
			Base:    g.base(f, &widgets.Select{Choices: f.Choices}),
			Choices: f.Choices,
			Coerce: func(s string) (any, error) {
				return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			},
		}
	}
	return &fields.Integer{Base: g.base(f, &widgets.TextInput{Type: "number"}), MinValue: f.MinValue, MaxValue: f.MaxValue}
}

func (g *Generator) boolField(f *schema.Field) fields.Field {
	if len(f.Choices) > 0 {
		return &fields.TypedChoice{
			Base:    g.base(f, &widgets.Select{Choices: f.Choices}),
			Choices: f.Choices,
			Coerce: func(s string) (any, error) {
				return strings.EqualFold(s, "true") || s == "1", nil
			},
		}
	}
	return &fields.Boolean{Base: g.base(f, &widgets.CheckboxInput{})}
}

func (g *Generator) referenceField(f *schema.Field) (fields.Field, error) {
	ref, choices, err := g.resolveRef(f)
	if err != nil {
		return nil, err
	}
	return &fields.Reference{
		Base:   g.base(f, &widgets.Select{Choices: choices}),
		Finder: g.cfg.Finder,
		Ref:    ref,
	}, nil
}

func (g *Generator) resolveRef(f *schema.Field) (*schema.Schema, []schema.Choice, error) {
	ref := g.cfg.Schemas[f.Ref]
	if ref == nil && g.cfg.Finder != nil {
		return nil, nil, fmt.Errorf("generator: reference field %q names unregistered schema %q", f.Name, f.Ref)
	}
	var choices []schema.Choice
	if ref != nil && g.cfg.ReferenceChoices != nil {
		choices = g.cfg.ReferenceChoices(ref)
	}
	return ref, choices, nil
}

func (g *Generator) listField(f *schema.Field) (fields.Field, error) {
	elem := f.Elem
	switch elem.Kind.Normalize() {
	case schema.KindEmbedded:
		// Embedded documents need their own form, not a list input.
		return nil, nil
	case schema.KindReference:
		ref, choices, err := g.resolveRef(elem)
		if err != nil {
			return nil, err
		}
		return &fields.MultiReference{
			Base:   g.base(f, &widgets.SelectMultiple{Choices: choices}),
			Finder: g.cfg.Finder,
			Ref:    ref,
		}, nil
	}
	if len(elem.Choices) > 0 {
		return &fields.MultiChoice{
			Base:    g.base(f, &widgets.SelectMultiple{Choices: elem.Choices}),
			Choices: elem.Choices,
		}, nil
	}

	elemField, err := g.Generate(elem)
	if err != nil {
		return nil, err
	}
	if elemField == nil {
		return nil, nil
	}
	var listWidget widgets.Widget = widgets.NewListWidget(elemField.Widget())
	if g.cfg.DynamicLists {
		listWidget = widgets.NewDynamicListWidget(elemField.Widget())
	}
	return &fields.List{Base: g.base(f, listWidget), Elem: elemField}, nil
}

func (g *Generator) mapField(f *schema.Field) (fields.Field, error) {
	if f.Elem.Kind.Normalize() == schema.KindEmbedded {
		return nil, nil
	}
	elemField, err := g.Generate(f.Elem)
	if err != nil {
		return nil, err
	}
	if elemField == nil {
		return nil, nil
	}
	return &fields.Map{
		Base: g.base(f, widgets.NewMapWidget(elemField.Widget())),
		Elem: elemField,
	}, nil
}
