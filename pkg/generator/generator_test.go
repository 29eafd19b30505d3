package generator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/fields"
	"github.com/goliatone/go-docforms/pkg/schema"
	"github.com/goliatone/go-docforms/pkg/widgets"
)

type failingFinder struct{}

func (failingFinder) Get(context.Context, *schema.Schema, string) (*document.Document, error) {
	return nil, document.ErrNotFound
}

func (failingFinder) Exists(context.Context, *schema.Schema, string) (bool, error) {
	return false, nil
}

// The fixed kind to field-type mapping every scalar kind must honour.
func TestGenerate_ScalarKindMapping(t *testing.T) {
	g := Default()

	cases := []struct {
		field *schema.Field
		want  string
	}{
		{&schema.Field{Name: "a", Kind: schema.KindString, MaxLength: 50}, "*fields.Char"},
		{&schema.Field{Name: "b", Kind: schema.KindString}, "*fields.Char"},
		{&schema.Field{Name: "c", Kind: schema.KindEmail}, "*fields.Email"},
		{&schema.Field{Name: "d", Kind: schema.KindURL}, "*fields.URL"},
		{&schema.Field{Name: "e", Kind: schema.KindInt}, "*fields.Integer"},
		{&schema.Field{Name: "f", Kind: schema.KindFloat}, "*fields.Float"},
		{&schema.Field{Name: "g", Kind: schema.KindDecimal}, "*fields.Decimal"},
		{&schema.Field{Name: "h", Kind: schema.KindBool}, "*fields.Boolean"},
		{&schema.Field{Name: "i", Kind: schema.KindDateTime}, "*fields.DateTime"},
		{&schema.Field{Name: "j", Kind: schema.KindFile}, "*fields.File"},
		{&schema.Field{Name: "k", Kind: schema.KindImage}, "*fields.File"},
		{&schema.Field{Name: "l", Kind: schema.KindString, Choices: []schema.Choice{{Value: "x"}}}, "*fields.TypedChoice"},
		{&schema.Field{Name: "m", Kind: schema.KindInt, Choices: []schema.Choice{{Value: "1"}}}, "*fields.TypedChoice"},
	}

	for _, tc := range cases {
		t.Run(string(tc.field.Kind)+"/"+tc.field.Name, func(t *testing.T) {
			got, err := g.Generate(tc.field)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if typeName := fmt.Sprintf("%T", got); typeName != tc.want {
				t.Fatalf("kind %s generated %s, want %s", tc.field.Kind, typeName, tc.want)
			}
		})
	}
}

func TestGenerate_LongStringRendersTextarea(t *testing.T) {
	g := Default()
	field, err := g.Generate(&schema.Field{Name: "body", Kind: schema.KindString})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := field.Widget().(*widgets.Textarea); !ok {
		t.Fatalf("unbounded string widget = %T, want *widgets.Textarea", field.Widget())
	}
}

func TestGenerate_SkipsEmbeddedAndObjectID(t *testing.T) {
	g := Default()
	embedded := schema.MustNew("address", &schema.Field{Name: "street", Kind: schema.KindString})

	for _, f := range []*schema.Field{
		{Name: "id", Kind: schema.KindObjectID},
		{Name: "address", Kind: schema.KindEmbedded, Embedded: embedded},
		{Name: "addresses", Kind: schema.KindList, Elem: &schema.Field{Kind: schema.KindEmbedded, Embedded: embedded}},
	} {
		field, err := g.Generate(f)
		if err != nil {
			t.Fatalf("generate %s: %v", f.Name, err)
		}
		if field != nil {
			t.Fatalf("kind %s must be skipped, generated %T", f.Kind, field)
		}
	}
}

func TestGenerate_ListWrapsElementField(t *testing.T) {
	g := Default()
	field, err := g.Generate(&schema.Field{
		Name: "scores",
		Kind: schema.KindList,
		Elem: &schema.Field{Name: "scores", Kind: schema.KindInt},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	list, ok := field.(*fields.List)
	if !ok {
		t.Fatalf("list field = %T", field)
	}
	if _, ok := list.Elem.(*fields.Integer); !ok {
		t.Fatalf("list element = %T, want *fields.Integer", list.Elem)
	}
	if _, ok := list.Widget().(*widgets.ListWidget); !ok {
		t.Fatalf("list widget = %T", list.Widget())
	}
}

// A file kind nests inside a container like any other kind.
func TestGenerate_ListOfFiles(t *testing.T) {
	g := Default()
	field, err := g.Generate(&schema.Field{
		Name: "attachments",
		Kind: schema.KindList,
		Elem: &schema.Field{Name: "attachments", Kind: schema.KindFile},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	list, ok := field.(*fields.List)
	if !ok {
		t.Fatalf("field = %T", field)
	}
	if _, ok := list.Elem.(*fields.File); !ok {
		t.Fatalf("list element = %T, want *fields.File", list.Elem)
	}
}

func TestGenerate_DynamicListWidget(t *testing.T) {
	g := Dynamic()
	field, err := g.Generate(&schema.Field{
		Name: "tags",
		Kind: schema.KindList,
		Elem: &schema.Field{Name: "tags", Kind: schema.KindString, MaxLength: 40},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := field.Widget().(*widgets.DynamicListWidget); !ok {
		t.Fatalf("widget = %T, want *widgets.DynamicListWidget", field.Widget())
	}
}

func TestGenerate_OverridesWin(t *testing.T) {
	g := MustNew(Config{
		FieldOverrides: map[schema.Kind]FieldFactory{
			schema.KindString: func(f *schema.Field, g *Generator) (fields.Field, error) {
				return &fields.Boolean{Base: fields.NewBase(f.Label(), "", false, nil, &widgets.CheckboxInput{})}, nil
			},
		},
		WidgetOverrides: map[schema.Kind]WidgetFactory{
			schema.KindInt: func(*schema.Field) widgets.Widget { return &widgets.HiddenInput{} },
		},
	})

	field, err := g.Generate(&schema.Field{Name: "x", Kind: schema.KindString})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := field.(*fields.Boolean); !ok {
		t.Fatalf("field override ignored, got %T", field)
	}

	intField, err := g.Generate(&schema.Field{Name: "n", Kind: schema.KindInt})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := intField.Widget().(*widgets.HiddenInput); !ok {
		t.Fatalf("widget override ignored, got %T", intField.Widget())
	}
}

func TestNew_RejectsUnknownOverrideKind(t *testing.T) {
	_, err := New(Config{
		FieldOverrides: map[schema.Kind]FieldFactory{
			schema.Kind("vector"): func(*schema.Field, *Generator) (fields.Field, error) { return nil, nil },
		},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected construction error, got %v", err)
	}
}

func TestGenerate_ReferenceRequiresRegisteredSchema(t *testing.T) {
	g := MustNew(Config{Finder: failingFinder{}, Schemas: map[string]*schema.Schema{}})
	_, err := g.Generate(&schema.Field{Name: "author", Kind: schema.KindReference, Ref: "user"})
	if err == nil || !strings.Contains(err.Error(), "unregistered schema") {
		t.Fatalf("expected unregistered schema error, got %v", err)
	}
}

func TestGenerate_RegistryResolvesWidgetHint(t *testing.T) {
	g := MustNew(Config{Registry: widgets.NewRegistry()})

	field, err := g.Generate(&schema.Field{
		Name: "token", Kind: schema.KindString, MaxLength: 64,
		Widget: widgets.WidgetPassword,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(field.Widget().Render("token", "", nil), `type="password"`) {
		t.Fatalf("widget hint ignored, got %T", field.Widget())
	}

	plain, err := g.Generate(&schema.Field{Name: "title", Kind: schema.KindString, MaxLength: 64})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := plain.Widget().(*widgets.TextInput); !ok {
		t.Fatalf("hint-free field lost its default widget, got %T", plain.Widget())
	}
}
