package document

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("article",
		&schema.Field{Name: "title", Kind: schema.KindString, Required: true},
		&schema.Field{Name: "rating", Kind: schema.KindInt, Default: 3},
		&schema.Field{Name: "tags", Kind: schema.KindList, Elem: &schema.Field{Kind: schema.KindString}},
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s
}

func TestDocument_AttributeAccess(t *testing.T) {
	doc := New(testSchema(t))

	if err := doc.Set("title", "hello"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("bogus", 1); err == nil {
		t.Fatal("expected error setting undeclared attribute")
	}

	v, ok := doc.Get("title")
	if !ok || v != "hello" {
		t.Fatalf("get title = %v (ok=%v)", v, ok)
	}

	// Unset attributes fall back to the descriptor default.
	v, ok = doc.Get("rating")
	if !ok || v != 3 {
		t.Fatalf("get rating default = %v (ok=%v)", v, ok)
	}
}

func TestDocument_ToMap(t *testing.T) {
	doc := New(testSchema(t))
	if err := doc.Set("title", "hello"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("rating", 5); err != nil {
		t.Fatalf("set: %v", err)
	}

	got := doc.ToMap(nil, []string{"rating"})
	want := map[string]any{"title": "hello"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToMap mismatch (-want +got):\n%s", diff)
	}
}

func TestMemStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	s := testSchema(t)
	store := NewMemStore()

	doc := New(s)
	if err := doc.Set("title", "stored"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.ID() == "" {
		t.Fatal("save did not assign an id")
	}

	loaded, err := store.Get(ctx, s, doc.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v, _ := loaded.Get("title"); v != "stored" {
		t.Fatalf("loaded title = %v", v)
	}

	// Mutating the loaded copy must not leak back into the store.
	if err := loaded.Set("title", "mutated"); err != nil {
		t.Fatalf("set: %v", err)
	}
	again, err := store.Get(ctx, s, doc.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v, _ := again.Get("title"); v != "stored" {
		t.Fatalf("store snapshot leaked mutation: %v", v)
	}

	ok, err := store.Exists(ctx, s, doc.ID())
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}
	if _, err := store.Get(ctx, s, "missing"); err != ErrNotFound {
		t.Fatalf("missing id error = %v, want ErrNotFound", err)
	}
}
