package widgets

import (
	"strings"
	"testing"

	"github.com/goliatone/go-docforms/pkg/schema"
)

func TestRegistryResolvesExplicitHint(t *testing.T) {
	reg := NewRegistry()
	field := &schema.Field{Name: "token", Kind: schema.KindString, Widget: WidgetPassword}

	w, ok := reg.Resolve(field)
	if !ok {
		t.Fatal("expected hint to resolve")
	}
	if out := w.Render("token", "", nil); !strings.Contains(out, `type="password"`) {
		t.Fatalf("resolved widget renders %q", out)
	}
}

func TestRegistryUnknownHintDoesNotResolve(t *testing.T) {
	reg := NewRegistry()
	field := &schema.Field{Name: "token", Kind: schema.KindString, Widget: "no-such-widget"}
	if _, ok := reg.Resolve(field); ok {
		t.Fatal("unknown hint must not resolve")
	}
}

func TestRegistryMatcherPriority(t *testing.T) {
	reg := NewRegistry()
	isSecret := func(f *schema.Field) bool { return strings.Contains(f.Name, "secret") }
	reg.Register("low", 1, func(*schema.Field) Widget { return NewTextInput() }, isSecret)
	reg.Register("high", 5, func(*schema.Field) Widget { return &TextInput{Type: "password"} }, isSecret)

	w, ok := reg.Resolve(&schema.Field{Name: "api_secret", Kind: schema.KindString})
	if !ok {
		t.Fatal("expected matcher to resolve")
	}
	if out := w.Render("api_secret", "", nil); !strings.Contains(out, `type="password"`) {
		t.Fatalf("priority did not win: %q", out)
	}
}

func TestRegistryNoMatchLeavesDefault(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve(&schema.Field{Name: "title", Kind: schema.KindString}); ok {
		t.Fatal("built-ins carry no matchers, nothing should resolve")
	}
}

func TestRegistryNames(t *testing.T) {
	names := NewRegistry().Names()
	if len(names) != 6 {
		t.Fatalf("built-in names = %v", names)
	}
}
