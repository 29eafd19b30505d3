package fields

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/woodsbury/decimal128"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/schema"
	"github.com/goliatone/go-docforms/pkg/widgets"
)

func base(required bool) Base {
	return NewBase("Field", "", required, nil, nil)
}

func TestChar_Clean(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		field   *Char
		value   any
		want    any
		wantErr string
	}{
		{"plain", NewChar(base(false), 0, 0, nil), "hello", "hello", ""},
		{"empty optional", NewChar(base(false), 0, 0, nil), "", nil, ""},
		{"empty required", NewChar(base(true), 0, 0, nil), "", nil, CodeRequired},
		{"too short", NewChar(base(false), 3, 0, nil), "ab", nil, CodeMinLength},
		{"too long", NewChar(base(false), 0, 3, nil), "abcd", nil, CodeMaxLength},
		{"multibyte counts runes", NewChar(base(false), 0, 5, nil), "héllo", "héllo", ""},
		{"multibyte too long", NewChar(base(false), 0, 4, nil), "héllo", nil, CodeMaxLength},
		{"pattern miss", NewChar(base(false), 0, 0, regexp.MustCompile(`^[a-z]+$`)), "abc1", nil, CodeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.field.Clean(ctx, tc.value)
			checkCleanResult(t, got, err, tc.want, tc.wantErr)
		})
	}
}

func checkCleanResult(t *testing.T, got any, err error, want any, wantCode string) {
	t.Helper()
	if wantCode == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("cleaned value mismatch (-want +got):\n%s", diff)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected %s error, got value %v", wantCode, got)
	}
	var fieldErr *Error
	if ok := asFieldError(err, &fieldErr); !ok || fieldErr.Code != wantCode {
		t.Fatalf("error = %v, want code %s", err, wantCode)
	}
}

func asFieldError(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}

func TestInteger_Clean(t *testing.T) {
	ctx := context.Background()
	minValue, maxValue := 1.0, 10.0
	f := &Integer{Base: base(false), MinValue: &minValue, MaxValue: &maxValue}

	if got, err := f.Clean(ctx, "7"); err != nil || got != int64(7) {
		t.Fatalf("clean 7 = %v, %v", got, err)
	}
	if _, err := f.Clean(ctx, "abc"); err == nil {
		t.Fatal("expected invalid error for non-number")
	}
	if _, err := f.Clean(ctx, "0"); err == nil {
		t.Fatal("expected min_value error")
	}
	if _, err := f.Clean(ctx, "11"); err == nil {
		t.Fatal("expected max_value error")
	}
}

func TestBoolean_Clean(t *testing.T) {
	ctx := context.Background()
	f := &Boolean{Base: base(false)}
	if got, err := f.Clean(ctx, true); err != nil || got != true {
		t.Fatalf("clean true = %v, %v", got, err)
	}
	if got, err := f.Clean(ctx, false); err != nil || got != false {
		t.Fatalf("clean false = %v, %v", got, err)
	}

	required := &Boolean{Base: base(true)}
	if _, err := required.Clean(ctx, false); err == nil {
		t.Fatal("required boolean must reject unchecked")
	}
}

func TestTypedChoice_Clean(t *testing.T) {
	ctx := context.Background()
	f := &TypedChoice{
		Base:    base(false),
		Choices: []schema.Choice{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}},
		Coerce: func(s string) (any, error) {
			if s == "1" {
				return int64(1), nil
			}
			return int64(2), nil
		},
	}
	if got, err := f.Clean(ctx, "1"); err != nil || got != int64(1) {
		t.Fatalf("clean 1 = %v, %v", got, err)
	}
	if _, err := f.Clean(ctx, "3"); err == nil {
		t.Fatal("expected invalid_choice error")
	}
}

func TestDateTime_Clean(t *testing.T) {
	ctx := context.Background()
	f := &DateTime{Base: base(false)}

	got, err := f.Clean(ctx, [2]string{"2024-05-01", "13:30"})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	want := time.Date(2024, time.May, 1, 13, 30, 0, 0, time.UTC)
	if parsed, ok := got.(time.Time); !ok || !parsed.Equal(want) {
		t.Fatalf("cleaned datetime = %v, want %v", got, want)
	}

	if got, err := f.Clean(ctx, [2]string{"", ""}); err != nil || got != nil {
		t.Fatalf("blank pair = %v, %v", got, err)
	}
	if _, err := f.Clean(ctx, [2]string{"not-a-date", ""}); err == nil {
		t.Fatal("expected invalid date error")
	}
}

type fakeFinder struct {
	known map[string]bool
}

func (f *fakeFinder) Get(context.Context, *schema.Schema, string) (*document.Document, error) {
	return nil, document.ErrNotFound
}

func (f *fakeFinder) Exists(_ context.Context, _ *schema.Schema, id string) (bool, error) {
	return f.known[id], nil
}

func TestReference_Clean(t *testing.T) {
	ctx := context.Background()
	ref := schema.MustNew("user", &schema.Field{Name: "name", Kind: schema.KindString})
	f := &Reference{Base: base(false), Finder: &fakeFinder{known: map[string]bool{"u1": true}}, Ref: ref}

	if got, err := f.Clean(ctx, "u1"); err != nil || got != "u1" {
		t.Fatalf("clean known id = %v, %v", got, err)
	}
	if _, err := f.Clean(ctx, "nope"); err == nil {
		t.Fatal("expected invalid_choice for unknown id")
	}
	if got, err := f.Clean(ctx, ""); err != nil || got != nil {
		t.Fatalf("optional empty reference = %v, %v", got, err)
	}
}

func TestList_Clean_SkipsBlankEntries(t *testing.T) {
	ctx := context.Background()
	f := &List{Base: base(false), Elem: NewChar(base(false), 0, 0, nil)}

	// Two populated entries, one blank in the middle, one trailing blank:
	// exactly the populated entries survive.
	got, err := f.Clean(ctx, []any{"go", "", "forms", ""})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if diff := cmp.Diff([]any{"go", "forms"}, got); diff != "" {
		t.Fatalf("cleaned list mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Clean_CollectsEntryErrors(t *testing.T) {
	ctx := context.Background()
	f := &List{Base: base(false), Elem: &Integer{Base: base(false)}}

	_, err := f.Clean(ctx, []any{"1", "oops", "3", "bad"})
	if err == nil {
		t.Fatal("expected entry errors")
	}
	msgs := Messages(err)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 entry errors, got %d: %v", len(msgs), msgs)
	}
}

func TestList_Clean_RequiredRejectsAllBlank(t *testing.T) {
	ctx := context.Background()
	f := &List{Base: base(true), Elem: NewChar(base(false), 0, 0, nil)}
	if _, err := f.Clean(ctx, []any{"", ""}); err == nil {
		t.Fatal("required list of blanks must fail")
	}
}

func TestMap_Clean(t *testing.T) {
	ctx := context.Background()
	f := &Map{Base: base(false), Elem: NewChar(base(false), 0, 0, nil)}

	got, err := f.Clean(ctx, []widgets.MapEntry{
		{Key: "lang", Value: "en"},
		{Key: "empty", Value: ""},
	})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"lang": "en"}, got); diff != "" {
		t.Fatalf("cleaned map mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_Clean(t *testing.T) {
	ctx := context.Background()
	f := &File{Base: base(true)}

	if _, err := f.Clean(ctx, (*widgets.File)(nil)); err == nil {
		t.Fatal("required file must reject missing upload")
	}
	upload := &widgets.File{Name: "a.txt"}
	if got, err := f.Clean(ctx, upload); err != nil || got != upload {
		t.Fatalf("clean upload = %v, %v", got, err)
	}
}

func TestDecimal_Clean(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		field   *Decimal
		value   any
		want    string
		wantErr string
	}{
		{"plain", &Decimal{Base: base(false)}, "1.5", "1.5", ""},
		{"within precision", &Decimal{Base: base(false), Precision: 2}, "1.23", "1.23", ""},
		{"too many places", &Decimal{Base: base(false), Precision: 2}, "1.23456", "", CodeMaxDecimalPlaces},
		{"exponent counts places", &Decimal{Base: base(false), Precision: 2}, "123e-3", "", CodeMaxDecimalPlaces},
		{"positive exponent", &Decimal{Base: base(false), Precision: 2}, "1.2345e2", "123.45", ""},
		{"not a number", &Decimal{Base: base(false)}, "twelve", "", CodeInvalid},
		{"empty required", &Decimal{Base: base(true)}, "", "", CodeRequired},
		{"empty optional", &Decimal{Base: base(false), Precision: 2}, "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.field.Clean(ctx, tc.value)
			if tc.wantErr != "" {
				var fieldErr *Error
				if err == nil || !asFieldError(err, &fieldErr) || fieldErr.Code != tc.wantErr {
					t.Fatalf("error = %v, want code %s", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want == "" {
				if got != nil {
					t.Fatalf("cleaned value = %v, want nil", got)
				}
				return
			}
			d, ok := got.(decimal128.Decimal)
			if !ok {
				t.Fatalf("cleaned value is %T", got)
			}
			var want decimal128.Decimal
			if err := want.UnmarshalText([]byte(tc.want)); err != nil {
				t.Fatalf("parse want: %v", err)
			}
			if d.String() != want.String() {
				t.Fatalf("cleaned = %s, want %s", d, want)
			}
		})
	}
}
