package choices

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/schema"
)

var countries = []schema.Choice{
	{Value: "ar", Label: "Argentina"},
	{Value: "br", Label: "Brazil"},
	{Value: "de", Label: "Germany"},
	{Value: "es", Label: "Spain"},
	{Value: "se", Label: "Sweden"},
}

func TestSearchPrefixMatchesFirst(t *testing.T) {
	opts := NewOptions(WithChoices(countries))
	got := Search(countries, "s", 10, opts)

	want := []schema.Choice{
		{Value: "es", Label: "Spain"},
		{Value: "se", Label: "Sweden"},
		{Value: "ar", Label: "Argentina"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchEmptyQueryModes(t *testing.T) {
	opts := NewOptions(WithChoices(countries))
	if got := Search(countries, "", 10, opts); got != nil {
		t.Fatalf("empty query with mode none returned %v", got)
	}

	opts.EmptySearchMode = EmptySearchTop
	got := Search(countries, "", 2, opts)
	if len(got) != 2 || got[0].Value != "ar" {
		t.Fatalf("empty query with mode top returned %v", got)
	}
}

func TestSearchClampsLimit(t *testing.T) {
	opts := NewOptions(WithChoices(countries))
	opts.MaxLimit = 1
	if got := Search(countries, "a", 50, opts); len(got) != 1 {
		t.Fatalf("limit not clamped, got %v", got)
	}
}

func TestHandlerServesJSON(t *testing.T) {
	h := Handler(WithChoices(countries))

	req := httptest.NewRequest(http.MethodGet, "/api/choices?q=germ", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data []schema.Choice `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Value != "de" {
		t.Fatalf("data = %v", body.Data)
	}
}

func TestHandlerRejectsWrites(t *testing.T) {
	h := Handler(WithChoices(countries))
	req := httptest.NewRequest(http.MethodPost, "/api/choices", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerGuardStatus(t *testing.T) {
	h := Handler(WithChoices(countries), WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/choices?q=a", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/forms", WithChoices(countries))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/forms/api/choices" {
		t.Fatalf("pattern = %q", pattern)
	}
}
