package fields

import (
	"context"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/woodsbury/decimal128"

	"github.com/goliatone/go-docforms/pkg/widgets"
)

// Char validates free text with optional length bounds and pattern.
type Char struct {
	Base
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// NewChar builds a text field. A zero MaxLength means unbounded and renders
// as a textarea, matching the long-string convention.
func NewChar(base Base, minLength, maxLength int, pattern *regexp.Regexp) *Char {
	return &Char{Base: base, MinLength: minLength, MaxLength: maxLength, Pattern: pattern}
}

func (f *Char) Clean(ctx context.Context, value any) (any, error) {
	s, present, err := cleanString(value)
	if err != nil {
		return nil, err
	}
	if !present {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	if f.MinLength > 0 && utf8.RuneCountInString(s) < f.MinLength {
		return nil, Errf(CodeMinLength, "Ensure this value has at least %d characters.", f.MinLength)
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
		return nil, Errf(CodeMaxLength, "Ensure this value has at most %d characters.", f.MaxLength)
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return nil, Errf(CodeInvalid, "Enter a valid value.")
	}
	return s, nil
}

// Email validates an address with net/mail.
type Email struct {
	Char
}

func (f *Email) Clean(ctx context.Context, value any) (any, error) {
	cleaned, err := f.Char.Clean(ctx, value)
	if err != nil || cleaned == nil {
		return cleaned, err
	}
	s := cleaned.(string)
	if _, err := mail.ParseAddress(s); err != nil {
		return nil, Errf(CodeInvalid, "Enter a valid email address.")
	}
	return s, nil
}

// URL validates an absolute http(s) URL.
type URL struct {
	Char
}

func (f *URL) Clean(ctx context.Context, value any) (any, error) {
	cleaned, err := f.Char.Clean(ctx, value)
	if err != nil || cleaned == nil {
		return cleaned, err
	}
	s := cleaned.(string)
	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, Errf(CodeInvalid, "Enter a valid URL.")
	}
	return s, nil
}

// Integer parses whole numbers with optional bounds.
type Integer struct {
	Base
	MinValue *float64
	MaxValue *float64
}

func (f *Integer) Clean(ctx context.Context, value any) (any, error) {
	s, present, err := cleanString(value)
	if err != nil {
		return nil, err
	}
	if !present {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, Errf(CodeInvalid, "Enter a whole number.")
	}
	if f.MinValue != nil && float64(n) < *f.MinValue {
		return nil, Errf(CodeMinValue, "Ensure this value is greater than or equal to %v.", *f.MinValue)
	}
	if f.MaxValue != nil && float64(n) > *f.MaxValue {
		return nil, Errf(CodeMaxValue, "Ensure this value is less than or equal to %v.", *f.MaxValue)
	}
	return n, nil
}

// Float parses real numbers with optional bounds.
type Float struct {
	Base
	MinValue *float64
	MaxValue *float64
}

func (f *Float) Clean(ctx context.Context, value any) (any, error) {
	s, present, err := cleanString(value)
	if err != nil {
		return nil, err
	}
	if !present {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, Errf(CodeInvalid, "Enter a number.")
	}
	if f.MinValue != nil && n < *f.MinValue {
		return nil, Errf(CodeMinValue, "Ensure this value is greater than or equal to %v.", *f.MinValue)
	}
	if f.MaxValue != nil && n > *f.MaxValue {
		return nil, Errf(CodeMaxValue, "Ensure this value is less than or equal to %v.", *f.MaxValue)
	}
	return n, nil
}

// Decimal parses exact decimal values into decimal128.
type Decimal struct {
	Base
	Precision int
}

func (f *Decimal) Clean(ctx context.Context, value any) (any, error) {
	s, present, err := cleanString(value)
	if err != nil {
		return nil, err
	}
	if !present {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	trimmed := strings.TrimSpace(s)
	var d decimal128.Decimal
	if err := d.UnmarshalText([]byte(trimmed)); err != nil {
		return nil, Errf(CodeInvalid, "Enter a decimal number.")
	}
	if f.Precision > 0 && decimalPlaces(trimmed) > f.Precision {
		return nil, Errf(CodeMaxDecimalPlaces,
			"Ensure that there are no more than %d decimal places.", f.Precision)
	}
	return d, nil
}

// decimalPlaces counts the fractional digits of a decimal literal,
// exponent-adjusted so "123e-2" counts as two places.
func decimalPlaces(s string) int {
	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		if v, err := strconv.Atoi(s[i+1:]); err == nil {
			exp = v
		}
	}
	places := 0
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		places = len(mantissa) - i - 1
	}
	places -= exp
	if places < 0 {
		return 0
	}
	return places
}

// Boolean cleans a checkbox value. Required means the box must be checked.
type Boolean struct {
	Base
}

func (f *Boolean) Clean(ctx context.Context, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		s, present, err := cleanString(value)
		if err != nil {
			return nil, err
		}
		if !present {
			b = false
		} else {
			b = strings.EqualFold(s, "true") || s == "1" || strings.EqualFold(s, "on")
		}
	}
	if f.Required() && !b {
		return nil, requiredError()
	}
	return b, nil
}

// Accepted datetime layouts for the split date + time inputs.
var (
	dateLayouts = []string{"2006-01-02"}
	timeLayouts = []string{"15:04:05", "15:04"}
)

// DateTime cleans the [date, time] pair of a SplitDateTime widget into a
// time.Time.
type DateTime struct {
	Base
}

func (f *DateTime) Clean(ctx context.Context, value any) (any, error) {
	pair, ok := value.([2]string)
	if !ok {
		if s, present, err := cleanString(value); err != nil {
			return nil, err
		} else if !present {
			pair = [2]string{}
		} else {
			parts := strings.SplitN(s, "T", 2)
			pair[0] = parts[0]
			if len(parts) == 2 {
				pair[1] = parts[1]
			}
		}
	}
	if pair[0] == "" && pair[1] == "" {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	if pair[0] == "" {
		return nil, Errf(CodeInvalid, "Enter a valid date.")
	}

	date, err := parseAny(pair[0], dateLayouts)
	if err != nil {
		return nil, Errf(CodeInvalid, "Enter a valid date.")
	}
	if pair[1] == "" {
		return date, nil
	}
	clock, err := parseAny(pair[1], timeLayouts)
	if err != nil {
		return nil, Errf(CodeInvalid, "Enter a valid time.")
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

func parseAny(value string, layouts []string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// File validates an uploaded file extracted by a FileInput widget.
type File struct {
	Base
}

func (f *File) Clean(ctx context.Context, value any) (any, error) {
	upload, ok := value.(*widgets.File)
	if !ok || upload == nil {
		if f.Required() {
			return nil, requiredError()
		}
		return nil, nil
	}
	if upload.Name == "" {
		return nil, Errf(CodeInvalid, "The submitted file has no name.")
	}
	return upload, nil
}
