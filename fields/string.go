package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/fieldkit/sanitizer"
	"github.com/dmitrymomot/fieldkit/validator"
)

func stringFromValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

// String accepts textual input, coercing numbers to their decimal form.
// Blank input is rejected up front unless AllowBlank is set, and never
// reaches the validator pipeline.
type String struct {
	AllowBlank bool
	Trim       bool
	MinLength  int
	MaxLength  int

	// Sanitize runs after coercion and trimming, in order.
	Sanitize []func(string) string
}

func (*String) Name() string { return "string" }

func (*String) Messages() map[string]string {
	return map[string]string{
		"invalid":    "Not a valid string.",
		"blank":      "This field may not be blank.",
		"min_length": "Ensure this field has at least %{min_length} characters.",
		"max_length": "Ensure this field has no more than %{max_length} characters.",
	}
}

// Blank is decided before presence and null handling so that empty strings
// are never coerced to null for text fields.
func (s *String) preValidate(f *Field, raw any) (any, bool, error) {
	str, ok := raw.(string)
	if !ok {
		return nil, false, nil
	}
	if str != "" && !(s.Trim && strings.TrimSpace(str) == "") {
		return nil, false, nil
	}
	if !s.AllowBlank {
		return nil, true, f.Fail("blank")
	}
	return "", true, nil
}

func (*String) coerceBlankToNull() bool { return false }
func (*String) initialValue() any       { return "" }

func (s *String) fieldRules(f *Field) []validator.Rule {
	var rules []validator.Rule
	if s.MinLength > 0 {
		rules = append(rules, f.bound(
			validator.MinLength(s.MinLength), "min_length", map[string]any{"min_length": s.MinLength},
		))
	}
	if s.MaxLength > 0 {
		rules = append(rules, f.bound(
			validator.MaxLength(s.MaxLength), "max_length", map[string]any{"max_length": s.MaxLength},
		))
	}
	return rules
}

func (s *String) Parse(f *Field, value any) (any, error) {
	str, ok := stringFromValue(value)
	if !ok {
		return nil, f.Fail("invalid")
	}
	if s.Trim {
		str = strings.TrimSpace(str)
	}
	if len(s.Sanitize) > 0 {
		str = sanitizer.Apply(str, s.Sanitize...)
	}
	return str, nil
}

func (*String) Format(f *Field, value any) (any, error) {
	str, ok := stringFromValue(value)
	if !ok {
		return nil, f.Fail("invalid")
	}
	return str, nil
}

// Email is String plus address validation. Values are stripped of
// surrounding whitespace in both directions.
type Email struct {
	String
}

func (*Email) Name() string { return "email" }

func (e *Email) Messages() map[string]string {
	return mergeMessages(e.String.Messages(), map[string]string{
		"invalid": "Enter a valid email address.",
	})
}

func (e *Email) fieldRules(f *Field) []validator.Rule {
	rules := e.String.fieldRules(f)
	return append(rules, f.bound(validator.ValidEmail(), "invalid", nil))
}

func (e *Email) Parse(f *Field, value any) (any, error) {
	v, err := e.String.Parse(f, value)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(v.(string)), nil
}

func (e *Email) Format(f *Field, value any) (any, error) {
	v, err := e.String.Format(f, value)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(v.(string)), nil
}

// Regex is String constrained by a compiled pattern.
type Regex struct {
	String
	Pattern *regexp.Regexp
}

func (*Regex) Name() string { return "regex" }

func (r *Regex) Messages() map[string]string {
	return mergeMessages(r.String.Messages(), map[string]string{
		"invalid": "This value does not match the required pattern.",
	})
}

func (r *Regex) construct(f *Field) {
	if r.Pattern == nil {
		panic("fields: Regex requires a compiled pattern")
	}
}

func (r *Regex) fieldRules(f *Field) []validator.Rule {
	rules := r.String.fieldRules(f)
	return append(rules, f.bound(validator.MatchRegex(r.Pattern), "invalid", nil))
}

// Slug is String restricted to letters, numbers, underscores and hyphens.
type Slug struct {
	String
}

func (*Slug) Name() string { return "slug" }

func (s *Slug) Messages() map[string]string {
	return mergeMessages(s.String.Messages(), map[string]string{
		"invalid": "Enter a valid \"slug\" consisting of letters, numbers, underscores or hyphens.",
	})
}

func (s *Slug) fieldRules(f *Field) []validator.Rule {
	rules := s.String.fieldRules(f)
	return append(rules, f.bound(validator.ValidSlug(), "invalid", nil))
}

// URL is String restricted to absolute http or https URLs.
type URL struct {
	String
}

func (*URL) Name() string { return "url" }

func (u *URL) Messages() map[string]string {
	return mergeMessages(u.String.Messages(), map[string]string{
		"invalid": "Enter a valid URL.",
	})
}

func (u *URL) fieldRules(f *Field) []validator.Rule {
	rules := u.String.fieldRules(f)
	return append(rules, f.bound(validator.ValidURL(), "invalid", nil))
}
