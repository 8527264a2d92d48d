package fields

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/fieldkit/validator"
)

const durationHuman = "72h3m0.5s, or a plain number of seconds"

// Duration coerces input to time.Duration. Strings use Go duration notation
// ("1h30m", "250ms"); bare numbers read as seconds.
type Duration struct {
	MinValue *time.Duration
	MaxValue *time.Duration
}

func (*Duration) Name() string { return "duration" }

func (*Duration) Messages() map[string]string {
	return map[string]string{
		"invalid":   "Duration has wrong format. Use one of these formats instead: %{format}",
		"min_value": "Ensure this value is greater than or equal to %{min_value}.",
		"max_value": "Ensure this value is less than or equal to %{max_value}.",
	}
}

func (d *Duration) fieldRules(f *Field) []validator.Rule {
	var rules []validator.Rule
	if d.MinValue != nil {
		rules = append(rules, f.bound(
			validator.MinValue(*d.MinValue), "min_value", map[string]any{"min_value": *d.MinValue},
		))
	}
	if d.MaxValue != nil {
		rules = append(rules, f.bound(
			validator.MaxValue(*d.MaxValue), "max_value", map[string]any{"max_value": *d.MaxValue},
		))
	}
	return rules
}

func (*Duration) Parse(f *Field, value any) (any, error) {
	if dur, ok := durationFromValue(value); ok {
		return dur, nil
	}
	return nil, f.Fail("invalid", "format", durationHuman)
}

func (*Duration) Format(f *Field, value any) (any, error) {
	if dur, ok := durationFromValue(value); ok {
		return dur.String(), nil
	}
	return nil, f.Fail("invalid", "format", durationHuman)
}

func durationFromValue(value any) (time.Duration, bool) {
	switch v := value.(type) {
	case time.Duration:
		return v, true
	case string:
		if dur, err := time.ParseDuration(v); err == nil {
			return dur, true
		}
		if secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return time.Duration(secs * float64(time.Second)), true
		}
	default:
		if n, ok := numberAsFloat(value); ok {
			return time.Duration(n * float64(time.Second)), true
		}
	}
	return 0, false
}
