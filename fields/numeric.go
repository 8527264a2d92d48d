package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/fieldkit/validator"
)

// Int64 returns a pointer to v, for optional bounds.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v, for optional bounds.
func Float64(v float64) *float64 { return &v }

// maxNumericString caps string input length for the numeric parsers.
const maxNumericString = 1000

func failOversizedString(f *Field, value any) error {
	if s, ok := value.(string); ok && len(s) > maxNumericString {
		return f.Fail("max_string_length")
	}
	return nil
}

func numberAsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Integer coerces whole-number input to int64. Strings parse after trimming,
// and floats are accepted only when they carry no fractional part, which is
// how JSON integers arrive from a decoder.
type Integer struct {
	MinValue *int64
	MaxValue *int64
}

func (*Integer) Name() string { return "integer" }

func (*Integer) Messages() map[string]string {
	return map[string]string{
		"invalid":           "A valid integer is required.",
		"min_value":         "Ensure this value is greater than or equal to %{min_value}.",
		"max_value":         "Ensure this value is less than or equal to %{max_value}.",
		"max_string_length": "String value too large.",
	}
}

func (i *Integer) fieldRules(f *Field) []validator.Rule {
	var rules []validator.Rule
	if i.MinValue != nil {
		rules = append(rules, f.bound(
			validator.MinValue(*i.MinValue), "min_value", map[string]any{"min_value": *i.MinValue},
		))
	}
	if i.MaxValue != nil {
		rules = append(rules, f.bound(
			validator.MaxValue(*i.MaxValue), "max_value", map[string]any{"max_value": *i.MaxValue},
		))
	}
	return rules
}

func (*Integer) Parse(f *Field, value any) (any, error) {
	if err := failOversizedString(f, value); err != nil {
		return nil, err
	}
	if n, ok := intFromValue(value); ok {
		return n, nil
	}
	return nil, f.Fail("invalid")
}

func (*Integer) Format(f *Field, value any) (any, error) {
	if n, ok := intFromValue(value); ok {
		return n, nil
	}
	return nil, f.Fail("invalid")
}

func intFromValue(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return intFromFloat(float64(v))
	case float64:
		return intFromFloat(v)
	case bool:
		return 0, false
	}
	if s, ok := stringFromValue(value); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func intFromFloat(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Float coerces numeric input to float64. Strings parse after trimming.
type Float struct {
	MinValue *float64
	MaxValue *float64
}

func (*Float) Name() string { return "float" }

func (*Float) Messages() map[string]string {
	return map[string]string{
		"invalid":           "A valid number is required.",
		"min_value":         "Ensure this value is greater than or equal to %{min_value}.",
		"max_value":         "Ensure this value is less than or equal to %{max_value}.",
		"max_string_length": "String value too large.",
	}
}

func (fl *Float) fieldRules(f *Field) []validator.Rule {
	var rules []validator.Rule
	if fl.MinValue != nil {
		rules = append(rules, f.bound(
			validator.MinValue(*fl.MinValue), "min_value", map[string]any{"min_value": *fl.MinValue},
		))
	}
	if fl.MaxValue != nil {
		rules = append(rules, f.bound(
			validator.MaxValue(*fl.MaxValue), "max_value", map[string]any{"max_value": *fl.MaxValue},
		))
	}
	return rules
}

func (*Float) Parse(f *Field, value any) (any, error) {
	if err := failOversizedString(f, value); err != nil {
		return nil, err
	}
	if n, ok := floatFromValue(value); ok {
		return n, nil
	}
	return nil, f.Fail("invalid")
}

func (*Float) Format(f *Field, value any) (any, error) {
	if n, ok := floatFromValue(value); ok {
		return n, nil
	}
	return nil, f.Fail("invalid")
}

func floatFromValue(value any) (float64, bool) {
	if _, isBool := value.(bool); isBool {
		return 0, false
	}
	if n, ok := numberAsFloat(value); ok {
		return n, true
	}
	if s, ok := stringFromValue(value); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
