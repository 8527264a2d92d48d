package validator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// numericAs converts any integer or float value to the rule's domain type.
// Non-numeric values report false and are left for other rules to judge.
func numericAs[T Numeric](value any) (T, bool) {
	switch v := value.(type) {
	case int:
		return T(v), true
	case time.Duration:
		return T(v), true
	case int8:
		return T(v), true
	case int16:
		return T(v), true
	case int32:
		return T(v), true
	case int64:
		return T(v), true
	case uint:
		return T(v), true
	case uint8:
		return T(v), true
	case uint16:
		return T(v), true
	case uint32:
		return T(v), true
	case uint64:
		return T(v), true
	case float32:
		return T(v), true
	case float64:
		return T(v), true
	}
	var zero T
	return zero, false
}

// MinValue validates that a numeric value is greater than or equal to the minimum.
func MinValue[T Numeric](min T) Rule {
	return RuleFunc(func(value any) error {
		n, ok := numericAs[T](value)
		if !ok || n >= min {
			return nil
		}
		return Errors{{
			Code:    "min_value",
			Message: fmt.Sprintf("must be at least %v", min),
			Params:  map[string]any{"min_value": min},
		}}
	})
}

// MaxValue validates that a numeric value is less than or equal to the maximum.
func MaxValue[T Numeric](max T) Rule {
	return RuleFunc(func(value any) error {
		n, ok := numericAs[T](value)
		if !ok || n <= max {
			return nil
		}
		return Errors{{
			Code:    "max_value",
			Message: fmt.Sprintf("must be at most %v", max),
			Params:  map[string]any{"max_value": max},
		}}
	})
}

// MinDecimal validates that a decimal value is greater than or equal to the minimum.
func MinDecimal(min decimal.Decimal) Rule {
	return RuleFunc(func(value any) error {
		d, ok := value.(decimal.Decimal)
		if !ok || d.GreaterThanOrEqual(min) {
			return nil
		}
		return Errors{{
			Code:    "min_value",
			Message: fmt.Sprintf("must be at least %s", min.String()),
			Params:  map[string]any{"min_value": min.String()},
		}}
	})
}

// MaxDecimal validates that a decimal value is less than or equal to the maximum.
func MaxDecimal(max decimal.Decimal) Rule {
	return RuleFunc(func(value any) error {
		d, ok := value.(decimal.Decimal)
		if !ok || d.LessThanOrEqual(max) {
			return nil
		}
		return Errors{{
			Code:    "max_value",
			Message: fmt.Sprintf("must be at most %s", max.String()),
			Params:  map[string]any{"max_value": max.String()},
		}}
	})
}
