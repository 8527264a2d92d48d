package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MinLength validates that a string is at least min characters long.
// Length is counted in runes, not bytes.
func MinLength(min int) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || utf8.RuneCountInString(s) >= min {
			return nil
		}
		return Errors{{
			Code:    "min_length",
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Params:  map[string]any{"min_length": min},
		}}
	})
}

// MaxLength validates that a string is at most max characters long.
func MaxLength(max int) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || utf8.RuneCountInString(s) <= max {
			return nil
		}
		return Errors{{
			Code:    "max_length",
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Params:  map[string]any{"max_length": max},
		}}
	})
}

// LengthBetween validates that a string length falls inside [min, max].
func LengthBetween(min, max int) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		n := utf8.RuneCountInString(s)
		if n >= min && n <= max {
			return nil
		}
		return Errors{{
			Code:    "length_between",
			Message: fmt.Sprintf("must be between %d and %d characters long", min, max),
			Params:  map[string]any{"min_length": min, "max_length": max},
		}}
	})
}

// MatchRegex validates that a string matches the given pattern.
func MatchRegex(pattern *regexp.Regexp) Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || pattern.MatchString(s) {
			return nil
		}
		return Errors{{
			Code:    "invalid",
			Message: fmt.Sprintf("must match the pattern %q", pattern.String()),
			Params:  map[string]any{"pattern": pattern.String()},
		}}
	})
}

// OneOf validates that a value is one of the allowed values.
func OneOf[T comparable](allowed ...T) Rule {
	return RuleFunc(func(value any) error {
		v, ok := value.(T)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return Errors{{
			Code:    "invalid_choice",
			Message: fmt.Sprintf("%v is not an allowed value", v),
			Params:  map[string]any{"input": v},
		}}
	})
}
