package fields

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/fieldkit/settings"
	"github.com/dmitrymomot/fieldkit/validator"
)

// Bool returns a pointer to v, for optional flags.
func Bool(v bool) *bool { return &v }

// Decimal coerces input to an arbitrary-precision decimal and enforces digit
// budgets: MaxDigits counts every significant digit, DecimalPlaces the ones
// after the point. NaN and infinities are rejected as invalid.
type Decimal struct {
	MaxDigits     int
	DecimalPlaces int

	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal

	// CoerceToString overrides the FIELDKIT_COERCE_DECIMAL_TO_STRING
	// setting for this field's output.
	CoerceToString *bool
}

func (*Decimal) Name() string { return "decimal" }

func (*Decimal) Messages() map[string]string {
	return map[string]string{
		"invalid":            "A valid number is required.",
		"min_value":          "Ensure this value is greater than or equal to %{min_value}.",
		"max_value":          "Ensure this value is less than or equal to %{max_value}.",
		"max_digits":         "Ensure that there are no more than %{max_digits} digits in total.",
		"max_decimal_places": "Ensure that there are no more than %{max_decimal_places} decimal places.",
		"max_whole_digits":   "Ensure that there are no more than %{max_whole_digits} digits before the decimal point.",
		"max_string_length":  "String value too large.",
	}
}

func (d *Decimal) construct(f *Field) {
	switch {
	case d.MaxDigits < 1:
		panic("fields: Decimal requires MaxDigits of at least 1")
	case d.DecimalPlaces < 0:
		panic("fields: Decimal DecimalPlaces must not be negative")
	case d.DecimalPlaces > d.MaxDigits:
		panic(fmt.Sprintf(
			"fields: Decimal DecimalPlaces (%d) must not exceed MaxDigits (%d)",
			d.DecimalPlaces, d.MaxDigits,
		))
	}
}

func (d *Decimal) fieldRules(f *Field) []validator.Rule {
	var rules []validator.Rule
	if d.MinValue != nil {
		rules = append(rules, f.bound(
			validator.MinDecimal(*d.MinValue), "min_value", map[string]any{"min_value": *d.MinValue},
		))
	}
	if d.MaxValue != nil {
		rules = append(rules, f.bound(
			validator.MaxDecimal(*d.MaxValue), "max_value", map[string]any{"max_value": *d.MaxValue},
		))
	}
	return rules
}

func (d *Decimal) Parse(f *Field, value any) (any, error) {
	if err := failOversizedString(f, value); err != nil {
		return nil, err
	}
	dec, ok := decimalFromValue(value)
	if !ok {
		return nil, f.Fail("invalid")
	}

	// Count digits the way the coefficient/exponent form stores them:
	// "0.01" is one digit with two decimal places, so the place count can
	// exceed the digit count and bounds the total.
	digits := dec.NumDigits()
	decimals := int(dec.Exponent())
	if decimals < 0 {
		decimals = -decimals
	}
	if decimals > digits {
		digits = decimals
	}
	whole := digits - decimals

	if digits > d.MaxDigits {
		return nil, f.Fail("max_digits", "max_digits", d.MaxDigits)
	}
	if decimals > d.DecimalPlaces {
		return nil, f.Fail("max_decimal_places", "max_decimal_places", d.DecimalPlaces)
	}
	if whole > d.MaxDigits-d.DecimalPlaces {
		return nil, f.Fail("max_whole_digits", "max_whole_digits", d.MaxDigits-d.DecimalPlaces)
	}
	return dec, nil
}

// Format rounds half-even to the configured places and, unless coercion to
// string is disabled, renders a fixed-point string.
func (d *Decimal) Format(f *Field, value any) (any, error) {
	dec, ok := decimalFromValue(value)
	if !ok {
		return nil, f.Fail("invalid")
	}

	quantized := dec.RoundBank(int32(d.DecimalPlaces))
	if quantized.NumDigits() > d.MaxDigits {
		return nil, f.Fail("max_digits", "max_digits", d.MaxDigits)
	}

	coerce := settings.Current().CoerceDecimalToString
	if d.CoerceToString != nil {
		coerce = *d.CoerceToString
	}
	if !coerce {
		return quantized, nil
	}
	return dec.StringFixedBank(int32(d.DecimalPlaces)), nil
}

func decimalFromValue(value any) (decimal.Decimal, bool) {
	if dec, ok := value.(decimal.Decimal); ok {
		return dec, true
	}
	if _, isBool := value.(bool); isBool {
		return decimal.Decimal{}, false
	}
	s, ok := stringFromValue(value)
	if !ok {
		return decimal.Decimal{}, false
	}
	dec, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return dec, true
}
