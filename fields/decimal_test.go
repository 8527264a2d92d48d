package fields_test

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/fields"
	"github.com/dmitrymomot/fieldkit/validator"
)

func TestDecimal_Parse(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.Decimal{MaxDigits: 6, DecimalPlaces: 2})

	t.Run("accepts values inside the digit budget", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation("3.14")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("3.14").Equal(got.(decimal.Decimal)))

		got, err = f.RunValidation(10)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(got.(decimal.Decimal)))
	})

	t.Run("too many decimal places", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("3.14159")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "max_decimal_places", errs[0].Code)
		assert.Equal(t, "Ensure that there are no more than 2 decimal places.", errs[0].Message)
	})

	t.Run("too many digits in total", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("12345.67")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "max_digits", errs[0].Code)
		assert.Equal(t, "Ensure that there are no more than 6 digits in total.", errs[0].Message)
	})

	t.Run("too many whole digits", func(t *testing.T) {
		t.Parallel()
		tight := fields.New(&fields.Decimal{MaxDigits: 5, DecimalPlaces: 3})
		_, err := tight.RunValidation("123.45")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "max_whole_digits", errs[0].Code)
		assert.Equal(t, "Ensure that there are no more than 2 digits before the decimal point.", errs[0].Message)
	})

	t.Run("leading zeros do not count", func(t *testing.T) {
		t.Parallel()
		small := fields.New(&fields.Decimal{MaxDigits: 3, DecimalPlaces: 2})
		got, err := small.RunValidation("0.01")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.01").Equal(got.(decimal.Decimal)))
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		t.Parallel()
		for _, input := range []any{"abc", true, math.NaN(), math.Inf(-1)} {
			_, err := f.RunValidation(input)
			errs := validator.Extract(err)
			require.Len(t, errs, 1, "input %v", input)
			assert.Equal(t, "invalid", errs[0].Code, "input %v", input)
			assert.Equal(t, "A valid number is required.", errs[0].Message, "input %v", input)
		}
	})

	t.Run("rejects oversized string input", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("1." + strings.Repeat("0", 1000))
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "max_string_length", errs[0].Code)
		assert.Equal(t, "String value too large.", errs[0].Message)
	})

	t.Run("bounds compare as decimals", func(t *testing.T) {
		t.Parallel()
		min := decimal.RequireFromString("0.5")
		bounded := fields.New(&fields.Decimal{MaxDigits: 4, DecimalPlaces: 2, MinValue: &min})

		_, err := bounded.RunValidation("0.25")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "min_value", errs[0].Code)
		assert.Equal(t, "Ensure this value is greater than or equal to 0.5.", errs[0].Message)
	})
}

func TestDecimal_Format(t *testing.T) {
	t.Parallel()

	t.Run("renders a fixed-point string by default", func(t *testing.T) {
		t.Parallel()
		f := fields.New(&fields.Decimal{MaxDigits: 6, DecimalPlaces: 2})
		got, err := f.FormatValue(decimal.RequireFromString("3.14"))
		require.NoError(t, err)
		assert.Equal(t, "3.14", got)

		got, err = f.FormatValue(decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.Equal(t, "5.00", got)
	})

	t.Run("rounds half to even", func(t *testing.T) {
		t.Parallel()
		f := fields.New(&fields.Decimal{MaxDigits: 6, DecimalPlaces: 2})

		got, err := f.FormatValue("2.345")
		require.NoError(t, err)
		assert.Equal(t, "2.34", got)

		got, err = f.FormatValue("2.355")
		require.NoError(t, err)
		assert.Equal(t, "2.36", got)
	})

	t.Run("keeps the decimal value when coercion is off", func(t *testing.T) {
		t.Parallel()
		f := fields.New(&fields.Decimal{
			MaxDigits:      6,
			DecimalPlaces:  2,
			CoerceToString: fields.Bool(false),
		})
		got, err := f.FormatValue("3.14")
		require.NoError(t, err)
		dec, ok := got.(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("3.14").Equal(dec))
	})
}

func TestDecimal_Construct(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "fields: Decimal requires MaxDigits of at least 1", func() {
		fields.New(&fields.Decimal{})
	})
	assert.PanicsWithValue(t, "fields: Decimal DecimalPlaces (3) must not exceed MaxDigits (2)", func() {
		fields.New(&fields.Decimal{MaxDigits: 2, DecimalPlaces: 3})
	})
}
