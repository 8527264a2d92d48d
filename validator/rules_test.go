package validator_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/validator"
)

func TestMinMaxValue(t *testing.T) {
	t.Parallel()

	t.Run("min accepts values at or above the bound", func(t *testing.T) {
		rule := validator.MinValue(int64(10))
		require.NoError(t, rule.Validate(int64(10)))
		require.NoError(t, rule.Validate(int64(11)))
	})

	t.Run("min rejects values below the bound", func(t *testing.T) {
		errs := validator.Extract(validator.MinValue(int64(10)).Validate(int64(9)))
		require.Len(t, errs, 1)
		assert.Equal(t, "min_value", errs[0].Code)
		assert.Equal(t, "must be at least 10", errs[0].Message)
	})

	t.Run("max rejects values above the bound", func(t *testing.T) {
		errs := validator.Extract(validator.MaxValue(3.5).Validate(4.0))
		require.Len(t, errs, 1)
		assert.Equal(t, "max_value", errs[0].Code)
	})

	t.Run("mixed numeric kinds are converted", func(t *testing.T) {
		require.NoError(t, validator.MinValue(1.5).Validate(int64(2)))
		require.Error(t, validator.MinValue(1.5).Validate(int64(1)))
	})

	t.Run("non numeric values pass through", func(t *testing.T) {
		require.NoError(t, validator.MinValue(int64(10)).Validate("not a number"))
	})
}

func TestMinMaxDecimal(t *testing.T) {
	t.Parallel()

	min := decimal.RequireFromString("0.01")
	max := decimal.RequireFromString("99.99")

	t.Run("accepts values inside the bounds", func(t *testing.T) {
		v := decimal.RequireFromString("10.50")
		require.NoError(t, validator.MinDecimal(min).Validate(v))
		require.NoError(t, validator.MaxDecimal(max).Validate(v))
	})

	t.Run("rejects values outside the bounds", func(t *testing.T) {
		low := decimal.RequireFromString("0.001")
		errs := validator.Extract(validator.MinDecimal(min).Validate(low))
		require.Len(t, errs, 1)
		assert.Equal(t, "min_value", errs[0].Code)
		assert.Equal(t, "must be at least 0.01", errs[0].Message)
	})
}

func TestStringLengthRules(t *testing.T) {
	t.Parallel()

	t.Run("length counts runes", func(t *testing.T) {
		require.NoError(t, validator.MaxLength(4).Validate("žluť"))
		require.Error(t, validator.MaxLength(3).Validate("žluť"))
	})

	t.Run("min length", func(t *testing.T) {
		errs := validator.Extract(validator.MinLength(3).Validate("ab"))
		require.Len(t, errs, 1)
		assert.Equal(t, "min_length", errs[0].Code)
	})

	t.Run("length between", func(t *testing.T) {
		rule := validator.LengthBetween(2, 4)
		require.NoError(t, rule.Validate("abc"))
		require.Error(t, rule.Validate("a"))
		require.Error(t, rule.Validate("abcde"))
	})
}

func TestMatchRegex(t *testing.T) {
	t.Parallel()

	rule := validator.MatchRegex(regexp.MustCompile(`^[a-z]+$`))
	require.NoError(t, rule.Validate("abc"))

	errs := validator.Extract(rule.Validate("Abc1"))
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid", errs[0].Code)
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	rule := validator.OneOf("red", "green", "blue")
	require.NoError(t, rule.Validate("green"))

	errs := validator.Extract(rule.Validate("yellow"))
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_choice", errs[0].Code)
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	rule := validator.ValidEmail()

	t.Run("accepts well formed addresses", func(t *testing.T) {
		require.NoError(t, rule.Validate("user@example.com"))
		require.NoError(t, rule.Validate("first.last+tag@sub.example.org"))
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, bad := range []string{"", "plain", "user@", "@example.com", "user@nodot", "user@.com", "user@example..com"} {
			require.Error(t, rule.Validate(bad), "value %q", bad)
		}
	})
}

func TestValidURL(t *testing.T) {
	t.Parallel()

	rule := validator.ValidURL()
	require.NoError(t, rule.Validate("https://example.com/path?q=1"))
	require.NoError(t, rule.Validate("http://localhost:8080"))
	require.Error(t, rule.Validate("ftp://example.com"))
	require.Error(t, rule.Validate("example.com"))
	require.Error(t, rule.Validate("://broken"))
}

func TestValidSlug(t *testing.T) {
	t.Parallel()

	rule := validator.ValidSlug()
	require.NoError(t, rule.Validate("my-slug_01"))
	require.Error(t, rule.Validate("not a slug"))
	require.Error(t, rule.Validate("ends/with/slash"))
}

func TestNonZeroTime(t *testing.T) {
	t.Parallel()

	rule := validator.NonZeroTime()
	require.NoError(t, rule.Validate(time.Now()))
	require.Error(t, rule.Validate(time.Time{}))
}
