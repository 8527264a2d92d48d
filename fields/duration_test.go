package fields_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/fields"
	"github.com/dmitrymomot/fieldkit/validator"
)

func TestDuration_Parse(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.Duration{})

	t.Run("go notation", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation("1h30m")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, got)

		got, err = f.RunValidation("250ms")
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, got)
	})

	t.Run("bare numbers read as seconds", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation(30)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, got)

		got, err = f.RunValidation("1.5")
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, got)
	})

	t.Run("native durations pass through", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation(time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, got)
	})

	t.Run("garbage fails with the accepted shapes", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("soon")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "invalid", errs[0].Code)
		assert.Equal(t,
			"Duration has wrong format. Use one of these formats instead: 72h3m0.5s, or a plain number of seconds",
			errs[0].Message,
		)
	})

	t.Run("bounds compare as durations", func(t *testing.T) {
		t.Parallel()
		min := time.Second
		bounded := fields.New(&fields.Duration{MinValue: &min})

		_, err := bounded.RunValidation("500ms")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "min_value", errs[0].Code)
		assert.Equal(t, "Ensure this value is greater than or equal to 1s.", errs[0].Message)

		got, err := bounded.RunValidation("2s")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, got)
	})
}

func TestDuration_Format(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.Duration{})
	got, err := f.FormatValue(90 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", got)
}
