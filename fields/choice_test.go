package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/fields"
	"github.com/dmitrymomot/fieldkit/validator"
)

func TestChoice_Parse(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.Choice{Choices: []fields.ChoiceOption{
		{Value: 1, Display: "One"},
		{Value: 2, Display: "Two"},
	}})

	t.Run("matches through the canonical string form", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation("1")
		require.NoError(t, err)
		assert.Equal(t, 1, got, "the declared value comes out, with its declared type")

		got, err = f.RunValidation(2)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("undeclared values fail", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("9")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "invalid_choice", errs[0].Code)
		assert.Equal(t, "`9` is not a valid choice.", errs[0].Message)
	})

	t.Run("string choices stay strings", func(t *testing.T) {
		t.Parallel()
		plans := fields.New(&fields.Choice{Choices: fields.ChoiceValues("free", "pro")})
		got, err := plans.RunValidation("pro")
		require.NoError(t, err)
		assert.Equal(t, "pro", got)
	})

	t.Run("non-comparable declared values panic", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			fields.New(&fields.Choice{Choices: fields.ChoiceValues([]int{1})})
		})
	})

	t.Run("values sharing a canonical form panic", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t,
			`fields: Choice value 1 duplicates "1"; canonical forms must be unique`,
			func() { fields.New(&fields.Choice{Choices: fields.ChoiceValues(1, "1")}) },
		)
	})
}

func TestChoice_Format(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.Choice{Choices: []fields.ChoiceOption{
		{Value: 1, Display: "One"},
		{Value: 2, Display: "Two"},
	}})

	got, err := f.FormatValue("1")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = f.FormatValue(9)
	errs := validator.Extract(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_choice", errs[0].Code)
}

func TestMultipleChoice_Parse(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.MultipleChoice{Choice: fields.Choice{
		Choices: []fields.ChoiceOption{
			{Value: 1, Display: "One"},
			{Value: 2, Display: "Two"},
			{Value: 3, Display: "Three"},
		},
	}})

	t.Run("collapses duplicates into a set", func(t *testing.T) {
		t.Parallel()
		got, err := f.RunValidation([]string{"1", "2", "1"})
		require.NoError(t, err)
		assert.Equal(t, map[any]struct{}{1: {}, 2: {}}, got)
	})

	t.Run("every bad element is reported with its index", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation([]any{"1", "9", "zz"})
		errs := validator.Extract(err)
		require.Len(t, errs, 2)
		assert.Equal(t, []string{"1"}, errs[0].Path)
		assert.Equal(t, "`9` is not a valid choice.", errs[0].Message)
		assert.Equal(t, []string{"2"}, errs[1].Path)
	})

	t.Run("scalars are not lists", func(t *testing.T) {
		t.Parallel()
		_, err := f.RunValidation("1")
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "not_a_list", errs[0].Code)
		assert.Equal(t, "Expected a list of items but got type `string`.", errs[0].Message)
	})
}

func TestMultipleChoice_Format(t *testing.T) {
	t.Parallel()

	f := fields.New(&fields.MultipleChoice{Choice: fields.Choice{
		Choices: []fields.ChoiceOption{
			{Value: 1, Display: "One"},
			{Value: 2, Display: "Two"},
			{Value: 3, Display: "Three"},
		},
	}})

	t.Run("sets render in declaration order", func(t *testing.T) {
		t.Parallel()
		got, err := f.FormatValue(map[any]struct{}{3: {}, 1: {}})
		require.NoError(t, err)
		assert.Equal(t, []any{1, 3}, got)
	})

	t.Run("slices render the same way", func(t *testing.T) {
		t.Parallel()
		got, err := f.FormatValue([]any{"2", 1, "1"})
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2}, got)
	})

	t.Run("undeclared members fail", func(t *testing.T) {
		t.Parallel()
		_, err := f.FormatValue([]any{9})
		errs := validator.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "invalid_choice", errs[0].Code)
	})
}
