package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/fields"
)

type account struct {
	FirstName string
	Profile   *profile
	hidden    string
}

func (a account) DisplayName() string { return "Mx. " + a.FirstName }

type profile struct {
	City string
}

// relation resolves attributes explicitly and reports a broken link.
type relation struct {
	values map[string]any
	broken bool
}

func (r relation) Attribute(name string) (any, error) {
	if r.broken {
		return nil, fields.ErrNoInstance
	}
	v, ok := r.values[name]
	if !ok {
		return nil, fields.ErrNoAttribute
	}
	return v, nil
}

func TestGetAttribute(t *testing.T) {
	t.Parallel()

	t.Run("map lookup", func(t *testing.T) {
		t.Parallel()
		got, err := fields.GetAttribute(map[string]any{"age": 30}, []string{"age"})
		require.NoError(t, err)
		assert.Equal(t, 30, got)
	})

	t.Run("nested path", func(t *testing.T) {
		t.Parallel()
		instance := map[string]any{"user": map[string]any{"name": "Ann"}}
		got, err := fields.GetAttribute(instance, []string{"user", "name"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)
	})

	t.Run("struct fields match snake case", func(t *testing.T) {
		t.Parallel()
		a := account{FirstName: "Ann", Profile: &profile{City: "Oslo"}}

		got, err := fields.GetAttribute(a, []string{"first_name"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)

		got, err = fields.GetAttribute(a, []string{"FirstName"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)
	})

	t.Run("pointers deref along the path", func(t *testing.T) {
		t.Parallel()
		a := &account{Profile: &profile{City: "Oslo"}}
		got, err := fields.GetAttribute(a, []string{"profile", "city"})
		require.NoError(t, err)
		assert.Equal(t, "Oslo", got)
	})

	t.Run("methods resolve to callable values", func(t *testing.T) {
		t.Parallel()
		got, err := fields.GetAttribute(account{FirstName: "Ann"}, []string{"display_name"})
		require.NoError(t, err)
		fn, ok := got.(func() string)
		require.True(t, ok)
		assert.Equal(t, "Mx. Ann", fn())
	})

	t.Run("empty path returns the instance", func(t *testing.T) {
		t.Parallel()
		instance := map[string]any{"a": 1}
		got, err := fields.GetAttribute(instance, nil)
		require.NoError(t, err)
		assert.Equal(t, instance, got)
	})

	t.Run("attributer takes precedence", func(t *testing.T) {
		t.Parallel()
		rel := relation{values: map[string]any{"id": 9}}
		got, err := fields.GetAttribute(rel, []string{"id"})
		require.NoError(t, err)
		assert.Equal(t, 9, got)
	})

	t.Run("broken relations resolve to nil", func(t *testing.T) {
		t.Parallel()
		instance := map[string]any{"owner": relation{broken: true}}
		got, err := fields.GetAttribute(instance, []string{"owner", "name"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing attributes surface", func(t *testing.T) {
		t.Parallel()
		_, err := fields.GetAttribute(map[string]any{"a": 1}, []string{"b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"b"`)

		_, err = fields.GetAttribute(account{}, []string{"nope"})
		require.Error(t, err)
	})

	t.Run("unexported fields stay hidden", func(t *testing.T) {
		t.Parallel()
		_, err := fields.GetAttribute(account{hidden: "x"}, []string{"hidden"})
		assert.Error(t, err)
	})

	t.Run("nil along the path errors", func(t *testing.T) {
		t.Parallel()
		_, err := fields.GetAttribute(map[string]any{"user": nil}, []string{"user", "name"})
		assert.Error(t, err)
	})
}

func TestSetValue(t *testing.T) {
	t.Parallel()

	t.Run("leaf write", func(t *testing.T) {
		t.Parallel()
		m := map[string]any{}
		fields.SetValue(m, []string{"x"}, 2)
		assert.Equal(t, map[string]any{"x": 2}, m)
	})

	t.Run("nested write creates intermediates", func(t *testing.T) {
		t.Parallel()
		m := map[string]any{}
		fields.SetValue(m, []string{"x", "y"}, 2)
		assert.Equal(t, map[string]any{"x": map[string]any{"y": 2}}, m)
	})

	t.Run("sibling writes share intermediates", func(t *testing.T) {
		t.Parallel()
		m := map[string]any{}
		fields.SetValue(m, []string{"x", "y"}, 1)
		fields.SetValue(m, []string{"x", "z"}, 2)
		assert.Equal(t, map[string]any{"x": map[string]any{"y": 1, "z": 2}}, m)
	})

	t.Run("empty path merges a map", func(t *testing.T) {
		t.Parallel()
		m := map[string]any{"a": 1}
		fields.SetValue(m, nil, map[string]any{"b": 2})
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, m)
	})

	t.Run("empty path rejects non-maps", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "fields: a whole-instance source must produce a map, got int", func() {
			fields.SetValue(map[string]any{}, nil, 5)
		})
	})
}
