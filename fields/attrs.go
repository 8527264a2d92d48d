package fields

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Attributer lets a value take part in source resolution explicitly instead
// of through reflection. Implementations return ErrNoAttribute for names
// they do not carry and ErrNoInstance when the name points at a record that
// does not exist (a broken relation).
type Attributer interface {
	Attribute(name string) (any, error)
}

// GetAttribute walks a dotted source path against an instance, one step per
// path segment. Each step tries, in order: the Attributer interface, map
// key lookup, exported struct field lookup (snake_case names match their
// CamelCase counterparts), and zero-argument methods, which resolve to the
// method value itself so output formatting can decide whether to call it.
//
// A broken relation (ErrNoInstance) anywhere in the walk resolves the whole
// path to nil. Structural misses surface as errors naming the step.
func GetAttribute(instance any, attrs []string) (any, error) {
	current := instance
	for _, name := range attrs {
		val, err := resolveStep(current, name)
		if err != nil {
			if errors.Is(err, ErrNoInstance) {
				return nil, nil
			}
			return nil, err
		}
		current = val
	}
	return current, nil
}

func resolveStep(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("fields: cannot resolve %q on a nil instance", name)
	}

	var attrErr error
	if a, ok := v.(Attributer); ok {
		val, err := a.Attribute(name)
		switch {
		case err == nil:
			return val, nil
		case errors.Is(err, ErrNoInstance):
			return nil, err
		default:
			// Retry the step through the generic mechanisms below and
			// surface the original error if they miss too.
			attrErr = err
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("fields: cannot resolve %q on a nil %s", name, rv.Type())
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			item := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if item.IsValid() {
				return item.Interface(), nil
			}
		}

	case reflect.Struct:
		if field, ok := structField(rv, name); ok {
			return field.Interface(), nil
		}
		if method, ok := methodValue(reflect.ValueOf(v), name); ok {
			return method.Interface(), nil
		}
	}

	if attrErr != nil {
		return nil, attrErr
	}
	return nil, fmt.Errorf("fields: %T has no attribute %q", v, name)
}

// structField finds an exported field for a path segment, accepting both the
// exact Go name and a snake_case rendering of it. Unexported fields never
// match.
func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
		return rv.FieldByIndex(sf.Index), true
	}

	want := strings.ReplaceAll(name, "_", "")
	sf, ok := t.FieldByNameFunc(func(candidate string) bool {
		return strings.EqualFold(candidate, want)
	})
	if ok && sf.IsExported() {
		return rv.FieldByIndex(sf.Index), true
	}
	return reflect.Value{}, false
}

func methodValue(rv reflect.Value, name string) (reflect.Value, bool) {
	if m := rv.MethodByName(name); m.IsValid() {
		return m, true
	}

	want := strings.ReplaceAll(name, "_", "")
	t := rv.Type()
	for i := 0; i < t.NumMethod(); i++ {
		if strings.EqualFold(t.Method(i).Name, want) {
			return rv.Method(i), true
		}
	}
	return reflect.Value{}, false
}

// SetValue writes a validated value into the result map under a source path,
// creating intermediate maps as needed. An empty path merges the value into
// the target, which is how whole-instance ("*") sources land.
//
//	SetValue(m, nil, map[string]any{"b": 2})  merges b into m
//	SetValue(m, []string{"x"}, 2)             m["x"] = 2
//	SetValue(m, []string{"x", "y"}, 2)        m["x"]["y"] = 2
func SetValue(target map[string]any, keys []string, value any) {
	if len(keys) == 0 {
		merged, ok := value.(map[string]any)
		if !ok {
			panic(fmt.Sprintf("fields: a whole-instance source must produce a map, got %T", value))
		}
		maps.Copy(target, merged)
		return
	}

	for _, key := range keys[:len(keys)-1] {
		child, ok := target[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			target[key] = child
		}
		target = child
	}
	target[keys[len(keys)-1]] = value
}
