package fields

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/fieldkit/validator"
)

// anySlice normalizes slice and array values to []any. Strings and byte
// slices do not count as lists.
func anySlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// List runs a child field over every element. Element failures are keyed by
// index and collected across the whole input, so one bad element does not
// hide the rest.
type List struct {
	Child *Field
}

func (*List) Name() string { return "list" }

func (*List) Messages() map[string]string {
	return map[string]string{
		"not_a_list": "Expected a list of items but got type `%{input_type}`.",
	}
}

func (l *List) construct(f *Field) {
	if l.Child == nil {
		panic("fields: List requires a Child field")
	}
	l.Child.Bind("", f)
}

func (l *List) CloneType() Type {
	return &List{Child: l.Child.Clone()}
}

func (*List) htmlMultiValued() {}

func (*List) initialValue() any { return []any{} }

func (l *List) Parse(f *Field, value any) (any, error) {
	items, ok := anySlice(value)
	if !ok {
		return nil, f.Fail("not_a_list", "input_type", fmt.Sprintf("%T", value))
	}

	out := make([]any, 0, len(items))
	var errs validator.Errors
	for i, item := range items {
		v, err := l.Child.RunValidation(item)
		if err != nil {
			if errors.Is(err, ErrSkipField) {
				continue
			}
			batch := validator.Extract(err)
			if batch == nil {
				batch = validator.Errors{{Code: "invalid", Message: err.Error()}}
			}
			errs = append(errs, batch.WithPrefix(strconv.Itoa(i))...)
			continue
		}
		out = append(out, v)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (l *List) Format(f *Field, value any) (any, error) {
	items, ok := anySlice(value)
	if !ok {
		return nil, f.Fail("not_a_list", "input_type", fmt.Sprintf("%T", value))
	}

	out := make([]any, len(items))
	for i, item := range items {
		if item == nil {
			out[i] = nil
			continue
		}
		v, err := l.Child.FormatValue(item)
		if err != nil {
			return nil, fmt.Errorf("fields: list item %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
