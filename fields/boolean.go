package fields

import "reflect"

// Literal sets accepted as booleans, mirroring common form and query-string
// conventions.
var (
	boolTrueStrings  = map[string]struct{}{"t": {}, "T": {}, "true": {}, "True": {}, "TRUE": {}, "1": {}}
	boolFalseStrings = map[string]struct{}{"f": {}, "F": {}, "false": {}, "False": {}, "FALSE": {}, "0": {}}
	boolNullStrings  = map[string]struct{}{"n": {}, "N": {}, "null": {}, "Null": {}, "NULL": {}}
)

func boolFromValue(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if _, hit := boolTrueStrings[v]; hit {
			return true, true
		}
		if _, hit := boolFalseStrings[v]; hit {
			return false, true
		}
	default:
		if n, isNum := numberAsFloat(value); isNum {
			switch n {
			case 1:
				return true, true
			case 0:
				return false, true
			}
		}
	}
	return false, false
}

func isNullLiteral(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	_, hit := boolNullStrings[s]
	return hit
}

// truthiness is the output fallback for values outside the literal sets:
// empty containers and zero values render false, everything else true.
func truthiness(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return truthiness(rv.Elem().Interface())
	}
	return !rv.IsZero()
}

// Boolean coerces true/false literals to bool. A missing or empty HTML form
// entry reads as false, matching unchecked checkboxes. Null is not an
// option here; NullBoolean covers tri-state inputs.
type Boolean struct{}

func (Boolean) Name() string { return "boolean" }

func (Boolean) Messages() map[string]string {
	return map[string]string{
		"invalid": "`%{input}` is not a valid boolean.",
	}
}

func (Boolean) configureField(c *config) {
	if c.allowNull {
		panic("fields: Boolean does not support AllowNull; use NullBoolean instead")
	}
}

func (Boolean) emptyHTMLValue() any { return false }
func (Boolean) initialValue() any   { return false }

func (Boolean) Parse(f *Field, value any) (any, error) {
	if b, ok := boolFromValue(value); ok {
		return b, nil
	}
	return nil, f.Fail("invalid", "input", value)
}

func (Boolean) Format(f *Field, value any) (any, error) {
	if b, ok := boolFromValue(value); ok {
		return b, nil
	}
	return truthiness(value), nil
}

// NullBoolean is Boolean with a third state: it always allows null and also
// accepts null literals ("n", "null", ...) as input.
type NullBoolean struct{}

func (NullBoolean) Name() string { return "null_boolean" }

func (NullBoolean) Messages() map[string]string {
	return map[string]string{
		"invalid": "`%{input}` is not a valid boolean.",
	}
}

func (NullBoolean) configureField(c *config) {
	if c.allowNull {
		panic("fields: NullBoolean always allows null; drop AllowNull")
	}
	c.allowNull = true
}

func (NullBoolean) Parse(f *Field, value any) (any, error) {
	if b, ok := boolFromValue(value); ok {
		return b, nil
	}
	if isNullLiteral(value) {
		return nil, nil
	}
	return nil, f.Fail("invalid", "input", value)
}

func (NullBoolean) Format(f *Field, value any) (any, error) {
	if isNullLiteral(value) {
		return nil, nil
	}
	if b, ok := boolFromValue(value); ok {
		return b, nil
	}
	return truthiness(value), nil
}
