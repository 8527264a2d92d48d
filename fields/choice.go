package fields

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/fieldkit/validator"
)

// ChoiceOption pairs a stored value with its display text.
type ChoiceOption struct {
	Value   any
	Display string
}

// ChoiceValues builds options whose display text is the value itself, for
// the common case where the two coincide.
func ChoiceValues(values ...any) []ChoiceOption {
	opts := make([]ChoiceOption, len(values))
	for i, v := range values {
		opts[i] = ChoiceOption{Value: v, Display: choiceKey(v)}
	}
	return opts
}

// choiceKey is the canonical string form used to match inputs against
// declared values, so integer choices accept both 1 and "1".
func choiceKey(value any) string {
	if s, ok := stringFromValue(value); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// Choice restricts input to a declared set of values. Matching goes through
// the canonical string form, and the accepted value comes out exactly as
// declared, keeping its original type.
type Choice struct {
	Choices []ChoiceOption

	compiled map[string]any
}

func (*Choice) Name() string { return "choice" }

func (*Choice) Messages() map[string]string {
	return map[string]string{
		"invalid_choice": "`%{input}` is not a valid choice.",
	}
}

func (c *Choice) construct(f *Field) {
	if c.compiled != nil {
		return
	}
	compiled := make(map[string]any, len(c.Choices))
	for _, opt := range c.Choices {
		if opt.Value != nil && !reflect.TypeOf(opt.Value).Comparable() {
			panic(fmt.Sprintf("fields: Choice values must be comparable, got %T", opt.Value))
		}
		key := choiceKey(opt.Value)
		if _, dup := compiled[key]; dup {
			panic(fmt.Sprintf("fields: Choice value %v duplicates %q; canonical forms must be unique", opt.Value, key))
		}
		compiled[key] = opt.Value
	}
	c.compiled = compiled
}

func (c *Choice) lookup(value any) (any, bool) {
	v, ok := c.compiled[choiceKey(value)]
	return v, ok
}

func (c *Choice) Parse(f *Field, value any) (any, error) {
	if v, ok := c.lookup(value); ok {
		return v, nil
	}
	return nil, f.Fail("invalid_choice", "input", value)
}

func (c *Choice) Format(f *Field, value any) (any, error) {
	if v, ok := c.lookup(value); ok {
		return v, nil
	}
	return nil, f.Fail("invalid_choice", "input", value)
}

// MultipleChoice accepts a list of declared values and produces a set.
// Duplicates collapse, element failures carry their index, and every bad
// element is reported, not just the first.
type MultipleChoice struct {
	Choice
}

func (*MultipleChoice) Name() string { return "multiple_choice" }

func (m *MultipleChoice) Messages() map[string]string {
	return mergeMessages(m.Choice.Messages(), map[string]string{
		"not_a_list": "Expected a list of items but got type `%{input_type}`.",
	})
}

func (*MultipleChoice) htmlMultiValued() {}

func (*MultipleChoice) emptyHTMLValue() any { return []string{} }

func (m *MultipleChoice) Parse(f *Field, value any) (any, error) {
	items, ok := anySlice(value)
	if !ok {
		return nil, f.Fail("not_a_list", "input_type", fmt.Sprintf("%T", value))
	}

	result := make(map[any]struct{}, len(items))
	var errs validator.Errors
	for i, item := range items {
		v, found := m.lookup(item)
		if !found {
			batch := validator.Extract(f.Fail("invalid_choice", "input", item))
			errs = append(errs, batch.WithPrefix(strconv.Itoa(i))...)
			continue
		}
		result[v] = struct{}{}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

// Format renders the set in declaration order, which keeps output stable.
func (m *MultipleChoice) Format(f *Field, value any) (any, error) {
	members := make(map[string]struct{})
	switch v := value.(type) {
	case map[any]struct{}:
		for item := range v {
			key := choiceKey(item)
			if _, ok := m.compiled[key]; !ok {
				return nil, f.Fail("invalid_choice", "input", item)
			}
			members[key] = struct{}{}
		}
	default:
		items, ok := anySlice(value)
		if !ok {
			return nil, f.Fail("not_a_list", "input_type", fmt.Sprintf("%T", value))
		}
		for _, item := range items {
			key := choiceKey(item)
			if _, ok := m.compiled[key]; !ok {
				return nil, f.Fail("invalid_choice", "input", item)
			}
			members[key] = struct{}{}
		}
	}

	out := make([]any, 0, len(members))
	for _, opt := range m.Choices {
		if _, ok := members[choiceKey(opt.Value)]; ok {
			out = append(out, opt.Value)
		}
	}
	return out, nil
}
