package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Numeric is the constraint shared by the numeric rule constructors.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Error describes a single validation failure. Code is a stable machine
// identifier, Message a rendered human message, Params the values that were
// interpolated into it, and Path the position inside a composite value
// (list indexes, nested keys) relative to the validated field.
type Error struct {
	Code    string
	Message string
	Params  map[string]any
	Path    []string
}

// Errors is an ordered collection of validation failures. It satisfies the
// error interface so a whole batch can travel through a single return value.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range e {
		if len(err.Path) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(err.Path, "."), err.Message))
			continue
		}
		parts = append(parts, err.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Add(err Error) {
	*e = append(*e, err)
}

// Has reports whether any failure carries the given code.
func (e Errors) Has(code string) bool {
	for _, err := range e {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Messages returns the rendered messages in order.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// Codes returns the failure codes in order, duplicates included.
func (e Errors) Codes() []string {
	codes := make([]string, 0, len(e))
	for _, err := range e {
		codes = append(codes, err.Code)
	}
	return codes
}

// WithPrefix returns a copy of the collection with seg prepended to every
// failure's path. Composite fields use it to anchor child failures at their
// position.
func (e Errors) WithPrefix(seg string) Errors {
	out := make(Errors, len(e))
	for i, err := range e {
		path := make([]string, 0, len(err.Path)+1)
		path = append(path, seg)
		path = append(path, err.Path...)
		err.Path = path
		out[i] = err
	}
	return out
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Rule checks a single value. Implementations must be safe for reuse across
// fields and goroutines: no mutation of the rule from Validate.
type Rule interface {
	Validate(value any) error
}

// RuleFunc adapts a plain function into a Rule.
type RuleFunc func(value any) error

func (f RuleFunc) Validate(value any) error { return f(value) }

// Context is the view of the owning field a context-aware rule receives.
type Context interface {
	FieldName() string
	Label() string
	Parent() any
}

// ContextRule is implemented by rules that need the owning field. The field
// arrives by parameter on every call, never by mutation, so a single rule
// value can serve many fields concurrently.
type ContextRule interface {
	Rule
	ValidateWithField(field Context, value any) error
}

// ContextRuleFunc adapts a function into a context-aware Rule. When invoked
// through the plain Rule interface the field is nil.
type ContextRuleFunc func(field Context, value any) error

func (f ContextRuleFunc) Validate(value any) error { return f(nil, value) }

func (f ContextRuleFunc) ValidateWithField(field Context, value any) error {
	return f(field, value)
}

// Apply runs every rule against value and aggregates all failures; it never
// stops at the first one. Rule errors that are not Errors are wrapped as a
// single "invalid"-coded failure.
func Apply(value any, rules ...Rule) error {
	var errs Errors

	for _, rule := range rules {
		err := rule.Validate(value)
		if err == nil {
			continue
		}
		var batch Errors
		if errors.As(err, &batch) {
			errs = append(errs, batch...)
			continue
		}
		errs = append(errs, Error{Code: "invalid", Message: err.Error()})
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Extract pulls the Errors collection out of err, or nil when err carries
// none.
func Extract(err error) Errors {
	if err == nil {
		return nil
	}

	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

// IsValidationError reports whether err carries an Errors collection.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var errs Errors
	return errors.As(err, &errs)
}
