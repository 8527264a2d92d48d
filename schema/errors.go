package schema

import (
	"errors"
	"slices"
	"strings"

	"github.com/dmitrymomot/fieldkit/validator"
)

var (
	// ErrInvalidField marks a field definition the builder cannot accept.
	ErrInvalidField = errors.New("schema: invalid field definition")

	// ErrDuplicateField marks a name added to the builder twice.
	ErrDuplicateField = errors.New("schema: duplicate field name")

	// ErrUnsupportedSchema marks an OpenAPI schema shape with no field
	// equivalent.
	ErrUnsupportedSchema = errors.New("schema: unsupported openapi schema")
)

// NonFieldErrorsKey is the FieldErrors key carrying failures that belong to
// the payload as a whole rather than a single field.
const NonFieldErrorsKey = "non_field_errors"

// FieldErrors maps field names to their validation failures.
type FieldErrors map[string]validator.Errors

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "schema: validation failed"
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	slices.Sort(names)
	var parts []string
	for _, name := range names {
		for _, fe := range e[name] {
			key := name
			if len(fe.Path) > 0 {
				key = name + "." + strings.Join(fe.Path, ".")
			}
			parts = append(parts, key+": "+fe.Message)
		}
	}
	return "schema: validation failed: " + strings.Join(parts, "; ")
}

// Field returns the failures recorded for one field.
func (e FieldErrors) Field(name string) validator.Errors { return e[name] }

// Has reports whether the named field failed.
func (e FieldErrors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Messages flattens the failures into dotted keys, one entry per position
// inside composite values: {"tags.1": ["`abc` is not a valid choice."]}.
func (e FieldErrors) Messages() map[string][]string {
	out := make(map[string][]string, len(e))
	for name, errs := range e {
		for _, fe := range errs {
			key := name
			if len(fe.Path) > 0 {
				key = name + "." + strings.Join(fe.Path, ".")
			}
			out[key] = append(out[key], fe.Message)
		}
	}
	return out
}

// AsFieldErrors unwraps err into FieldErrors when it carries one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
