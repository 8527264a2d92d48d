package schema

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/fieldkit/binder"
	"github.com/dmitrymomot/fieldkit/fields"
	"github.com/dmitrymomot/fieldkit/validator"
)

// Schema is a bound, ordered collection of fields validating payloads in and
// serializing instances out. Schemas are immutable once built and safe for
// concurrent use.
type Schema struct {
	names    []string
	fields   map[string]*fields.Field
	methods  map[string]fields.MethodFunc
	partial  bool
	context  map[string]any
	logger   *slog.Logger
	validate func(values map[string]any) error
}

// Partial reports whether absent fields are skipped instead of required.
func (s *Schema) Partial() bool { return s.partial }

// Context returns the request-scoped values attached at build time.
func (s *Schema) Context() map[string]any { return s.context }

// Method resolves a registered computed-output function by name.
func (s *Schema) Method(name string) (fields.MethodFunc, bool) {
	fn, ok := s.methods[name]
	return fn, ok
}

// Fields returns the bound fields in declaration order.
func (s *Schema) Fields() []*fields.Field {
	out := make([]*fields.Field, len(s.names))
	for i, name := range s.names {
		out[i] = s.fields[name]
	}
	return out
}

// Field returns the bound field registered under name.
func (s *Schema) Field(name string) (*fields.Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Validate runs every writable field against the payload and assembles the
// validated values keyed by source path. All fields run regardless of
// earlier failures, and the error is a FieldErrors carrying every one.
func (s *Schema) Validate(payload binder.Payload) (map[string]any, error) {
	values := make(map[string]any)
	failures := make(FieldErrors)

	for _, name := range s.names {
		f := s.fields[name]
		if f.IsReadOnly() {
			continue
		}

		value, err := f.RunValidation(f.ValueFrom(payload))
		if err != nil {
			if errors.Is(err, fields.ErrSkipField) {
				continue
			}
			errs := validator.Extract(err)
			if errs == nil {
				errs = validator.Errors{{Code: "invalid", Message: err.Error()}}
			}
			failures[name] = errs
			s.logger.Debug("field failed validation", "field", name, "codes", errs.Codes())
			continue
		}
		fields.SetValue(values, f.SourceAttrs(), value)
	}

	if len(failures) == 0 && s.validate != nil {
		if err := s.validate(values); err != nil {
			errs := validator.Extract(err)
			if errs == nil {
				errs = validator.Errors{{Code: "invalid", Message: err.Error()}}
			}
			failures[NonFieldErrorsKey] = errs
			s.logger.Debug("cross-field validation failed", "codes", errs.Codes())
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return values, nil
}

// Serialize renders an instance through every readable field. A source
// resolving to nil renders as nil; resolution failures abort with the field
// named in the error.
func (s *Schema) Serialize(instance any) (map[string]any, error) {
	out := make(map[string]any, len(s.names))
	for _, name := range s.names {
		f := s.fields[name]
		if f.IsWriteOnly() {
			continue
		}

		value, err := f.Representation(instance)
		if err != nil {
			if errors.Is(err, fields.ErrSkipField) {
				continue
			}
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}

// Initial returns the metadata initial value of every field, for
// prepopulating empty forms.
func (s *Schema) Initial() map[string]any {
	out := make(map[string]any, len(s.names))
	for _, name := range s.names {
		out[name] = s.fields[name].Initial()
	}
	return out
}
