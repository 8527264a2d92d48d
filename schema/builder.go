package schema

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/fieldkit/fields"
)

// Builder assembles a Schema from field definitions. Definitions stay
// unbound and reusable; Build clones each one before binding, so a single
// set of definitions can back many schemas.
type Builder struct {
	names    []string
	fields   map[string]*fields.Field
	methods  map[string]fields.MethodFunc
	partial  bool
	context  map[string]any
	catalog  fields.Catalog
	logger   *slog.Logger
	validate func(values map[string]any) error
	errs     []error
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		fields:  make(map[string]*fields.Field),
		methods: make(map[string]fields.MethodFunc),
	}
}

// Add registers a field under name, keeping declaration order.
func (b *Builder) Add(name string, f *fields.Field) *Builder {
	switch {
	case name == "":
		b.errs = append(b.errs, fmt.Errorf("%w: empty field name", ErrInvalidField))
	case f == nil:
		b.errs = append(b.errs, fmt.Errorf("%w: nil field %q", ErrInvalidField, name))
	default:
		if _, dup := b.fields[name]; dup {
			b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateField, name))
			return b
		}
		b.names = append(b.names, name)
		b.fields[name] = f
	}
	return b
}

// Method registers a computed-output function that Method fields resolve by
// name.
func (b *Builder) Method(name string, fn fields.MethodFunc) *Builder {
	switch {
	case name == "":
		b.errs = append(b.errs, fmt.Errorf("%w: empty method name", ErrInvalidField))
	case fn == nil:
		b.errs = append(b.errs, fmt.Errorf("%w: nil method %q", ErrInvalidField, name))
	default:
		if _, dup := b.methods[name]; dup {
			b.errs = append(b.errs, fmt.Errorf("%w: method %q", ErrDuplicateField, name))
			return b
		}
		b.methods[name] = fn
	}
	return b
}

// Partial makes the schema skip absent fields instead of enforcing required,
// for update-style payloads.
func (b *Builder) Partial() *Builder {
	b.partial = true
	return b
}

// WithContext attaches request-scoped values fields can read during output,
// such as "base_url" for absolute file URLs.
func (b *Builder) WithContext(ctx map[string]any) *Builder {
	b.context = ctx
	return b
}

// WithCatalog restyles every field's messages from a catalog at build time.
func (b *Builder) WithCatalog(c fields.Catalog) *Builder {
	b.catalog = c
	return b
}

// WithLogger sets the logger used for validation diagnostics. The default
// discards everything.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// WithValidateFunc registers a cross-field check that runs after every field
// validated. Its failures are reported under NonFieldErrorsKey.
func (b *Builder) WithValidateFunc(fn func(values map[string]any) error) *Builder {
	b.validate = fn
	return b
}

// Build clones and binds every definition into an immutable Schema.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Schema{
		names:    append([]string(nil), b.names...),
		fields:   make(map[string]*fields.Field, len(b.names)),
		methods:  maps.Clone(b.methods),
		partial:  b.partial,
		context:  b.context,
		logger:   logger,
		validate: b.validate,
	}
	for _, name := range b.names {
		clone := b.fields[name].Clone()
		if b.catalog != nil {
			clone.ApplyMessages(b.catalog.For(clone.Type().Name()))
		}
		clone.Bind(name, s)
		s.fields[name] = clone
	}
	return s, nil
}

// MustBuild is Build panicking on error, for schemas defined at startup.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err.Error())
	}
	return s
}
