package fields

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fieldkit/binder"
	"github.com/dmitrymomot/fieldkit/validator"
)

// Type is the variant behind a Field. It names itself for panics and message
// catalogs, contributes an error message table, and implements the two
// coercion directions between primitive and native values.
type Type interface {
	Name() string
	Messages() map[string]string
	Parse(f *Field, value any) (any, error)
	Format(f *Field, value any) (any, error)
}

// BindHook is implemented by variants that inspect or adjust the field when
// it binds to a parent.
type BindHook interface {
	BindField(f *Field)
}

// ValueValidator is implemented by variants that run a final field-level
// check after the validator pipeline.
type ValueValidator interface {
	ValidateValue(f *Field, value any) error
}

// Cloner is implemented by variants carrying per-field state that must not
// alias between clones.
type Cloner interface {
	CloneType() Type
}

// MethodFunc computes a field's output value from the whole instance.
type MethodFunc func(instance any) (any, error)

// MethodProvider is the registry a method-delegated field resolves against.
// The owning aggregator implements it.
type MethodProvider interface {
	Method(name string) (MethodFunc, bool)
}

// Optional variant capabilities used by the built-in types.
type (
	// preValidate intercepts raw input ahead of presence and null handling.
	// done reports that value/err is the final outcome.
	preValidator interface {
		preValidate(f *Field, raw any) (value any, done bool, err error)
	}

	// coerceBlankToNull turns an empty-string input into null before the
	// null check. Defaults to true; the string family opts out.
	blankCoercer interface {
		coerceBlankToNull() bool
	}

	// emptyHTMLValue is what an HTML form's empty or missing entry becomes.
	// Defaults to Empty; booleans become false, multi-choice an empty list.
	htmlDefaulter interface {
		emptyHTMLValue() any
	}

	// htmlMultiValued marks variants reading every form value under a name.
	htmlMultiValued interface {
		htmlMultiValued()
	}

	// initialValue is the variant's metadata initial when none was set.
	initialer interface {
		initialValue() any
	}

	// configureField lets a variant force base flags. Runs after user
	// options, the way forced flags win in the original design.
	configurer interface {
		configureField(c *config)
	}

	// construct runs at the end of New and Clone, once the Field exists.
	constructHook interface {
		construct(f *Field)
	}

	// fieldRules contributes the variant's built-in validation rules,
	// appended after user-supplied ones.
	ruleProvider interface {
		fieldRules(f *Field) []validator.Rule
	}

	// partialRoot is satisfied by aggregators validating partial updates.
	partialRoot interface {
		Partial() bool
	}

	// contextProvider exposes the aggregator's context map to fields.
	contextProvider interface {
		Context() map[string]any
	}
)

type config struct {
	required   *bool
	def        Default
	readOnly   bool
	writeOnly  bool
	allowNull  bool
	source     string
	label      string
	helpText   string
	style      map[string]any
	initial    any
	initialSet bool
	overrides  map[string]string
	catalogs   []Catalog
	validators []validator.Rule
}

// Option configures a field at construction.
type Option func(*config)

// Required overrides the derived presence rule. Without it a field is
// required unless it is read-only or carries a default.
func Required(required bool) Option {
	return func(c *config) { c.required = &required }
}

// WithDefault sets a static fallback used when no input is supplied.
func WithDefault(v any) Option {
	return func(c *config) { c.def = StaticDefault(v) }
}

// WithDefaultFunc sets a computed fallback, invoked fresh on every use.
func WithDefaultFunc(fn func() any) Option {
	return func(c *config) { c.def = ComputedDefault(fn) }
}

// ReadOnly marks the field output-only: it never consumes input.
func ReadOnly() Option {
	return func(c *config) { c.readOnly = true }
}

// WriteOnly marks the field input-only: it never appears in output.
func WriteOnly() Option {
	return func(c *config) { c.writeOnly = true }
}

// AllowNull accepts explicit null as a valid value.
func AllowNull() Option {
	return func(c *config) { c.allowNull = true }
}

// WithSource sets the dotted lookup path the field reads from and writes to.
// "*" means the whole instance.
func WithSource(path string) Option {
	if path == "" {
		panic("fields: WithSource requires a non-empty path")
	}
	return func(c *config) { c.source = path }
}

// WithLabel sets the human-readable label. Unset labels derive from the
// field name at bind time.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

// WithHelpText attaches descriptive text to the field metadata.
func WithHelpText(text string) Option {
	return func(c *config) { c.helpText = text }
}

// WithStyle attaches presentation hints. The library never reads them.
func WithStyle(style map[string]any) Option {
	return func(c *config) { c.style = style }
}

// WithInitial sets the metadata initial value used to prepopulate inputs.
func WithInitial(v any) Option {
	return func(c *config) {
		c.initial = v
		c.initialSet = true
	}
}

// WithErrorMessages overrides entries of the field's message table.
func WithErrorMessages(messages map[string]string) Option {
	return func(c *config) { c.overrides = messages }
}

// WithCatalog applies a parsed message catalog to this field.
func WithCatalog(catalog Catalog) Option {
	return func(c *config) { c.catalogs = append(c.catalogs, catalog) }
}

// WithValidators appends rules to the field's pipeline. They run before the
// variant's built-in rules, all of them, regardless of earlier failures.
func WithValidators(rules ...validator.Rule) Option {
	return func(c *config) { c.validators = append(c.validators, rules...) }
}

// Field is a bound or unbound field definition: a variant plus identity,
// presence rules, message table and validator pipeline.
type Field struct {
	typ Type

	required   bool
	def        Default
	readOnly   bool
	writeOnly  bool
	allowNull  bool
	source     string
	label      string
	helpText   string
	style      map[string]any
	initial    any
	initialSet bool

	validators []validator.Rule
	messages   map[string]string

	// Set by Bind.
	name         string
	parent       any
	sourceAttrs  []string
	derivedLabel string
	isBound      bool
}

// New builds a field from a variant and options. Nonsensical combinations
// panic here, at construction, never at validation time.
func New(t Type, opts ...Option) *Field {
	if t == nil {
		panic("fields: New requires a variant")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if c, ok := t.(configurer); ok {
		c.configureField(&cfg)
	}

	// Unless overridden, presence is required exactly when nothing else
	// would supply a value.
	required := !cfg.def.IsSet() && !cfg.readOnly
	if cfg.required != nil {
		required = *cfg.required
	}

	switch {
	case cfg.readOnly && cfg.writeOnly:
		panic("fields: may not set both ReadOnly and WriteOnly")
	case cfg.readOnly && required:
		panic("fields: may not set both ReadOnly and Required")
	case cfg.readOnly && cfg.def.IsSet():
		panic("fields: may not set both ReadOnly and a default")
	case required && cfg.def.IsSet():
		panic("fields: may not set both Required and a default")
	}

	messages := mergeMessages(baseMessages, t.Messages())
	for _, catalog := range cfg.catalogs {
		messages = mergeMessages(messages, catalog.For(t.Name()))
	}
	messages = mergeMessages(messages, cfg.overrides)

	f := &Field{
		typ:        t,
		required:   required,
		def:        cfg.def,
		readOnly:   cfg.readOnly,
		writeOnly:  cfg.writeOnly,
		allowNull:  cfg.allowNull,
		source:     cfg.source,
		label:      cfg.label,
		helpText:   cfg.helpText,
		style:      cfg.style,
		initial:    cfg.initial,
		initialSet: cfg.initialSet,
		validators: slices.Clone(cfg.validators),
		messages:   messages,
	}

	if rp, ok := t.(ruleProvider); ok {
		f.validators = append(f.validators, rp.fieldRules(f)...)
	}
	if ch, ok := t.(constructHook); ok {
		ch.construct(f)
	}
	return f
}

// Bind attaches the field to its parent under a name. A field binds once;
// reuse across parents goes through Clone.
func (f *Field) Bind(name string, parent any) {
	if f.isBound {
		panic(fmt.Sprintf("fields: %s field %q is already bound; clone it before reuse", f.typ.Name(), f.name))
	}
	if f.source != "" && f.source == name {
		panic(fmt.Sprintf(
			"fields: it is redundant to set source %q on field %q because it matches the field name; drop WithSource",
			f.source, name,
		))
	}

	f.name = name
	f.parent = parent
	f.isBound = true

	if f.label == "" {
		f.derivedLabel = labelFor(name)
	}

	source := f.source
	if source == "" {
		source = name
	}
	if source == "*" {
		f.sourceAttrs = nil
	} else {
		f.sourceAttrs = strings.Split(source, ".")
	}

	if h, ok := f.typ.(BindHook); ok {
		h.BindField(f)
	}
}

// Clone returns an unbound deep copy sharing no mutable state with the
// original. Compiled variant state (choice tables) is immutable and shared.
func (f *Field) Clone() *Field {
	typ := f.typ
	if c, ok := typ.(Cloner); ok {
		typ = c.CloneType()
	}

	clone := &Field{
		typ:        typ,
		required:   f.required,
		def:        f.def,
		readOnly:   f.readOnly,
		writeOnly:  f.writeOnly,
		allowNull:  f.allowNull,
		source:     f.source,
		label:      f.label,
		helpText:   f.helpText,
		initial:    f.initial,
		initialSet: f.initialSet,
		validators: slices.Clone(f.validators),
		messages:   maps.Clone(f.messages),
	}
	if f.style != nil {
		clone.style = maps.Clone(f.style)
	}

	if ch, ok := typ.(constructHook); ok {
		ch.construct(clone)
	}
	return clone
}

// FieldName returns the name the field is bound under.
func (f *Field) FieldName() string { return f.name }

// Label returns the configured label, or the one derived from the name.
func (f *Field) Label() string {
	if f.label != "" {
		return f.label
	}
	return f.derivedLabel
}

// Parent returns the aggregator or composite field this field binds to.
func (f *Field) Parent() any { return f.parent }

// Type returns the field's variant.
func (f *Field) Type() Type { return f.typ }

// Source returns the configured source path, defaulting to the field name.
func (f *Field) Source() string {
	if f.source != "" {
		return f.source
	}
	return f.name
}

// SourceAttrs returns the resolved lookup path. Empty means the whole
// instance.
func (f *Field) SourceAttrs() []string { return f.sourceAttrs }

func (f *Field) Required() bool   { return f.required }
func (f *Field) IsReadOnly() bool { return f.readOnly }
func (f *Field) IsWriteOnly() bool {
	return f.writeOnly
}
func (f *Field) AllowsNull() bool { return f.allowNull }
func (f *Field) HelpText() string { return f.helpText }
func (f *Field) Bound() bool      { return f.isBound }

// Style returns the presentation hints attached to the field.
func (f *Field) Style() map[string]any { return f.style }

// Initial returns the metadata initial: the configured one, the variant's
// own, or nil.
func (f *Field) Initial() any {
	if f.initialSet {
		return f.initial
	}
	if iv, ok := f.typ.(initialer); ok {
		return iv.initialValue()
	}
	return nil
}

// Root walks the parent chain to the owning aggregator, or the outermost
// field when unattached.
func (f *Field) Root() any {
	var root any = f
	for {
		fld, ok := root.(*Field)
		if !ok || fld.parent == nil {
			return root
		}
		root = fld.parent
	}
}

// ApplyMessages merges overrides into the field's message table. Aggregators
// use it to apply schema-wide catalogs to cloned fields.
func (f *Field) ApplyMessages(overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	f.messages = mergeMessages(f.messages, overrides)
}

// Fail renders the message registered under code with %{name} interpolation
// from key/value pairs and returns it as a validation failure. An
// unregistered code is a programming error and panics.
func (f *Field) Fail(code string, pairs ...any) error {
	msg, ok := f.messages[code]
	if !ok {
		panic(fmt.Sprintf(
			"fields: %s field raised error code %q, which does not exist in its error messages table",
			f.typ.Name(), code,
		))
	}
	params := paramsFromPairs(pairs)
	return validator.Errors{{Code: code, Message: interpolate(msg, params), Params: params}}
}

// message renders a table entry without wrapping it in a failure. Variant
// rules use it to pre-render their messages at construction.
func (f *Field) message(code string, params map[string]any) string {
	msg, ok := f.messages[code]
	if !ok {
		panic(fmt.Sprintf(
			"fields: %s field needs error code %q, which does not exist in its error messages table",
			f.typ.Name(), code,
		))
	}
	return interpolate(msg, params)
}

// ValueFrom extracts this field's raw value from a payload.
//
// HTML forms cannot express absent, null or false directly: a missing or
// empty entry becomes the variant's empty-HTML value, and multi-valued
// variants read every value submitted under the name. Structured payloads
// pass values through and report missing keys as Empty.
func (f *Field) ValueFrom(p binder.Payload) any {
	if binder.IsHTMLForm(p) {
		if _, ok := f.typ.(htmlMultiValued); ok {
			if lister, ok := p.(binder.MultiValuer); ok {
				vals := lister.Values(f.name)
				if len(vals) > 0 && !(len(vals) == 1 && vals[0] == "") {
					return vals
				}
			}
			return f.emptyHTML()
		}

		raw, ok := p.Get(f.name)
		if !ok {
			raw = ""
		}
		if s, isStr := raw.(string); isStr && s == "" {
			return f.emptyHTML()
		}
		return raw
	}

	raw, ok := p.Get(f.name)
	if !ok {
		return Empty
	}
	return raw
}

func (f *Field) emptyHTML() any {
	if hd, ok := f.typ.(htmlDefaulter); ok {
		return hd.emptyHTMLValue()
	}
	return Empty
}

// RunValidation takes a raw input value (possibly Empty) to a validated
// native value. The error is either ErrSkipField, meaning the field
// contributes nothing, or a validator.Errors collection.
func (f *Field) RunValidation(raw any) (any, error) {
	if pv, ok := f.typ.(preValidator); ok {
		if value, done, err := pv.preValidate(f, raw); done {
			return value, err
		}
	}

	if IsEmpty(raw) {
		if pr, ok := f.Root().(partialRoot); ok && pr.Partial() {
			return nil, ErrSkipField
		}
		if f.required {
			return nil, f.Fail("required")
		}
		if !f.def.IsSet() {
			return nil, ErrSkipField
		}
		return f.def.Value(), nil
	}

	if s, ok := raw.(string); ok && s == "" && f.blankToNull() {
		raw = nil
	}

	if raw == nil {
		if !f.allowNull {
			return nil, f.Fail("null")
		}
		return nil, nil
	}

	value, err := f.typ.Parse(f, raw)
	if err != nil {
		return nil, err
	}

	if err := f.runRules(value); err != nil {
		return nil, err
	}

	if vv, ok := f.typ.(ValueValidator); ok {
		if err := vv.ValidateValue(f, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (f *Field) blankToNull() bool {
	if bc, ok := f.typ.(blankCoercer); ok {
		return bc.coerceBlankToNull()
	}
	return true
}

// runRules executes the whole pipeline and accumulates every failure.
// Context-aware rules receive the field by parameter.
func (f *Field) runRules(value any) error {
	var errs validator.Errors
	for _, rule := range f.validators {
		var err error
		if cr, ok := rule.(validator.ContextRule); ok {
			err = cr.ValidateWithField(f, value)
		} else {
			err = rule.Validate(value)
		}
		if err == nil {
			continue
		}
		if batch := validator.Extract(err); batch != nil {
			errs = append(errs, batch...)
			continue
		}
		errs = append(errs, validator.Error{Code: "invalid", Message: err.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Representation resolves the field's source against an instance and formats
// the result. A source resolving to a zero-argument function is invoked; one
// resolving to nil renders as nil without consulting the variant, which is
// also how broken relations surface. A structural resolution failure falls
// back to the field's default, then to nil when null is allowed; optional
// fields skip via ErrSkipField and only required ones surface the error.
func (f *Field) Representation(instance any) (any, error) {
	attribute, err := GetAttribute(instance, f.sourceAttrs)
	switch {
	case err == nil:
		if attribute, err = callIfNiladic(attribute); err != nil {
			return nil, err
		}
	case f.def.IsSet():
		attribute = f.def.Value()
	case f.allowNull:
		return nil, nil
	case !f.required:
		return nil, ErrSkipField
	default:
		return nil, err
	}
	if attribute == nil {
		return nil, nil
	}
	return f.typ.Format(f, attribute)
}

// FormatValue formats an already-resolved native value.
func (f *Field) FormatValue(value any) (any, error) {
	return f.typ.Format(f, value)
}

func labelFor(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
