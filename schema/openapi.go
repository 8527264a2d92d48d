package schema

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dmitrymomot/fieldkit/fields"
)

// FromData parses an OpenAPI document and builds field definitions from the
// named component schema.
func FromData(ctx context.Context, data []byte, component string) (*Builder, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	return FromDocument(doc, component)
}

// FromDocument builds field definitions from a component schema of an
// already-loaded document.
func FromDocument(doc *openapi3.T, component string) (*Builder, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("%w: document has no components", ErrUnsupportedSchema)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok {
		return nil, fmt.Errorf("%w: no component schema %q", ErrUnsupportedSchema, component)
	}
	return FromSchemaRef(ref)
}

// FromSchemaRef builds field definitions from an object schema, one field
// per property in name order. Nested objects are not flattened; modeling
// them takes a schema per level.
func FromSchemaRef(ref *openapi3.SchemaRef) (*Builder, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: unresolved schema reference", ErrUnsupportedSchema)
	}
	src := ref.Value
	if !schemaTypeIs(src, "object") {
		return nil, fmt.Errorf("%w: component must be an object, got %q", ErrUnsupportedSchema, schemaTypes(src))
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	b := New()
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		_, isRequired := required[name]
		f, err := fieldFromSchema(name, src.Properties[name], isRequired)
		if err != nil {
			return nil, err
		}
		b.Add(name, f)
	}
	return b, nil
}

func fieldFromSchema(name string, ref *openapi3.SchemaRef, required bool) (*fields.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: property %q is an unresolved reference", ErrUnsupportedSchema, name)
	}
	src := ref.Value

	variant, err := variantFor(name, src)
	if err != nil {
		return nil, err
	}
	return fields.New(variant, optionsFor(src, required, variant)...), nil
}

func variantFor(name string, src *openapi3.Schema) (fields.Type, error) {
	if len(src.Enum) > 0 && !schemaTypeIs(src, "array") {
		return &fields.Choice{Choices: fields.ChoiceValues(src.Enum...)}, nil
	}

	switch {
	case schemaTypeIs(src, "boolean"):
		if schemaNullable(src) {
			return fields.NullBoolean{}, nil
		}
		return fields.Boolean{}, nil

	case schemaTypeIs(src, "integer"):
		v := &fields.Integer{}
		if src.Min != nil {
			v.MinValue = fields.Int64(int64(*src.Min))
		}
		if src.Max != nil {
			v.MaxValue = fields.Int64(int64(*src.Max))
		}
		return v, nil

	case schemaTypeIs(src, "number"):
		v := &fields.Float{}
		if src.Min != nil {
			v.MinValue = fields.Float64(*src.Min)
		}
		if src.Max != nil {
			v.MaxValue = fields.Float64(*src.Max)
		}
		return v, nil

	case schemaTypeIs(src, "string"):
		return stringVariantFor(name, src)

	case schemaTypeIs(src, "array"):
		return arrayVariantFor(name, src)
	}

	return nil, fmt.Errorf("%w: property %q has type %q", ErrUnsupportedSchema, name, schemaTypes(src))
}

func stringVariantFor(name string, src *openapi3.Schema) (fields.Type, error) {
	base := fields.String{
		AllowBlank: src.MinLength == 0,
		MinLength:  int(src.MinLength),
	}
	if src.MaxLength != nil {
		base.MaxLength = int(*src.MaxLength)
	}

	switch src.Format {
	case "email":
		return &fields.Email{String: base}, nil
	case "uri", "url":
		return &fields.URL{String: base}, nil
	case "uuid":
		return &fields.UUID{}, nil
	case "date":
		return &fields.DateOnly{}, nil
	case "date-time":
		return &fields.DateTime{}, nil
	case "time":
		return &fields.TimeOnly{}, nil
	case "duration":
		return &fields.Duration{}, nil
	case "binary":
		return &fields.File{}, nil
	}

	if src.Pattern != "" {
		re, err := regexp.Compile(src.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q pattern: %v", ErrUnsupportedSchema, name, err)
		}
		return &fields.Regex{String: base, Pattern: re}, nil
	}
	return &base, nil
}

func arrayVariantFor(name string, src *openapi3.Schema) (fields.Type, error) {
	if src.Items == nil || src.Items.Value == nil {
		return nil, fmt.Errorf("%w: array property %q has no items schema", ErrUnsupportedSchema, name)
	}
	items := src.Items.Value

	if len(items.Enum) > 0 {
		return &fields.MultipleChoice{
			Choice: fields.Choice{Choices: fields.ChoiceValues(items.Enum...)},
		}, nil
	}

	childVariant, err := variantFor(name+"[]", items)
	if err != nil {
		return nil, err
	}
	var childOpts []fields.Option
	if schemaNullable(items) {
		childOpts = append(childOpts, fields.AllowNull())
	}
	return &fields.List{Child: fields.New(childVariant, childOpts...)}, nil
}

func optionsFor(src *openapi3.Schema, required bool, variant fields.Type) []fields.Option {
	var opts []fields.Option

	switch {
	case src.ReadOnly:
		opts = append(opts, fields.ReadOnly())
	case src.Default != nil:
		opts = append(opts, fields.WithDefault(normalizeDefault(src, src.Default)))
	default:
		opts = append(opts, fields.Required(required))
	}
	if src.WriteOnly && !src.ReadOnly {
		opts = append(opts, fields.WriteOnly())
	}

	// NullBoolean carries its own null handling.
	if _, tristate := variant.(fields.NullBoolean); schemaNullable(src) && !tristate {
		opts = append(opts, fields.AllowNull())
	}

	if src.Title != "" {
		opts = append(opts, fields.WithLabel(src.Title))
	}
	if src.Description != "" {
		opts = append(opts, fields.WithHelpText(src.Description))
	}
	return opts
}

// normalizeDefault undoes the float64 shape JSON decoding gives every
// number, so integer properties default to int64 like their parsed values.
func normalizeDefault(src *openapi3.Schema, def any) any {
	if f, ok := def.(float64); ok && schemaTypeIs(src, "integer") && f == math.Trunc(f) {
		return int64(f)
	}
	return def
}

func schemaTypeIs(src *openapi3.Schema, t string) bool {
	return src.Type != nil && slices.Contains(src.Type.Slice(), t)
}

// schemaNullable covers both the 3.0 nullable flag and the 3.1 "null" type.
func schemaNullable(src *openapi3.Schema) bool {
	return src.Nullable || schemaTypeIs(src, "null")
}

func schemaTypes(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	return strings.Join(src.Type.Slice(), ",")
}
