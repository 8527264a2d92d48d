// Package fields implements typed value coercion for flat payloads: each
// field takes a primitive input to a validated native Go value, and a native
// value back to a primitive output form.
//
// A Field pairs a variant (Boolean, String, Integer, Decimal, DateTime,
// Choice, List, ...) with presence rules, a message table and a validator
// pipeline. Input runs through a fixed sequence: presence and default
// handling, blank and null normalization, the variant's Parse, then every
// configured rule with failures accumulated rather than short-circuited.
// Output resolves the field's source path against an instance and hands the
// result to the variant's Format, rendering nil sources as null untouched.
//
// Construction panics on contradictory options (read-only with required, a
// default on a required field), so misconfigured fields fail at startup:
//
//	age := fields.New(&fields.Integer{MinValue: fields.Int64(0)},
//		fields.Required(false),
//		fields.WithDefault(int64(18)),
//	)
//	age.Bind("age", nil)
//
//	value, err := age.RunValidation("21") // int64(21), nil
//
// Fields bind once to a name and parent; reuse goes through Clone. Error
// messages interpolate %{name} placeholders and can be overridden per field
// or restyled wholesale through a YAML Catalog.
package fields
