// Package schema composes fields into named, ordered collections that
// validate whole payloads and serialize instances back out.
//
// A Builder holds reusable field definitions; Build clones and binds them
// into an immutable Schema that is safe for concurrent use. Validation runs
// every writable field and reports all failures together as FieldErrors,
// keyed by field name with positions inside composite values dotted in
// ("tags.1"). Serialization runs every readable field against an instance,
// resolving dotted source paths and rendering nil sources as null.
//
//	s := schema.New().
//		Add("email", fields.New(&fields.Email{})).
//		Add("age", fields.New(&fields.Integer{}, fields.Required(false))).
//		MustBuild()
//
//	values, err := s.Validate(binder.Map{"email": "a@b.co", "age": "30"})
//
// Field definitions can also be derived from an OpenAPI component schema
// with FromData, FromDocument or FromSchemaRef.
package schema
