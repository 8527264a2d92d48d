package binder

// Payload is a field-addressable source of raw input values. The second
// return reports whether the name was present at all, which is distinct from
// a present-but-nil value.
type Payload interface {
	Get(name string) (any, bool)
}

// HTMLForm marks payloads carrying HTML form semantics: values arrive as
// strings, absent and empty are indistinguishable, and checkboxes simply
// omit their name when unchecked.
type HTMLForm interface {
	Payload
	HTMLForm()
}

// MultiValuer is implemented by payloads that can return every value
// submitted under one name (select multiple, repeated checkboxes).
type MultiValuer interface {
	Values(name string) []string
}

// IsHTMLForm reports whether the payload carries HTML form semantics.
func IsHTMLForm(p Payload) bool {
	_, ok := p.(HTMLForm)
	return ok
}

// Map adapts a decoded structured payload (JSON object, YAML mapping) to the
// Payload interface. Explicit nulls stay distinguishable from absent keys.
type Map map[string]any

func (m Map) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}
