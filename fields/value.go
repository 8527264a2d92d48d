package fields

// emptyValue is the type behind the Empty sentinel.
type emptyValue struct{}

func (emptyValue) String() string { return "<empty>" }

// Empty means "no value was supplied". It is distinct from nil, which is an
// explicit null: a payload key holding null is present, a missing key is
// Empty. The sentinel never escapes the library on success paths.
var Empty any = emptyValue{}

// IsEmpty reports whether v is the Empty sentinel.
func IsEmpty(v any) bool {
	_, ok := v.(emptyValue)
	return ok
}

// Default is the fallback used when no input is supplied for an optional
// field. It is either static or computed; computed defaults are invoked
// fresh on every use so mutable values never alias between validations.
type Default struct {
	value any
	fn    func() any
	set   bool
}

// StaticDefault wraps a fixed fallback value.
func StaticDefault(v any) Default {
	return Default{value: v, set: true}
}

// ComputedDefault wraps a factory invoked whenever the fallback is needed.
func ComputedDefault(fn func() any) Default {
	if fn == nil {
		panic("fields: ComputedDefault requires a non-nil factory")
	}
	return Default{fn: fn, set: true}
}

// IsSet reports whether any fallback was configured.
func (d Default) IsSet() bool { return d.set }

// Value resolves the fallback. Calling it on an unset Default panics;
// callers check IsSet first.
func (d Default) Value() any {
	if !d.set {
		panic("fields: no default configured")
	}
	if d.fn != nil {
		return d.fn()
	}
	return d.value
}
