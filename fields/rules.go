package fields

import "github.com/dmitrymomot/fieldkit/validator"

// boundRule wraps a rule so its failure carries the owning field's message
// table entry, rendered once at construction.
type boundRule struct {
	inner   validator.Rule
	code    string
	message string
	params  map[string]any
}

func (r boundRule) Validate(value any) error {
	if err := r.inner.Validate(value); err == nil {
		return nil
	}
	return validator.Errors{{Code: r.code, Message: r.message, Params: r.params}}
}

// bound builds a rule whose failure message comes from the field's table.
func (f *Field) bound(inner validator.Rule, code string, params map[string]any) validator.Rule {
	return boundRule{inner: inner, code: code, message: f.message(code, params), params: params}
}
