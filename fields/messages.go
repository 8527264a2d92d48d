package fields

import (
	"fmt"
	"regexp"
)

// Message templates use %{name} placeholders filled from the failure params.
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// baseMessages is the table every variant inherits.
var baseMessages = map[string]string{
	"required": "This field is required.",
	"null":     "This field may not be null.",
}

// interpolate substitutes %{name} placeholders in tmpl from params.
// Unknown placeholders stay as written.
func interpolate(tmpl string, params map[string]any) string {
	if len(params) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// mergeMessages composes message tables most-generic first; later tables win.
// Variants that extend other variants merge the parent table in explicitly.
func mergeMessages(tables ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, table := range tables {
		for key, msg := range table {
			merged[key] = msg
		}
	}
	return merged
}

// paramsFromPairs turns a variadic key/value list into a map. Odd trailing
// keys are a programmer error.
func paramsFromPairs(pairs []any) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	if len(pairs)%2 != 0 {
		panic("fields: message params must be key/value pairs")
	}
	params := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("fields: message param key must be a string, got %T", pairs[i]))
		}
		params[key] = pairs[i+1]
	}
	return params
}
