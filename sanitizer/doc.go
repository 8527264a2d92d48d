// Package sanitizer provides small string normalization helpers applied to
// raw input before validation.
//
// All helpers are stateless functions that can be freely combined. The
// higher-order Apply and Compose helpers build normalization pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.CollapseWhitespace,
//	    sanitizer.Lowercase,
//	)
//
//	safe := clean("  Mixed CASE   Input\n") // "mixed case input"
package sanitizer
