// Package validator provides composable, value-checking validation rules and
// an error collection designed for per-field reporting.
//
// A Rule receives the value to check at validation time, so a single rule
// value can be attached to many fields and run concurrently without capturing
// state. Failures are aggregated into an Errors slice that satisfies the
// error interface; nothing stops at the first problem.
//
// Core building blocks:
//   - Rule / RuleFunc         – value-checking rule and its function adapter
//   - ContextRule             – rule that also receives the owning field
//   - Error / Errors          – single failure with code, params and path
//   - Numeric interface       – generic constraint used by numeric helpers
//
// # Usage
//
//	err := validator.Apply(email,
//	    validator.ValidEmail(),
//	    validator.MaxLength(254),
//	)
//	if errs := validator.Extract(err); errs != nil {
//	    for _, e := range errs {
//	        // e.Code, e.Message, e.Params
//	    }
//	}
//
// Rules that cannot judge a value's type report success and leave the
// decision to the coercion layer that produced the value.
package validator
