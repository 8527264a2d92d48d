// Package binder presents raw input to the field layer as payloads.
//
// A Payload answers "what was submitted under this name" and whether the
// name was present at all. Two implementations ship with the package:
//
//   - Map  – structured payloads (decoded JSON or YAML objects) where an
//     explicit null stays distinguishable from an absent key.
//   - Form – HTML form payloads backed by url.Values plus multipart file
//     uploads, where values arrive as strings and absent and empty collapse.
//
// Form satisfies the HTMLForm marker so downstream coercion can apply
// HTML-specific rules (unchecked checkboxes, empty text inputs). ParseRequest
// builds a Form from an urlencoded or multipart/form-data request body.
package binder
